package service

import (
	"vending-machine/common/constant"
	"vending-machine/common/errs"
	"vending-machine/model"
)

// DecomposeCoins splits amount into coins greedily, largest denomination
// first. Denominations with a zero count are left out.
func DecomposeCoins(amount int32) (model.Change, error) {
	if amount < 0 || amount%constant.SmallestCoin != 0 {
		return nil, errs.ErrInvalidAmount
	}

	change := make(model.Change)
	for _, coin := range constant.CoinDenominations {
		count := amount / coin
		if count > 0 {
			change[coin] = count
		}
		amount %= coin
	}

	return change, nil
}
