package service

import (
	"context"
	"math"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
	"vending-machine/common/errs"
	"vending-machine/common/otel"
	"vending-machine/model"
)

type LedgerService struct {
	Store contract.Store
}

// AddDeposit credits a buyer with amount, which must be a positive multiple of
// the smallest coin.
func (s LedgerService) AddDeposit(ctx context.Context, buyerID string, amount int32) (model.DepositResult, error) {
	if amount <= 0 || amount%constant.SmallestCoin != 0 {
		return model.DepositResult{}, errs.ErrInvalidAmount
	}

	ctx, span := otel.Tracer.Start(ctx, "LedgerService.AddDeposit")
	defer span.End()

	var balance int32
	err := s.Store.InTx(ctx, func(tx contract.Tx) error {
		account, err := lockAccount(ctx, tx, buyerID)
		if err != nil {
			return err
		}

		next := int64(account.Deposit) + int64(amount)
		if next > math.MaxInt32 {
			return errs.ErrInvalidAmount
		}

		balance = int32(next)
		return tx.SaveDeposit(ctx, buyerID, balance)
	})
	if err != nil {
		common.UtilSpanError(span, err)
		return model.DepositResult{}, err
	}

	return model.DepositResult{Balance: balance, Confirmed: true}, nil
}

// ResetDeposit zeroes the balance and reports what it was just before.
func (s LedgerService) ResetDeposit(ctx context.Context, buyerID string) (model.DepositResult, error) {
	ctx, span := otel.Tracer.Start(ctx, "LedgerService.ResetDeposit")
	defer span.End()

	var prior int32
	err := s.Store.InTx(ctx, func(tx contract.Tx) error {
		account, err := lockAccount(ctx, tx, buyerID)
		if err != nil {
			return err
		}

		prior = account.Deposit
		return tx.SaveDeposit(ctx, buyerID, 0)
	})
	if err != nil {
		common.UtilSpanError(span, err)
		return model.DepositResult{}, err
	}

	return model.DepositResult{Balance: prior, Confirmed: true}, nil
}

func (s LedgerService) GetBalance(ctx context.Context, buyerID string) (int32, error) {
	account, err := s.Store.FindAccountByID(ctx, buyerID)
	if err != nil {
		return 0, err
	}

	if account == nil {
		return 0, errs.ErrAccountNotFound
	}

	return account.Deposit, nil
}

func (s LedgerService) HasAtLeast(ctx context.Context, buyerID string, amount int64) (bool, error) {
	balance, err := s.GetBalance(ctx, buyerID)
	if err != nil {
		return false, err
	}

	return int64(balance) >= amount, nil
}

// settle debits cost from a locked buyer account and empties it, returning
// what is left over to be paid back as change.
func (s LedgerService) settle(ctx context.Context, tx contract.Tx, buyerID string, cost int64) (int32, error) {
	account, err := lockAccount(ctx, tx, buyerID)
	if err != nil {
		return 0, err
	}

	if int64(account.Deposit) < cost {
		return 0, errs.ErrInsufficientDeposit
	}

	remainder := int32(int64(account.Deposit) - cost)
	if err := tx.SaveDeposit(ctx, buyerID, 0); err != nil {
		return 0, err
	}

	return remainder, nil
}

func lockAccount(ctx context.Context, tx contract.Tx, buyerID string) (*model.Account, error) {
	if buyerID == "" {
		return nil, errs.ErrAccountNotFound
	}

	account, err := tx.LockAccount(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	if account == nil {
		return nil, errs.ErrAccountNotFound
	}

	return account, nil
}
