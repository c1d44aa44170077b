package service

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"vending-machine/common/constant"
	"vending-machine/common/errs"
	"vending-machine/model"
)

func TestDecomposeCoins(t *testing.T) {
	tests := []struct {
		name        string
		amount      int32
		expected    model.Change
		expectedErr error
	}{
		{name: "zero", amount: 0, expected: model.Change{}},
		{name: "single smallest coin", amount: 5, expected: model.Change{5: 1}},
		{name: "every denomination", amount: 185, expected: model.Change{100: 1, 50: 1, 20: 1, 10: 1, 5: 1}},
		{name: "greedy picks largest first", amount: 340, expected: model.Change{100: 3, 20: 2}},
		{name: "skips zero counts", amount: 105, expected: model.Change{100: 1, 5: 1}},
		{name: "negative", amount: -5, expectedErr: errs.ErrInvalidAmount},
		{name: "not coin composable", amount: 12, expectedErr: errs.ErrInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			change, err := DecomposeCoins(tc.amount)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, change)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, change)
		})
	}
}

func TestDecomposeCoinsSumsToAmount(t *testing.T) {
	for amount := int32(0); amount <= 5000; amount += constant.SmallestCoin {
		change, err := DecomposeCoins(amount)
		require.NoError(t, err)

		assert.Equal(t, int64(amount), change.Total(), "amount %d", amount)
		for denomination, count := range change {
			assert.Contains(t, constant.CoinDenominations, denomination)
			assert.Positive(t, count)
		}
	}
}
