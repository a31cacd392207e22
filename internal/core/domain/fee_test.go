package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

const otherAsset = "6921c799f7b53585e41d6a4c0ff8696d78cb83f9ba9b8d7e67ca344ad0d0f18e"

func TestNewFeeLedger(t *testing.T) {
	t.Parallel()

	ledger, err := domain.NewFeeLedger(2)
	require.NoError(t, err)
	require.Equal(t, uint32(2), ledger.PercentFee)
	require.Zero(t, ledger.Balance(testAsset))

	ledger, err = domain.NewFeeLedger(11)
	require.Nil(t, ledger)
	require.EqualError(t, err, domain.ErrFeeTooHigh.Error())
}

func TestFeeLedgerUpdatePercentFee(t *testing.T) {
	t.Parallel()

	ledger, err := domain.NewFeeLedger(0)
	require.NoError(t, err)

	err = ledger.UpdatePercentFee(domain.MaxPercentFee)
	require.NoError(t, err)
	require.Equal(t, uint32(domain.MaxPercentFee), ledger.PercentFee)

	err = ledger.UpdatePercentFee(domain.MaxPercentFee + 1)
	require.EqualError(t, err, domain.ErrFeeTooHigh.Error())
	require.Equal(t, uint32(domain.MaxPercentFee), ledger.PercentFee)
}

func TestFeeLedgerAccrueAndWithdraw(t *testing.T) {
	t.Parallel()

	ledger, err := domain.NewFeeLedger(2)
	require.NoError(t, err)

	ledger.Accrue(testAsset, 20)
	ledger.Accrue(testAsset, 5)
	ledger.Accrue(otherAsset, 7)
	require.Equal(t, uint64(25), ledger.Balance(testAsset))
	require.Equal(t, uint64(7), ledger.Balance(otherAsset))

	feeAmount, err := ledger.Withdraw(testAsset)
	require.NoError(t, err)
	require.Equal(t, uint64(25), feeAmount)
	require.Zero(t, ledger.Balance(testAsset))
	// the accumulator of the other asset is untouched
	require.Equal(t, uint64(7), ledger.Balance(otherAsset))

	_, err = ledger.Withdraw(testAsset)
	require.EqualError(t, err, domain.ErrNoArbitrationFees.Error())
}

func TestFailingFeeLedgerWithdraw(t *testing.T) {
	t.Parallel()

	ledger, err := domain.NewFeeLedger(2)
	require.NoError(t, err)

	_, err = ledger.Withdraw(testAsset)
	require.EqualError(t, err, domain.ErrNoArbitrationFees.Error())
}
