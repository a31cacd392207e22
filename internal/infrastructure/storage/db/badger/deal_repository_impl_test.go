package dbbadger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
	dbbadger "github.com/escrow-network/escrowd/internal/infrastructure/storage/db/badger"
)

const (
	testAsset  = "5ac9f65c0efcc4775e0baec4ec03abdde22473cd3cf33c0419ca290e0751b225"
	testBuyer  = "buyer0001"
	testSeller = "seller0001"
)

func TestAddAndGetDeal(t *testing.T) {
	ctx := context.Background()
	repoManager := newTestRepoManager(t)
	dealRepository := repoManager.DealRepository()

	for i := 1; i <= 3; i++ {
		deal, err := domain.NewDeal(testAsset, testBuyer, testSeller, 1000)
		require.NoError(t, err)

		dealId, err := dealRepository.AddDeal(ctx, deal)
		require.NoError(t, err)
		require.Equal(t, uint64(i), dealId)
	}

	deal, err := dealRepository.GetDeal(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(2), deal.Id)
	require.True(t, deal.IsPending())

	allDeals, err := dealRepository.GetAllDeals(ctx)
	require.NoError(t, err)
	require.Len(t, allDeals, 3)
	require.Equal(t, uint64(1), allDeals[0].Id)

	deals, err := dealRepository.GetDealsForParty(ctx, testSeller)
	require.NoError(t, err)
	require.Len(t, deals, 3)

	deals, err = dealRepository.GetDealsForParty(ctx, "unknown")
	require.NoError(t, err)
	require.Empty(t, deals)
}

func TestFailingGetDeal(t *testing.T) {
	ctx := context.Background()
	repoManager := newTestRepoManager(t)

	deal, err := repoManager.DealRepository().GetDeal(ctx, 1)
	require.Nil(t, deal)
	require.EqualError(t, err, domain.ErrDealNotFound.Error())
}

func TestUpdateDeal(t *testing.T) {
	ctx := context.Background()
	repoManager := newTestRepoManager(t)
	dealRepository := repoManager.DealRepository()

	deal, _ := domain.NewDeal(testAsset, testBuyer, testSeller, 1000)
	dealId, err := dealRepository.AddDeal(ctx, deal)
	require.NoError(t, err)

	err = dealRepository.UpdateDeal(
		ctx, dealId, func(d *domain.Deal) (*domain.Deal, error) {
			if err := d.Complete(); err != nil {
				return nil, err
			}
			return d, nil
		},
	)
	require.NoError(t, err)

	updatedDeal, err := dealRepository.GetDeal(ctx, dealId)
	require.NoError(t, err)
	require.True(t, updatedDeal.IsCompleted())

	err = dealRepository.UpdateDeal(
		ctx, dealId, func(d *domain.Deal) (*domain.Deal, error) {
			return nil, d.Complete()
		},
	)
	require.EqualError(t, err, domain.ErrInvalidDealStatus.Error())
}

func TestFeeLedgerRoundtrip(t *testing.T) {
	ctx := context.Background()
	repoManager := newTestRepoManager(t)
	feeRepository := repoManager.FeeRepository()

	ledger, err := feeRepository.GetFeeLedger(ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(2), ledger.PercentFee)

	err = feeRepository.UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			l.Accrue(testAsset, 20)
			return l, nil
		},
	)
	require.NoError(t, err)

	ledger, err = feeRepository.GetFeeLedger(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(20), ledger.Balance(testAsset))
}

func newTestRepoManager(t *testing.T) ports.RepoManager {
	t.Helper()

	repoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil, 2)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	return repoManager
}
