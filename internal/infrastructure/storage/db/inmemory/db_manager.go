package inmemory

import (
	"sync"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

type dealInmemoryStore struct {
	locker     *sync.Mutex
	deals      map[uint64]domain.Deal
	nextDealId uint64
}

type feeInmemoryStore struct {
	locker *sync.Mutex
	ledger domain.FeeLedger
}

// RepoManager holds all the volatile repositories in a single data
// structure. It is meant for tests and for running the engine without
// persistence.
type RepoManager struct {
	dealRepository domain.DealRepository
	feeRepository  domain.FeeRepository
}

// NewRepoManager returns a RepoManager with empty stores and the given
// initial arbitration fee rate.
func NewRepoManager(percentFee uint32) (ports.RepoManager, error) {
	ledger, err := domain.NewFeeLedger(percentFee)
	if err != nil {
		return nil, err
	}

	dealStore := &dealInmemoryStore{
		locker:     &sync.Mutex{},
		deals:      map[uint64]domain.Deal{},
		nextDealId: 1,
	}
	feeStore := &feeInmemoryStore{
		locker: &sync.Mutex{},
		ledger: *ledger,
	}

	return &RepoManager{
		dealRepository: NewDealRepositoryImpl(dealStore),
		feeRepository:  NewFeeRepositoryImpl(feeStore),
	}, nil
}

func (d *RepoManager) DealRepository() domain.DealRepository {
	return d.dealRepository
}

func (d *RepoManager) FeeRepository() domain.FeeRepository {
	return d.feeRepository
}

func (d *RepoManager) Close() {}
