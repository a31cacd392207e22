package inmemory

import (
	"context"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

type feeRepositoryImpl struct {
	store *feeInmemoryStore
}

// NewFeeRepositoryImpl returns a new inmemory FeeRepository implementation.
func NewFeeRepositoryImpl(store *feeInmemoryStore) domain.FeeRepository {
	return &feeRepositoryImpl{store}
}

func (r feeRepositoryImpl) GetFeeLedger(
	_ context.Context,
) (*domain.FeeLedger, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	ledger := cloneFeeLedger(r.store.ledger)
	return &ledger, nil
}

func (r feeRepositoryImpl) UpdateFeeLedger(
	_ context.Context,
	updateFn func(l *domain.FeeLedger) (*domain.FeeLedger, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentLedger := cloneFeeLedger(r.store.ledger)
	updatedLedger, err := updateFn(&currentLedger)
	if err != nil {
		return err
	}

	r.store.ledger = cloneFeeLedger(*updatedLedger)
	return nil
}

func cloneFeeLedger(ledger domain.FeeLedger) domain.FeeLedger {
	accumulatedFees := make(map[string]uint64, len(ledger.AccumulatedFees))
	for asset, feeAmount := range ledger.AccumulatedFees {
		accumulatedFees[asset] = feeAmount
	}
	return domain.FeeLedger{
		PercentFee:      ledger.PercentFee,
		AccumulatedFees: accumulatedFees,
	}
}
