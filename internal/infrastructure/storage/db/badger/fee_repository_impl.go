package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

const feeLedgerKey = "feeLedger"

type feeRepositoryImpl struct {
	store *badgerhold.Store
}

// NewFeeRepositoryImpl returns a new badger FeeRepository implementation,
// seeding the stored ledger with the given fee rate in case the store is
// empty.
func NewFeeRepositoryImpl(
	store *badgerhold.Store, percentFee uint32,
) (domain.FeeRepository, error) {
	var ledger domain.FeeLedger
	if err := store.Get(feeLedgerKey, &ledger); err != nil {
		if !isNotFound(err) {
			return nil, err
		}

		newLedger, err := domain.NewFeeLedger(percentFee)
		if err != nil {
			return nil, err
		}
		if err := store.Insert(feeLedgerKey, *newLedger); err != nil {
			return nil, err
		}
	}

	return feeRepositoryImpl{store}, nil
}

func (r feeRepositoryImpl) GetFeeLedger(
	_ context.Context,
) (*domain.FeeLedger, error) {
	var ledger domain.FeeLedger
	if err := r.store.Get(feeLedgerKey, &ledger); err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (r feeRepositoryImpl) UpdateFeeLedger(
	_ context.Context,
	updateFn func(l *domain.FeeLedger) (*domain.FeeLedger, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var currentLedger domain.FeeLedger
		if err := r.store.TxGet(tx, feeLedgerKey, &currentLedger); err != nil {
			return err
		}

		updatedLedger, err := updateFn(&currentLedger)
		if err != nil {
			return err
		}

		return r.store.TxUpdate(tx, feeLedgerKey, *updatedLedger)
	})
}
