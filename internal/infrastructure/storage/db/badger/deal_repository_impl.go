package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

const dealCounterKey = "nextDealId"

// dealCounter keeps track of the next deal id to be assigned. It is updated
// within the same transaction inserting the deal so that ids stay monotonic
// across restarts and are never reused.
type dealCounter struct {
	NextDealId uint64
}

type dealRepositoryImpl struct {
	store *badgerhold.Store
}

// NewDealRepositoryImpl returns a new badger DealRepository implementation.
func NewDealRepositoryImpl(store *badgerhold.Store) domain.DealRepository {
	return dealRepositoryImpl{store}
}

func (r dealRepositoryImpl) AddDeal(
	_ context.Context, deal *domain.Deal,
) (uint64, error) {
	var dealId uint64
	if err := r.store.Badger().Update(func(tx *badger.Txn) error {
		counter := dealCounter{NextDealId: 1}
		if err := r.store.TxGet(tx, dealCounterKey, &counter); err != nil {
			if !isNotFound(err) {
				return err
			}
		}

		dealId = counter.NextDealId
		deal.Id = dealId

		if err := r.store.TxInsert(tx, dealId, *deal); err != nil {
			return err
		}

		counter.NextDealId = dealId + 1
		return r.store.TxUpsert(tx, dealCounterKey, counter)
	}); err != nil {
		return 0, err
	}

	return dealId, nil
}

func (r dealRepositoryImpl) GetDeal(
	_ context.Context, dealId uint64,
) (*domain.Deal, error) {
	return r.getDeal(dealId)
}

func (r dealRepositoryImpl) GetAllDeals(
	_ context.Context,
) ([]domain.Deal, error) {
	query := badgerhold.Where("Id").Ge(uint64(1)).SortBy("Id")
	return r.findDeals(query)
}

func (r dealRepositoryImpl) GetDealsForParty(
	_ context.Context, address string,
) ([]domain.Deal, error) {
	query := badgerhold.Where("Buyer").Eq(address).
		Or(badgerhold.Where("Seller").Eq(address)).
		SortBy("Id")
	return r.findDeals(query)
}

func (r dealRepositoryImpl) UpdateDeal(
	_ context.Context,
	dealId uint64,
	updateFn func(d *domain.Deal) (*domain.Deal, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var currentDeal domain.Deal
		if err := r.store.TxGet(tx, dealId, &currentDeal); err != nil {
			if isNotFound(err) {
				return domain.ErrDealNotFound
			}
			return err
		}

		updatedDeal, err := updateFn(&currentDeal)
		if err != nil {
			return err
		}

		return r.store.TxUpdate(tx, dealId, *updatedDeal)
	})
}

func (r dealRepositoryImpl) getDeal(dealId uint64) (*domain.Deal, error) {
	var deal domain.Deal
	if err := r.store.Get(dealId, &deal); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrDealNotFound
		}
		return nil, err
	}
	return &deal, nil
}

func (r dealRepositoryImpl) findDeals(
	query *badgerhold.Query,
) ([]domain.Deal, error) {
	var deals []domain.Deal
	if err := r.store.Find(&deals, query); err != nil {
		return nil, err
	}
	return deals, nil
}
