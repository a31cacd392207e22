package inmemory

import (
	"context"
	"sort"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

type dealRepositoryImpl struct {
	store *dealInmemoryStore
}

// NewDealRepositoryImpl returns a new inmemory DealRepository implementation.
func NewDealRepositoryImpl(store *dealInmemoryStore) domain.DealRepository {
	return &dealRepositoryImpl{store}
}

func (r dealRepositoryImpl) AddDeal(
	_ context.Context, deal *domain.Deal,
) (uint64, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	dealId := r.store.nextDealId
	r.store.nextDealId++

	deal.Id = dealId
	r.store.deals[dealId] = *deal
	return dealId, nil
}

func (r dealRepositoryImpl) GetDeal(
	_ context.Context, dealId uint64,
) (*domain.Deal, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getDeal(dealId)
}

func (r dealRepositoryImpl) GetAllDeals(
	_ context.Context,
) ([]domain.Deal, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	allDeals := make([]domain.Deal, 0, len(r.store.deals))
	for _, deal := range r.store.deals {
		allDeals = append(allDeals, deal)
	}
	sort.Slice(allDeals, func(i, j int) bool {
		return allDeals[i].Id < allDeals[j].Id
	})
	return allDeals, nil
}

func (r dealRepositoryImpl) GetDealsForParty(
	_ context.Context, address string,
) ([]domain.Deal, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	deals := make([]domain.Deal, 0)
	for _, deal := range r.store.deals {
		if deal.Buyer == address || deal.Seller == address {
			deals = append(deals, deal)
		}
	}
	sort.Slice(deals, func(i, j int) bool {
		return deals[i].Id < deals[j].Id
	})
	return deals, nil
}

func (r dealRepositoryImpl) UpdateDeal(
	_ context.Context,
	dealId uint64,
	updateFn func(d *domain.Deal) (*domain.Deal, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentDeal, err := r.getDeal(dealId)
	if err != nil {
		return err
	}

	updatedDeal, err := updateFn(currentDeal)
	if err != nil {
		return err
	}

	r.store.deals[dealId] = *updatedDeal
	return nil
}

func (r dealRepositoryImpl) getDeal(dealId uint64) (*domain.Deal, error) {
	deal, ok := r.store.deals[dealId]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	return &deal, nil
}
