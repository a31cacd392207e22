package domain

import "context"

// DealRepository is the abstraction for any kind of database intended to
// persist Deals. Deals are insert-only, closed deals are retained for audit
// and read access.
type DealRepository interface {
	// AddDeal stores the given deal, assigning it the next sequential id.
	// Ids start at 1 and are never reused.
	AddDeal(ctx context.Context, deal *Deal) (uint64, error)
	// GetDeal returns the deal with the given id, or ErrDealNotFound if the
	// id was never assigned.
	GetDeal(ctx context.Context, dealId uint64) (*Deal, error)
	// GetAllDeals returns all the deals stored in the repository.
	GetAllDeals(ctx context.Context) ([]Deal, error)
	// GetDealsForParty returns all the deals having the given address as
	// either buyer or seller.
	GetDealsForParty(ctx context.Context, address string) ([]Deal, error)
	// UpdateDeal allows to commit multiple changes to the same deal in a
	// transactional way.
	UpdateDeal(
		ctx context.Context,
		dealId uint64,
		updateFn func(d *Deal) (*Deal, error),
	) error
}
