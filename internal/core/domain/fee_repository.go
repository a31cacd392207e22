package domain

import "context"

// FeeRepository is the abstraction for any kind of database intended to
// persist the arbitration FeeLedger.
type FeeRepository interface {
	// GetFeeLedger returns the current state of the ledger.
	GetFeeLedger(ctx context.Context) (*FeeLedger, error)
	// UpdateFeeLedger allows to commit multiple changes to the ledger in a
	// transactional way.
	UpdateFeeLedger(
		ctx context.Context,
		updateFn func(l *FeeLedger) (*FeeLedger, error),
	) error
}
