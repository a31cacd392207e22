package ports

import "github.com/escrow-network/escrowd/internal/core/domain"

// RepoManager gives access to all the repositories of the escrow engine.
type RepoManager interface {
	DealRepository() domain.DealRepository
	FeeRepository() domain.FeeRepository

	Close()
}
