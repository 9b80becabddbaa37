package repositories

import (
	"context"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// LoadDetailReader defines read operations for line item data
type LoadDetailReader interface {
	// FindDetailByID retrieves a single line item.
	FindDetailByID(ctx context.Context, detailID string) (*domain.LoadDetail, error)

	// FindDetailsByLoadID retrieves every line item of a load ordered by line.
	FindDetailsByLoadID(ctx context.Context, loadID string) ([]domain.LoadDetail, error)
}

// LoadDetailWriter defines write operations for line item data
type LoadDetailWriter interface {
	// UpdateDetail overwrites the mutable fields of one line item.
	UpdateDetail(ctx context.Context, detail domain.LoadDetail) error

	// ReplaceDetailsForLoads deletes every line item of the given loads and
	// inserts the provided rows, all inside one transaction. Used by imports.
	ReplaceDetailsForLoads(ctx context.Context, loadIDs []string, details []domain.LoadDetail) error
}

// LoadDetailRepositoryFacade combines all line-item repository interfaces
type LoadDetailRepositoryFacade interface {
	LoadDetailReader
	LoadDetailWriter
}

// StopDetailReader defines read operations for routing stop data
type StopDetailReader interface {
	// FindStopsByLoadID retrieves every stop of a load ordered by seq_no.
	FindStopsByLoadID(ctx context.Context, loadID string) ([]domain.StopDetail, error)
}

// StopDetailWriter defines write operations for routing stop data
type StopDetailWriter interface {
	// ReplaceStopsForLoads deletes every stop of the given loads and inserts
	// the provided rows, all inside one transaction. Used by imports.
	ReplaceStopsForLoads(ctx context.Context, loadIDs []string, stops []domain.StopDetail) error
}

// StopDetailRepositoryFacade combines all stop repository interfaces
type StopDetailRepositoryFacade interface {
	StopDetailReader
	StopDetailWriter
}
