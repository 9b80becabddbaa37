package repositories

import (
	"context"
	"time"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// LoadReader defines read operations for load data
type LoadReader interface {
	// FindLoadByID retrieves a specific load by its identifier.
	FindLoadByID(ctx context.Context, loadID string) (*domain.Load, error)

	// FindLoads retrieves a page of loads matching the visibility filter,
	// ordered by ship_req_date descending (nulls last) then load_id.
	// Returns the loads and the pagination token for the next page, empty
	// when the listing is exhausted.
	FindLoads(ctx context.Context, filter domain.LoadFilter, limit int, nextToken string) ([]domain.Load, string, error)
}

// LoadWriter defines write operations for load data
type LoadWriter interface {
	// SaveLoad persists a new load.
	SaveLoad(ctx context.Context, load domain.Load) error

	// UpdateLoad applies the non-nil patch fields plus the resolved status and
	// updated_at in a single statement. This is the primary write of the
	// mutation coordinator.
	UpdateLoad(ctx context.Context, loadID string, patch domain.LoadPatch, finalStatus domain.LoadStatus, updatedAt time.Time) error

	// UpdateLoadStatus writes only status and updated_at. Used for the
	// best-effort secondary write after an automatic transition.
	UpdateLoadStatus(ctx context.Context, loadID string, status domain.LoadStatus, updatedAt time.Time) error

	// UpsertLoads inserts or overwrites loads keyed on load_id. Used by the
	// CSV import and the ERP sync.
	UpsertLoads(ctx context.Context, loads []domain.Load) error
}

// LoadChangeNotifier announces load mutations to the realtime feed.
type LoadChangeNotifier interface {
	// NotifyLoadChanged emits a change notification for the given table and
	// load. Best-effort; callers treat failures as warnings.
	NotifyLoadChanged(ctx context.Context, tableName, loadID string) error
}

// LoadRepositoryFacade combines all load-related repository interfaces
type LoadRepositoryFacade interface {
	LoadReader
	LoadWriter
	LoadChangeNotifier
}
