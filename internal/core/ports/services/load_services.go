package services

import (
	"context"

	"github.com/willbanks/load-coordinator/internal/core/domain"
	"github.com/willbanks/load-coordinator/internal/dto"
)

// LoadReaderSvc defines read operations over loads, scoped by the caller's
// visibility filter.
type LoadReaderSvc interface {
	// GetLoadByID retrieves a single load.
	GetLoadByID(ctx context.Context, loadID string) (*domain.Load, error)

	// ListLoads retrieves a page of the loads visible to the profile, ordered
	// by ship_req_date descending. Returns the page and the next-page token.
	ListLoads(ctx context.Context, profile domain.UserProfile, params dto.ListLoadsParams) ([]domain.Load, string, error)

	// GetLoadDetails retrieves the line items of a load.
	GetLoadDetails(ctx context.Context, loadID string) ([]domain.LoadDetail, error)

	// GetLoadStops retrieves the routing stops of a load.
	GetLoadStops(ctx context.Context, loadID string) ([]domain.StopDetail, error)
}

// LoadWriterSvc defines the load mutation surface. Every method returns the
// warnings produced by best-effort secondary steps alongside the primary
// result; a non-nil error always means the primary effect did not happen.
type LoadWriterSvc interface {
	// UpdateLoad runs the full mutation flow for one load: merge the patch,
	// resolve the status through the automatic rule, persist, write both
	// audit trails, and announce the change.
	UpdateLoad(ctx context.Context, loadID string, patch domain.LoadPatch, actor domain.UserProfile) (*domain.Load, []string, error)

	// BulkUpdateStatus applies an explicit status to several loads, one
	// UpdateLoad at a time. Returns per-load failures without stopping.
	BulkUpdateStatus(ctx context.Context, loadIDs []string, status domain.LoadStatus, actor domain.UserProfile) (dto.BulkStatusUpdateResponse, error)

	// ConfirmLoad runs the confirmation workflow: validation gate, trailer
	// persistence with promotion to Ready, audit entries, and document
	// generation.
	ConfirmLoad(ctx context.Context, loadID string, trailerNo string, actor domain.UserProfile) (*domain.Load, []string, error)

	// UpdateLineItem edits one line item's disposition. Rejected once the
	// load has left Open.
	UpdateLineItem(ctx context.Context, detailID string, req dto.UpdateLoadDetailRequest, actor domain.UserProfile) (*domain.LoadDetail, error)
}

// LoadSvcFacade combines all load-related service interfaces
type LoadSvcFacade interface {
	LoadReaderSvc
	LoadWriterSvc
}
