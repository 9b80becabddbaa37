package repositories

import (
	"context"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// AuditWriter defines append operations for the audit trails. Both tables are
// append-only; there is no update or delete surface.
type AuditWriter interface {
	// SaveAuditEvents appends a batch of audit events.
	SaveAuditEvents(ctx context.Context, events []domain.AuditEvent) error

	// SaveStatusChange appends one status transition row.
	SaveStatusChange(ctx context.Context, change domain.StatusChange) error
}

// AuditReader defines read operations for the audit trails
type AuditReader interface {
	// FindAuditEventsByRecordID retrieves audit events for a record, newest first.
	FindAuditEventsByRecordID(ctx context.Context, recordID string, limit int) ([]domain.AuditEvent, error)

	// FindStatusChangesByLoadID retrieves status transitions for a load, newest first.
	FindStatusChangesByLoadID(ctx context.Context, loadID string, limit int) ([]domain.StatusChange, error)
}

// AuditRepositoryFacade combines all audit repository interfaces
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}
