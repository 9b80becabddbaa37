package services

import (
	"context"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// AuditSvc defines the append and read surface of both audit trails.
type AuditSvc interface {
	// RecordFieldChanges appends one UPDATE event per field change.
	RecordFieldChanges(ctx context.Context, tableName, recordID string, changes []domain.FieldChange, userEmail string) error

	// RecordAction appends one event for a named custom action, such as
	// "Load Confirmed" or "Document Generated".
	RecordAction(ctx context.Context, tableName, recordID string, action domain.AuditAction, fieldName, detail, userEmail string) error

	// RecordStatusChange appends one status transition row.
	RecordStatusChange(ctx context.Context, change domain.StatusChange) error

	// GetLoadHistory retrieves both trails for a load, newest first.
	GetLoadHistory(ctx context.Context, loadID string) ([]domain.AuditEvent, []domain.StatusChange, error)
}
