package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	"github.com/willbanks/load-coordinator/internal/models"
	"github.com/willbanks/load-coordinator/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for both audit trails.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditEvents appends a batch of audit events in one transaction.
func (r *PgxAuditRepository) SaveAuditEvents(ctx context.Context, events []domain.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	insert := `
		INSERT INTO audit_log (audit_id, table_name, record_id, action, field_name, old_value, new_value, user_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, event := range events {
		m := mapping.ToModelAuditLog(event)
		_, err := tx.Exec(ctx, insert,
			m.AuditID,
			m.TableName,
			m.RecordID,
			m.Action,
			m.FieldName,
			m.OldValue,
			m.NewValue,
			m.UserEmail,
			m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: failed to save audit event for record %s: %v", apperrors.ErrPersistence, m.RecordID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// SaveStatusChange appends one status transition row.
func (r *PgxAuditRepository) SaveStatusChange(ctx context.Context, change domain.StatusChange) error {
	m := mapping.ToModelStatusHistory(change)

	query := `
		INSERT INTO load_status_history (change_id, load_id, old_status, new_status, changed_by_email, changed_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ChangeID,
		m.LoadID,
		m.OldStatus,
		m.NewStatus,
		m.ChangedByEmail,
		m.ChangedAt,
		m.Notes,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save status change for load %s: %v", apperrors.ErrPersistence, m.LoadID, err)
	}
	return nil
}

// FindAuditEventsByRecordID retrieves audit events for a record, newest first.
func (r *PgxAuditRepository) FindAuditEventsByRecordID(ctx context.Context, recordID string, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT audit_id, table_name, record_id, action, field_name, old_value, new_value, user_email, created_at
		FROM audit_log
		WHERE record_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, recordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events for record %s: %w", recordID, err)
	}
	defer rows.Close()

	var ms []models.AuditLog
	for rows.Next() {
		var m models.AuditLog
		err := rows.Scan(&m.AuditID, &m.TableName, &m.RecordID, &m.Action, &m.FieldName, &m.OldValue, &m.NewValue, &m.UserEmail, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit event row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit event rows: %w", err)
	}

	return mapping.ToDomainAuditEventSlice(ms), nil
}

// FindStatusChangesByLoadID retrieves status transitions for a load, newest first.
func (r *PgxAuditRepository) FindStatusChangesByLoadID(ctx context.Context, loadID string, limit int) ([]domain.StatusChange, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT change_id, load_id, old_status, new_status, changed_by_email, changed_at, notes
		FROM load_status_history
		WHERE load_id = $1
		ORDER BY changed_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, loadID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query status changes for load %s: %w", loadID, err)
	}
	defer rows.Close()

	var ms []models.LoadStatusHistory
	for rows.Next() {
		var m models.LoadStatusHistory
		err := rows.Scan(&m.ChangeID, &m.LoadID, &m.OldStatus, &m.NewStatus, &m.ChangedByEmail, &m.ChangedAt, &m.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status change row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status change rows: %w", err)
	}

	return mapping.ToDomainStatusChangeSlice(ms), nil
}
