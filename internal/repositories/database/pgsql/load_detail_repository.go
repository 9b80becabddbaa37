package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	"github.com/willbanks/load-coordinator/internal/models"
	"github.com/willbanks/load-coordinator/internal/utils/mapping"
)

const detailColumns = `detail_id, load_id, line, item_desc, heat_number, qty_ordered, qty_shipped, status_code, markoff_reason, created_at, updated_at`

type PgxLoadDetailRepository struct {
	BaseRepository
}

// newPgxLoadDetailRepository creates a new repository for line item data.
func newPgxLoadDetailRepository(pool *pgxpool.Pool) portsrepo.LoadDetailRepositoryFacade {
	return &PgxLoadDetailRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LoadDetailRepositoryFacade = (*PgxLoadDetailRepository)(nil)

func scanLoadDetail(row pgx.Row) (*models.LoadDetail, error) {
	var m models.LoadDetail
	err := row.Scan(
		&m.DetailID,
		&m.LoadID,
		&m.Line,
		&m.ItemDesc,
		&m.HeatNumber,
		&m.QtyOrdered,
		&m.QtyShipped,
		&m.StatusCode,
		&m.MarkoffReason,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindDetailByID retrieves a single line item.
func (r *PgxLoadDetailRepository) FindDetailByID(ctx context.Context, detailID string) (*domain.LoadDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM load_details WHERE detail_id = $1;`

	m, err := scanLoadDetail(r.Pool.QueryRow(ctx, query, detailID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find load detail by ID %s: %w", detailID, err)
	}

	d := mapping.ToDomainLoadDetail(*m)
	return &d, nil
}

// FindDetailsByLoadID retrieves every line item of a load ordered by line.
func (r *PgxLoadDetailRepository) FindDetailsByLoadID(ctx context.Context, loadID string) ([]domain.LoadDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM load_details WHERE load_id = $1 ORDER BY line ASC;`

	rows, err := r.Pool.Query(ctx, query, loadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query load details for load %s: %w", loadID, err)
	}
	defer rows.Close()

	var ms []models.LoadDetail
	for rows.Next() {
		m, err := scanLoadDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan load detail row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate load detail rows: %w", err)
	}

	return mapping.ToDomainLoadDetailSlice(ms), nil
}

// UpdateDetail overwrites the mutable fields of one line item.
func (r *PgxLoadDetailRepository) UpdateDetail(ctx context.Context, detail domain.LoadDetail) error {
	m := mapping.ToModelLoadDetail(detail)

	query := `
		UPDATE load_details
		SET status_code = $1, markoff_reason = $2, qty_shipped = $3, updated_at = $4
		WHERE detail_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, m.StatusCode, m.MarkoffReason, m.QtyShipped, m.UpdatedAt, m.DetailID)
	if err != nil {
		return fmt.Errorf("%w: failed to update load detail %s: %v", apperrors.ErrPersistence, m.DetailID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: load detail %s", apperrors.ErrNotFound, m.DetailID)
	}
	return nil
}

// ReplaceDetailsForLoads deletes every line item of the given loads and
// inserts the provided rows in one transaction.
func (r *PgxLoadDetailRepository) ReplaceDetailsForLoads(ctx context.Context, loadIDs []string, details []domain.LoadDetail) error {
	if len(loadIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM load_details WHERE load_id = ANY($1);`, loadIDs); err != nil {
		return fmt.Errorf("%w: failed to clear load details: %v", apperrors.ErrPersistence, err)
	}

	insert := `
		INSERT INTO load_details (detail_id, load_id, line, item_desc, heat_number, qty_ordered, qty_shipped, status_code, markoff_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, detail := range details {
		m := mapping.ToModelLoadDetail(detail)
		_, err := tx.Exec(ctx, insert,
			m.DetailID,
			m.LoadID,
			m.Line,
			m.ItemDesc,
			m.HeatNumber,
			m.QtyOrdered,
			m.QtyShipped,
			m.StatusCode,
			m.MarkoffReason,
			m.CreatedAt,
			m.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: failed to insert load detail for load %s line %d: %v", apperrors.ErrPersistence, m.LoadID, m.Line, err)
		}
	}

	return r.Commit(ctx, tx)
}
