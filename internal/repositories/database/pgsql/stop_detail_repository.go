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

type PgxStopDetailRepository struct {
	BaseRepository
}

// newPgxStopDetailRepository creates a new repository for routing stop data.
func newPgxStopDetailRepository(pool *pgxpool.Pool) portsrepo.StopDetailRepositoryFacade {
	return &PgxStopDetailRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StopDetailRepositoryFacade = (*PgxStopDetailRepository)(nil)

// FindStopsByLoadID retrieves every stop of a load ordered by seq_no.
func (r *PgxStopDetailRepository) FindStopsByLoadID(ctx context.Context, loadID string) ([]domain.StopDetail, error) {
	query := `
		SELECT stop_id, load_id, seq_no, cust_name, address, miles, weight, created_at
		FROM stop_details
		WHERE load_id = $1
		ORDER BY seq_no ASC;
	`
	rows, err := r.Pool.Query(ctx, query, loadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stops for load %s: %w", loadID, err)
	}
	defer rows.Close()

	var ms []models.StopDetail
	for rows.Next() {
		var m models.StopDetail
		err := rows.Scan(&m.StopID, &m.LoadID, &m.SeqNo, &m.CustName, &m.Address, &m.Miles, &m.Weight, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stop row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stop rows: %w", err)
	}

	return mapping.ToDomainStopDetailSlice(ms), nil
}

// ReplaceStopsForLoads deletes every stop of the given loads and inserts the
// provided rows in one transaction.
func (r *PgxStopDetailRepository) ReplaceStopsForLoads(ctx context.Context, loadIDs []string, stops []domain.StopDetail) error {
	if len(loadIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM stop_details WHERE load_id = ANY($1);`, loadIDs); err != nil {
		return fmt.Errorf("%w: failed to clear stops: %v", apperrors.ErrPersistence, err)
	}

	insert := `
		INSERT INTO stop_details (stop_id, load_id, seq_no, cust_name, address, miles, weight, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, stop := range stops {
		m := mapping.ToModelStopDetail(stop)
		_, err := tx.Exec(ctx, insert, m.StopID, m.LoadID, m.SeqNo, m.CustName, m.Address, m.Miles, m.Weight, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("%w: failed to insert stop for load %s seq %d: %v", apperrors.ErrPersistence, m.LoadID, m.SeqNo, err)
		}
	}

	return r.Commit(ctx, tx)
}
