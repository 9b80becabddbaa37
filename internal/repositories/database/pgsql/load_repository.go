package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	"github.com/willbanks/load-coordinator/internal/models"
	"github.com/willbanks/load-coordinator/internal/utils/mapping"
	"github.com/willbanks/load-coordinator/internal/utils/pagination"
)

// loadChangedChannel is the NOTIFY channel the realtime feed listens on.
const loadChangedChannel = "loads_changed"

const loadColumns = `load_id, ship_from_loc, carrier_code, status, driver_name, trailer_no, ship_req_date, eta, created_at, updated_at`

type PgxLoadRepository struct {
	BaseRepository
}

// newPgxLoadRepository creates a new repository for load data.
func newPgxLoadRepository(pool *pgxpool.Pool) portsrepo.LoadRepositoryFacade {
	return &PgxLoadRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxLoadRepository implements portsrepo.LoadRepositoryFacade
var _ portsrepo.LoadRepositoryFacade = (*PgxLoadRepository)(nil)

func scanLoad(row pgx.Row) (*models.Load, error) {
	var m models.Load
	err := row.Scan(
		&m.LoadID,
		&m.ShipFromLoc,
		&m.CarrierCode,
		&m.Status,
		&m.DriverName,
		&m.TrailerNo,
		&m.ShipReqDate,
		&m.ETA,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindLoadByID retrieves a load by its ID.
func (r *PgxLoadRepository) FindLoadByID(ctx context.Context, loadID string) (*domain.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads WHERE load_id = $1;`

	m, err := scanLoad(r.Pool.QueryRow(ctx, query, loadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find load by ID %s: %w", loadID, err)
	}

	d := mapping.ToDomainLoad(*m)
	return &d, nil
}

// FindLoads retrieves a page of loads for the given visibility filter, ordered
// by ship_req_date descending with NULLs last, then load_id for a stable
// tie-break. The pagination token encodes the last row of the previous page.
func (r *PgxLoadRepository) FindLoads(ctx context.Context, filter domain.LoadFilter, limit int, nextToken string) ([]domain.Load, string, error) {
	if limit <= 0 {
		limit = 50
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ShipFromLoc != "" {
		conds = append(conds, "ship_from_loc = "+arg(filter.ShipFromLoc))
	}
	if filter.CarrierCode != "" {
		conds = append(conds, "carrier_code = "+arg(filter.CarrierCode))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		conds = append(conds, "status = ANY("+arg(statuses)+")")
	}

	if nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(nextToken)
		if err != nil || len(fields) != 2 {
			return nil, "", fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		if fields[0] == "null" {
			// Previous page ended inside the NULL ship_req_date tail.
			conds = append(conds, "ship_req_date IS NULL AND load_id > "+arg(fields[1]))
		} else {
			lastDate, err := pagination.ParseTokenTime(fields[0])
			if err != nil {
				return nil, "", fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
			}
			d := arg(lastDate)
			conds = append(conds, fmt.Sprintf(
				"(ship_req_date < %s OR (ship_req_date = %s AND load_id > %s) OR ship_req_date IS NULL)",
				d, d, arg(fields[1]),
			))
		}
	}

	query := `SELECT ` + loadColumns + ` FROM loads`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY ship_req_date DESC NULLS LAST, load_id ASC LIMIT " + arg(limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query loads: %w", err)
	}
	defer rows.Close()

	var ms []models.Load
	for rows.Next() {
		m, err := scanLoad(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan load row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to iterate load rows: %w", err)
	}

	token := ""
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		dateField := "null"
		if last.ShipReqDate != nil {
			dateField = pagination.FormatTokenTime(*last.ShipReqDate)
		}
		token = pagination.EncodeMultiFieldToken(dateField, last.LoadID)
	}

	return mapping.ToDomainLoadSlice(ms), token, nil
}

// SaveLoad inserts a new load.
func (r *PgxLoadRepository) SaveLoad(ctx context.Context, load domain.Load) error {
	m := mapping.ToModelLoad(load)

	query := `
		INSERT INTO loads (load_id, ship_from_loc, carrier_code, status, driver_name, trailer_no, ship_req_date, eta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LoadID,
		m.ShipFromLoc,
		m.CarrierCode,
		m.Status,
		m.DriverName,
		m.TrailerNo,
		m.ShipReqDate,
		m.ETA,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: load with ID %s already exists", apperrors.ErrDuplicate, m.LoadID)
		}
		return fmt.Errorf("%w: failed to save load %s: %v", apperrors.ErrPersistence, m.LoadID, err)
	}
	return nil
}

// UpdateLoad applies the non-nil patch fields plus the resolved status and
// updated_at as one single-statement write. The SET list is built only from
// fields actually present in the patch so an omitted field never touches the
// stored value.
func (r *PgxLoadRepository) UpdateLoad(ctx context.Context, loadID string, patch domain.LoadPatch, finalStatus domain.LoadStatus, updatedAt time.Time) error {
	var sets []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.ShipFromLoc != nil {
		sets = append(sets, "ship_from_loc = "+arg(*patch.ShipFromLoc))
	}
	if patch.CarrierCode != nil {
		sets = append(sets, "carrier_code = "+arg(*patch.CarrierCode))
	}
	if patch.DriverName != nil {
		sets = append(sets, "driver_name = "+arg(*patch.DriverName))
	}
	if patch.TrailerNo != nil {
		sets = append(sets, "trailer_no = "+arg(*patch.TrailerNo))
	}
	if patch.ShipReqDate != nil {
		sets = append(sets, "ship_req_date = "+arg(*patch.ShipReqDate))
	}
	if patch.ETA != nil {
		sets = append(sets, "eta = "+arg(*patch.ETA))
	}
	sets = append(sets, "status = "+arg(string(finalStatus)))
	sets = append(sets, "updated_at = "+arg(updatedAt))

	query := "UPDATE loads SET " + strings.Join(sets, ", ") + " WHERE load_id = " + arg(loadID) + ";"

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: failed to update load %s: %v", apperrors.ErrPersistence, loadID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: load %s", apperrors.ErrNotFound, loadID)
	}
	return nil
}

// UpdateLoadStatus writes only status and updated_at.
func (r *PgxLoadRepository) UpdateLoadStatus(ctx context.Context, loadID string, status domain.LoadStatus, updatedAt time.Time) error {
	query := `UPDATE loads SET status = $1, updated_at = $2 WHERE load_id = $3;`

	tag, err := r.Pool.Exec(ctx, query, string(status), updatedAt, loadID)
	if err != nil {
		return fmt.Errorf("%w: failed to update status of load %s: %v", apperrors.ErrPersistence, loadID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: load %s", apperrors.ErrNotFound, loadID)
	}
	return nil
}

// UpsertLoads inserts or overwrites loads keyed on load_id, in one transaction.
func (r *PgxLoadRepository) UpsertLoads(ctx context.Context, loads []domain.Load) error {
	if len(loads) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO loads (load_id, ship_from_loc, carrier_code, status, driver_name, trailer_no, ship_req_date, eta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (load_id) DO UPDATE SET
			ship_from_loc = EXCLUDED.ship_from_loc,
			carrier_code = EXCLUDED.carrier_code,
			status = EXCLUDED.status,
			driver_name = EXCLUDED.driver_name,
			trailer_no = EXCLUDED.trailer_no,
			ship_req_date = EXCLUDED.ship_req_date,
			eta = EXCLUDED.eta,
			updated_at = EXCLUDED.updated_at;
	`
	for _, load := range loads {
		m := mapping.ToModelLoad(load)
		_, err := tx.Exec(ctx, query,
			m.LoadID,
			m.ShipFromLoc,
			m.CarrierCode,
			m.Status,
			m.DriverName,
			m.TrailerNo,
			m.ShipReqDate,
			m.ETA,
			m.CreatedAt,
			m.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: failed to upsert load %s: %v", apperrors.ErrPersistence, m.LoadID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// NotifyLoadChanged emits a pg_notify on the loads_changed channel. The
// payload names the table and load; subscribers reload rather than diff.
func (r *PgxLoadRepository) NotifyLoadChanged(ctx context.Context, tableName, loadID string) error {
	payload, err := json.Marshal(map[string]string{"table": tableName, "loadID": loadID})
	if err != nil {
		return fmt.Errorf("failed to marshal change payload: %w", err)
	}

	_, err = r.Pool.Exec(ctx, `SELECT pg_notify($1, $2);`, loadChangedChannel, string(payload))
	if err != nil {
		return fmt.Errorf("failed to notify change for load %s: %w", loadID, err)
	}
	return nil
}
