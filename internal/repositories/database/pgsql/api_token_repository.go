package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	"github.com/willbanks/load-coordinator/internal/models"
	"github.com/willbanks/load-coordinator/internal/utils/mapping"
)

const apiTokenColumns = `id, user_id, name, token_hash, last_used_at, expires_at, created_at, updated_at`

type PgxAPITokenRepository struct {
	BaseRepository
}

// newPgxAPITokenRepository creates a new repository for integration tokens.
func newPgxAPITokenRepository(pool *pgxpool.Pool) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

func scanAPIToken(row pgx.Row) (*models.APIToken, error) {
	var m models.APIToken
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.TokenHash,
		&m.LastUsedAt,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persists a new API token.
func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	m := mapping.ToModelAPIToken(*token)

	query := `
		INSERT INTO api_tokens (id, user_id, name, token_hash, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, m.ID, m.UserID, m.Name, m.TokenHash, m.ExpiresAt, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to save api token: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// FindByID retrieves an API token by its ID.
func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE id = $1;`

	m, err := scanAPIToken(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api token %s: %w", id, err)
	}

	d := mapping.ToDomainAPIToken(*m)
	return &d, nil
}

// FindByUserID retrieves all API tokens for a specific user.
func (r *PgxAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE user_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query api tokens for user %s: %w", userID, err)
	}
	defer rows.Close()

	var ms []models.APIToken
	for rows.Next() {
		m, err := scanAPIToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api token row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate api token rows: %w", err)
	}

	return mapping.ToDomainAPITokenSlice(ms), nil
}

// FindByTokenHash retrieves the token whose stored hash matches.
func (r *PgxAPITokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE token_hash = $1;`

	m, err := scanAPIToken(r.Pool.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api token by hash: %w", err)
	}

	d := mapping.ToDomainAPIToken(*m)
	return &d, nil
}

// TouchLastUsed stamps last_used_at for a token.
func (r *PgxAPITokenRepository) TouchLastUsed(ctx context.Context, id string) error {
	query := `UPDATE api_tokens SET last_used_at = $1, updated_at = $1 WHERE id = $2;`

	tag, err := r.Pool.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: failed to touch api token %s: %v", apperrors.ErrPersistence, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: api token %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// Delete removes an API token by ID.
func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM api_tokens WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete api token %s: %v", apperrors.ErrPersistence, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: api token %s", apperrors.ErrNotFound, id)
	}
	return nil
}
