package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	"github.com/willbanks/load-coordinator/internal/models"
	"github.com/willbanks/load-coordinator/internal/utils/mapping"
)

const userColumns = `user_id, email, full_name, role, organization, location_filter, carrier_filter, password_hash, created_at, updated_at, refresh_token_hash, refresh_token_expiry_time`

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user profile data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUserProfile(row pgx.Row) (*models.UserProfile, error) {
	var m models.UserProfile
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.FullName,
		&m.Role,
		&m.Organization,
		&m.LocationFilter,
		&m.CarrierFilter,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE user_id = $1;`

	m, err := scanUserProfile(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	d := mapping.ToDomainUserProfile(*m)
	return &d, nil
}

// FindUserByEmail retrieves a user by their email address.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE lower(email) = lower($1);`

	m, err := scanUserProfile(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	d := mapping.ToDomainUserProfile(*m)
	return &d, nil
}

// FindUsers retrieves a paginated list of users ordered by creation time.
func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.UserProfile, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + userColumns + ` FROM user_profiles ORDER BY created_at ASC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var ds []domain.UserProfile
	for rows.Next() {
		m, err := scanUserProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		ds = append(ds, mapping.ToDomainUserProfile(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return ds, nil
}

// SaveUser persists a new user profile.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.UserProfile) error {
	m := mapping.ToModelUserProfile(user)

	query := `
		INSERT INTO user_profiles (user_id, email, full_name, role, organization, location_filter, carrier_filter, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.FullName,
		m.Role,
		m.Organization,
		m.LocationFilter,
		m.CarrierFilter,
		m.PasswordHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("%w: failed to save user %s: %v", apperrors.ErrPersistence, m.UserID, err)
	}
	return nil
}

// UpdateUser updates an existing user profile.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.UserProfile) error {
	m := mapping.ToModelUserProfile(user)

	query := `
		UPDATE user_profiles
		SET full_name = $1, role = $2, organization = $3, location_filter = $4, carrier_filter = $5, updated_at = $6
		WHERE user_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.FullName,
		m.Role,
		m.Organization,
		m.LocationFilter,
		m.CarrierFilter,
		m.UpdatedAt,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update user %s: %v", apperrors.ErrPersistence, m.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, m.UserID)
	}
	return nil
}

// UpdateRefreshToken stores the refresh token hash and expiry for a user.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	query := `UPDATE user_profiles SET refresh_token_hash = $1, refresh_token_expiry_time = $2 WHERE user_id = $3;`

	tag, err := r.Pool.Exec(ctx, query, refreshTokenHash, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("%w: failed to update refresh token for user %s: %v", apperrors.ErrPersistence, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

// ClearRefreshToken removes the stored refresh token for a user.
func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE user_profiles SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL WHERE user_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("%w: failed to clear refresh token for user %s: %v", apperrors.ErrPersistence, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}
