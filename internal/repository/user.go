package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kalichetiAravindreddy/image-search/internal/domain"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Upsert inserts the user keyed by google_id, refreshing display name,
// email and avatar on conflict. The returned user carries the stored ID
// and timestamps.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) (*domain.User, error) {
	var stored domain.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (id, google_id, display_name, email, avatar, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 ON CONFLICT (google_id) DO UPDATE
		 SET display_name = EXCLUDED.display_name,
		     email = EXCLUDED.email,
		     avatar = EXCLUDED.avatar,
		     updated_at = EXCLUDED.updated_at
		 RETURNING id, google_id, display_name, email, avatar, created_at, updated_at`,
		u.ID, u.GoogleID, u.DisplayName, u.Email, u.Avatar, u.CreatedAt,
	).Scan(&stored.ID, &stored.GoogleID, &stored.DisplayName, &stored.Email,
		&stored.Avatar, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, google_id, display_name, email, avatar, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.GoogleID, &u.DisplayName, &u.Email, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateAvatar replaces the stored avatar URL, used after mirroring the
// Google avatar to object storage.
func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE users SET avatar = $1 WHERE id = $2`,
		avatar, id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
