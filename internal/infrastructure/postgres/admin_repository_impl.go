package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/repository"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

const adminColumns = `id, email, password_hash, name, avatar_url, created_at, updated_at`

func scanAdmin(row pgx.Row) (*entity.Admin, error) {
	a := &entity.Admin{}
	err := row.Scan(&a.ID, &a.Email, &a.Password, &a.Name, &a.AvatarURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+adminColumns+" FROM admins WHERE id = $1", id)
	return scanAdmin(row)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+adminColumns+" FROM admins WHERE email = $1", email)
	return scanAdmin(row)
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE admins SET password_hash = $1, updated_at = $2 WHERE id = $3
	`, passwordHash, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AdminRepository) UpdateAvatar(ctx context.Context, id string, avatarURL string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE admins SET avatar_url = $1, updated_at = $2 WHERE id = $3
	`, avatarURL, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.AdminRepository = (*AdminRepository)(nil)
