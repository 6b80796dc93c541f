package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/repository"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

// ErrNotFound aliases the repository sentinel for readability inside this package.
var ErrNotFound = repository.ErrNotFound

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `
	id, email, is_premium, is_active, status, created_at, updated_at,
	first_name, last_name, profile_image, date_of_birth, address, city, state,
	years_of_experience, availability, professional_headshot, professional_summary,
	interests
`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	err := row.Scan(
		&a.ID, &a.Email, &a.IsPremium, &a.IsActive, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&a.Profile.FirstName, &a.Profile.LastName, &a.Profile.ProfileImage,
		&a.Profile.DateOfBirth, &a.Profile.Address, &a.Profile.City, &a.Profile.State,
		&a.Profile.YearsOfExperience, &a.Profile.Availability,
		&a.Profile.ProfessionalHeadshot, &a.Profile.ProfessionalSummary,
		&a.Interests,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) List(ctx context.Context, page, limit int, status moderation.Status) ([]entity.Account, int, error) {
	where := ""
	args := []any{}
	if status != "" && status != moderation.FilterAll {
		where = " WHERE status = $1"
		args = append(args, string(status))
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM accounts"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := "SELECT " + accountColumns + " FROM accounts" + where +
		" ORDER BY created_at DESC, id DESC"
	if where == "" {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	} else {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	accounts := make([]entity.Account, 0, limit)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, total, rows.Err()
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = $1", id)
	return scanAccount(row)
}

func (r *AccountRepository) UpdateStatus(ctx context.Context, id int64, status moderation.Status) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts SET status = $1, updated_at = $2 WHERE id = $3
	`, string(status), time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) CountByStatus(ctx context.Context) (map[moderation.Status]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM accounts GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStatusCounts(rows)
}

func scanStatusCounts(rows pgx.Rows) (map[moderation.Status]int, error) {
	out := make(map[moderation.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[moderation.Status(status)] = count
	}
	return out, rows.Err()
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
