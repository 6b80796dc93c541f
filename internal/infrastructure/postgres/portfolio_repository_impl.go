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

type PortfolioRepository struct {
	pool *pgxpool.Pool
}

func NewPortfolioRepository(pool *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

const portfolioColumns = `
	id, user_id, title, description, status, video, supporting_document,
	created_at, updated_at, images, keywords
`

func scanPortfolio(row pgx.Row) (*entity.Portfolio, error) {
	p := &entity.Portfolio{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.Status,
		&p.Video, &p.SupportingDocument, &p.CreatedAt, &p.UpdatedAt,
		&p.Images, &p.Keywords,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PortfolioRepository) List(ctx context.Context, page, limit int, status moderation.Status) ([]entity.Portfolio, int, error) {
	where := ""
	args := []any{}
	if status != "" && status != moderation.FilterAll {
		where = " WHERE status = $1"
		args = append(args, string(status))
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM portfolios"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := "SELECT " + portfolioColumns + " FROM portfolios" + where +
		" ORDER BY created_at DESC, id DESC"
	if where == "" {
		query += " LIMIT $1 OFFSET $2"
	} else {
		query += " LIMIT $2 OFFSET $3"
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	portfolios := make([]entity.Portfolio, 0, limit)
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, 0, err
		}
		portfolios = append(portfolios, *p)
	}
	return portfolios, total, rows.Err()
}

func (r *PortfolioRepository) GetByID(ctx context.Context, id int64) (*entity.Portfolio, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+portfolioColumns+" FROM portfolios WHERE id = $1", id)
	return scanPortfolio(row)
}

func (r *PortfolioRepository) UpdateStatus(ctx context.Context, id int64, status moderation.Status) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE portfolios SET status = $1, updated_at = $2 WHERE id = $3
	`, string(status), time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PortfolioRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PortfolioRepository) CountByStatus(ctx context.Context) (map[moderation.Status]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM portfolios GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStatusCounts(rows)
}

var _ repository.PortfolioRepository = (*PortfolioRepository)(nil)
