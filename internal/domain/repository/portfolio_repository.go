package repository

import (
	"context"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

// PortfolioRepository defines portfolio moderation persistence.
type PortfolioRepository interface {
	List(ctx context.Context, page, limit int, status moderation.Status) ([]entity.Portfolio, int, error)
	GetByID(ctx context.Context, id int64) (*entity.Portfolio, error)
	UpdateStatus(ctx context.Context, id int64, status moderation.Status) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[moderation.Status]int, error)
}
