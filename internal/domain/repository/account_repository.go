package repository

import (
	"context"
	"errors"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

// ErrNotFound is returned when a row lookup or single-row mutation matched nothing.
var ErrNotFound = errors.New("not found")

// AccountRepository defines account moderation persistence. List returns one
// page plus the total row count for the given filter; status is FilterAll for
// an unfiltered listing.
type AccountRepository interface {
	List(ctx context.Context, page, limit int, status moderation.Status) ([]entity.Account, int, error)
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	UpdateStatus(ctx context.Context, id int64, status moderation.Status) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[moderation.Status]int, error)
}
