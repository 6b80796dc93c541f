package repository

import (
	"context"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
)

// AdminRepository defines dashboard operator persistence.
type AdminRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateAvatar(ctx context.Context, id string, avatarURL string) error
}
