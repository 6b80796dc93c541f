package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	repo "github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/repository"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/helpers"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

// DashboardStats is the payload behind the landing page's stat cards and the
// status distribution chart.
type DashboardStats struct {
	TotalUsers         int                       `json:"total_users"`
	TotalPortfolios    int                       `json:"total_portfolios"`
	UsersByStatus      map[moderation.Status]int `json:"users_by_status"`
	PortfoliosByStatus map[moderation.Status]int `json:"portfolios_by_status"`
	GeneratedAt        time.Time                 `json:"generated_at"`
}

// StatsService aggregates per-status counts, cached in Redis; moderation
// mutations invalidate the cache so cards track the queue closely.
type StatsService struct {
	Accounts   repo.AccountRepository
	Portfolios repo.PortfolioRepository
	Redis      *redis.Client
	Logger     *logrus.Logger
	CacheTTL   time.Duration
}

func NewStatsService(accounts repo.AccountRepository, portfolios repo.PortfolioRepository, rdb *redis.Client, logger *logrus.Logger, ttl time.Duration) *StatsService {
	return &StatsService{Accounts: accounts, Portfolios: portfolios, Redis: rdb, Logger: logger, CacheTTL: ttl}
}

func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if s.Redis != nil {
		var cached DashboardStats
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, statsCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	userCounts, err := s.Accounts.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	portfolioCounts, err := s.Portfolios.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		UsersByStatus:      userCounts,
		PortfoliosByStatus: portfolioCounts,
		GeneratedAt:        time.Now().UTC(),
	}
	for _, n := range userCounts {
		stats.TotalUsers += n
	}
	for _, n := range portfolioCounts {
		stats.TotalPortfolios += n
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, statsCacheKey, stats, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("stats cache write failed")
		}
	}
	return stats, nil
}
