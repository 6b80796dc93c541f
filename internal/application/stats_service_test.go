package application

import (
	"context"
	"testing"
	"time"

	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

func TestDashboardStatsAggregates(t *testing.T) {
	a1 := pendingAccount(136)
	a2 := pendingAccount(137)
	a2.Status = moderation.StatusApproved
	accounts := newFakeAccountRepo(a1, a2)

	p1 := pendingPortfolio(115)
	portfolios := newFakePortfolioRepo(p1)

	svc := NewStatsService(accounts, portfolios, nil, nil, time.Minute)
	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.TotalUsers != 2 {
		t.Fatalf("TotalUsers = %d, want 2", stats.TotalUsers)
	}
	if stats.TotalPortfolios != 1 {
		t.Fatalf("TotalPortfolios = %d, want 1", stats.TotalPortfolios)
	}
	if stats.UsersByStatus[moderation.StatusPending] != 1 || stats.UsersByStatus[moderation.StatusApproved] != 1 {
		t.Fatalf("UsersByStatus = %v", stats.UsersByStatus)
	}
	if stats.PortfoliosByStatus[moderation.StatusPending] != 1 {
		t.Fatalf("PortfoliosByStatus = %v", stats.PortfoliosByStatus)
	}
	if stats.GeneratedAt.IsZero() {
		t.Fatal("GeneratedAt not set")
	}
}
