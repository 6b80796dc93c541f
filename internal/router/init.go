package router

import (
	app "github.com/nasirhussainn/qwork-admin-dashboard/internal/application"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/container"
	pginfra "github.com/nasirhussainn/qwork-admin-dashboard/internal/infrastructure/postgres"
	handlers "github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/http"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/router/modules"
)

// InitModules builds the services from container singletons and registers all
// feature modules with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	accounts := pginfra.NewAccountRepository(pool)
	portfolios := pginfra.NewPortfolioRepository(pool)
	admins := pginfra.NewAdminRepository(pool)
	audit := pginfra.NewAuditRepository(pool)

	modSvc := app.NewModerationService(
		accounts,
		portfolios,
		audit,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESAccountsIndex,
		cfg.ESPortfoliosIndex,
	)
	adminSvc := app.NewAdminService(
		admins,
		audit,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRabbitPub(),
		cfg.CompanyName,
		cfg.ResetPasswordURL,
		cfg.MailSendEnabled,
	)
	statsSvc := app.NewStatsService(accounts, portfolios, container.GetRedis(), logger, cfg.StatsCacheTTL)

	accountHandler := handlers.NewAccountHandler(modSvc, logger)
	portfolioHandler := handlers.NewPortfolioHandler(modSvc, logger)
	adminHandler := handlers.NewAdminHandler(adminSvc, container.GetJWT(), logger, cfg.CookieDomain, cfg.CookieSecure)
	dashboardHandler := handlers.NewDashboardHandler(statsSvc, modSvc, logger)

	r.Add(modules.NewAccountModule(accountHandler, container.GetJWT()))
	r.Add(modules.NewPortfolioModule(portfolioHandler, container.GetJWT()))
	r.Add(modules.NewAdminModule(adminHandler, container.GetJWT()))
	r.Add(modules.NewDashboardModule(dashboardHandler, container.GetJWT()))
}
