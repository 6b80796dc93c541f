package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/container"
	handlers "github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/http"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/middleware"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/helpers"
)

// DashboardModule wires the stats and search routes.
// Protected: GET /api/dashboard/stats, GET /api/search
type DashboardModule struct {
	Handler *handlers.DashboardHandler
	JWT     *helpers.JWTManager
}

func NewDashboardModule(h *handlers.DashboardHandler, jwt *helpers.JWTManager) *DashboardModule {
	return &DashboardModule{Handler: h, JWT: jwt}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAdminID(), nil))
	{
		auth.GET("/dashboard/stats", m.Handler.GetStats)
		auth.GET("/search", m.Handler.Search)
	}
}
