package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/container"
	handlers "github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/http"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/middleware"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/helpers"
)

// PortfolioModule wires the portfolio moderation routes, mirroring the account
// module's path scheme under /api/portfolio.
type PortfolioModule struct {
	Handler *handlers.PortfolioHandler
	JWT     *helpers.JWTManager
}

func NewPortfolioModule(h *handlers.PortfolioHandler, jwt *helpers.JWTManager) *PortfolioModule {
	return &PortfolioModule{Handler: h, JWT: jwt}
}

func (m *PortfolioModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/portfolio")
	grp.Use(middleware.Auth(container.GetRedis(), m.JWT))
	grp.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAdminID(), nil),
	)
	{
		grp.GET("/get-all", m.Handler.GetAll)
		grp.GET("/get-by-id/:id", m.Handler.GetByID)
		grp.PATCH("/update-status/:id", m.Handler.UpdateStatus)
		grp.DELETE("/delete/:id", m.Handler.Delete)
	}
}
