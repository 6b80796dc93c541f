package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/container"
	handlers "github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/http"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/middleware"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/helpers"
)

// AccountModule wires the user moderation routes.
// Protected: GET /api/account/get-all, GET /api/account/get-by-id/:id,
// PATCH /api/account/update-status/:id, DELETE /api/account/delete/:id
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/account")
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
