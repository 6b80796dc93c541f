package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/container"
	handlers "github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/http"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/middleware"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/helpers"
)

// AdminModule wires operator auth routes.
// Public: POST /api/admin/login, POST /api/admin/refresh,
// POST /api/admin/forget-password, PATCH /api/admin/reset-password
// Protected: POST /api/admin/logout, GET /api/admin/me, PATCH /api/admin/avatar
type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	forgetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	grp := rg.Group("/admin")
	grp.POST("/login", loginLimiter, m.Handler.Login)
	grp.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	grp.POST("/forget-password", forgetLimiter, m.Handler.ForgotPassword)
	grp.PATCH("/reset-password", resetLimiter, m.Handler.ResetPassword)

	auth := grp.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAdminID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
		auth.PATCH("/avatar", m.Handler.UploadAvatar)
	}
}
