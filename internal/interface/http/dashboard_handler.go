package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/nasirhussainn/qwork-admin-dashboard/internal/application"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/response"
)

// DashboardHandler serves the landing page stats and the back-office search box.
type DashboardHandler struct {
	Stats  *app.StatsService
	Mod    *app.ModerationService
	Logger *logrus.Logger
}

func NewDashboardHandler(stats *app.StatsService, mod *app.ModerationService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Stats: stats, Mod: mod, Logger: logger}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.Stats.Dashboard(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("dashboard stats failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load stats", nil)
		return
	}
	response.Success(c, http.StatusOK, stats, "dashboard stats", nil)
}

func (h *DashboardHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	kind := moderation.KindUser
	if c.Query("kind") == string(moderation.KindPortfolio) {
		kind = moderation.KindPortfolio
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Mod.SearchIndexed(c.Request.Context(), kind, q, size)
	if err != nil {
		h.Logger.WithError(err).WithField("q", q).Error("search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results", map[string]any{"kind": kind, "count": len(hits)})
}
