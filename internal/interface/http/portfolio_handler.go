package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/nasirhussainn/qwork-admin-dashboard/internal/application"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/validation"
)

// PortfolioHandler serves the portfolio moderation endpoints. Listings use the
// nested pagination envelope the dashboard client expects, with rows keyed by
// portfolio_id.
type PortfolioHandler struct {
	Svc    *app.ModerationService
	Logger *logrus.Logger
}

func NewPortfolioHandler(svc *app.ModerationService, logger *logrus.Logger) *PortfolioHandler {
	return &PortfolioHandler{Svc: svc, Logger: logger}
}

func portfolioJSON(p *entity.Portfolio) gin.H {
	return gin.H{
		"portfolio_id":        p.ID,
		"user_id":             p.UserID,
		"title":               p.Title,
		"description":         p.Description,
		"status":              p.Status,
		"video":               p.Video,
		"supporting_document": p.SupportingDocument,
		"portfolio_images":    p.Images,
		"portfolio_keywords":  p.Keywords,
		"created_at":          p.CreatedAt,
		"updated_at":          p.UpdatedAt,
	}
}

func (h *PortfolioHandler) GetAll(c *gin.Context) {
	page, limit, status := parseListQuery(c)
	portfolios, total, page, limit, err := h.Svc.ListPortfolios(c.Request.Context(), page, limit, status)
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.Logger.WithError(err).Error("list portfolios failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list portfolios"})
		return
	}

	data := make([]gin.H, 0, len(portfolios))
	for i := range portfolios {
		data = append(data, portfolioJSON(&portfolios[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages(total, limit),
		},
		"data": data,
	})
}

func (h *PortfolioHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Svc.GetPortfolio(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrPortfolioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Portfolio not found"})
			return
		}
		h.Logger.WithError(err).WithField("id", id).Error("get portfolio failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch portfolio"})
		return
	}
	c.JSON(http.StatusOK, portfolioJSON(p))
}

func (h *PortfolioHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	msg, err := h.Svc.UpdatePortfolioStatus(c.Request.Context(), id, moderation.Status(req.Status), actorFromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, app.ErrPortfolioNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Portfolio not found"})
		default:
			h.Logger.WithError(err).WithField("id", id).Error("update portfolio status failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update status"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeletePortfolio(c.Request.Context(), id, actorFromCtx(c)); err != nil {
		if errors.Is(err, app.ErrPortfolioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Portfolio not found"})
			return
		}
		h.Logger.WithError(err).WithField("id", id).Error("delete portfolio failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete portfolio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted successfully"})
}
