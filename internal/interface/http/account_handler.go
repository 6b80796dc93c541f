package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/nasirhussainn/qwork-admin-dashboard/internal/application"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/validation"
)

// AccountHandler serves the user moderation endpoints. Payload shapes match
// what the dashboard client already parses: a flat envelope with a users array
// for listings and {message} for mutations.
type AccountHandler struct {
	Svc    *app.ModerationService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *app.ModerationService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func parseListQuery(c *gin.Context) (int, int, moderation.Status) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	status := moderation.Status(c.DefaultQuery("status", string(moderation.FilterAll)))
	return page, limit, status
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func actorFromCtx(c *gin.Context) app.Actor {
	return app.Actor{
		AdminID:   c.GetString("adminID"),
		IP:        c.GetString("real_ip"),
		UserAgent: c.Request.UserAgent(),
	}
}

func accountJSON(a *entity.Account) gin.H {
	return gin.H{
		"id":         a.ID,
		"email":      a.Email,
		"is_premium": a.IsPremium,
		"is_active":  a.IsActive,
		"status":     a.Status,
		"interests":  a.Interests,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
		"profile": gin.H{
			"first_name":            a.Profile.FirstName,
			"last_name":             a.Profile.LastName,
			"profile_image":         a.Profile.ProfileImage,
			"date_of_birth":         a.Profile.DateOfBirth,
			"address":               a.Profile.Address,
			"city":                  a.Profile.City,
			"state":                 a.Profile.State,
			"years_of_experience":   a.Profile.YearsOfExperience,
			"availability":          a.Profile.Availability,
			"professional_headshot": a.Profile.ProfessionalHeadshot,
			"professional_summary":  a.Profile.ProfessionalSummary,
		},
	}
}

func (h *AccountHandler) GetAll(c *gin.Context) {
	page, limit, status := parseListQuery(c)
	accounts, total, page, limit, err := h.Svc.ListAccounts(c.Request.Context(), page, limit, status)
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.Logger.WithError(err).Error("list accounts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list users"})
		return
	}

	users := make([]gin.H, 0, len(accounts))
	for i := range accounts {
		users = append(users, accountJSON(&accounts[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": totalPages(total, limit),
		"users":      users,
	})
}

func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.Svc.GetAccount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.Logger.WithError(err).WithField("id", id).Error("get account failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, accountJSON(a))
}

func (h *AccountHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	msg, err := h.Svc.UpdateAccountStatus(c.Request.Context(), id, moderation.Status(req.Status), actorFromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, app.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			h.Logger.WithError(err).WithField("id", id).Error("update account status failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update status"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteAccount(c.Request.Context(), id, actorFromCtx(c)); err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.Logger.WithError(err).WithField("id", id).Error("delete account failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
