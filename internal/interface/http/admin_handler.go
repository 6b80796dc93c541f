package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/nasirhussainn/qwork-admin-dashboard/internal/application"
	"github.com/nasirhussainn/qwork-admin-dashboard/internal/interface/middleware"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/helpers"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/response"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/validation"
)

// AdminHandler serves dashboard operator auth: login, token refresh, profile,
// password reset and avatar upload.
type AdminHandler struct {
	Svc     *app.AdminService
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAdminHandler(svc *app.AdminService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AdminHandler {
	return &AdminHandler{Svc: svc, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"admin": gin.H{
			"id":         a.ID,
			"email":      a.Email,
			"name":       a.Name,
			"avatar_url": a.AvatarURL,
		},
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "login successful", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *AdminHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	refresh := req.RefreshToken
	if refresh == "" {
		refresh, _ = c.Cookie("refresh_token")
	}
	if refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxAdminIDKey))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AdminHandler) Me(c *gin.Context) {
	a, err := h.Svc.Profile(c.Request.Context(), c.GetString(middleware.CtxAdminIDKey))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "admin not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         a.ID,
		"email":      a.Email,
		"name":       a.Name,
		"avatar_url": a.AvatarURL,
	}, "profile", nil)
}

// ForgotPassword always reports success so callers cannot probe which emails
// have an admin account.
func (h *AdminHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email, c.GetString("real_ip"), c.Request.UserAgent()); err != nil {
		h.Logger.WithError(err).Warn("forgot password failed")
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "if that email exists, a reset link has been sent", nil)
}

// ResetPassword accepts either an emailed reset token or a live session. With
// a token it redeems it; without one it changes the password of the admin
// identified by the access token.
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if req.Token != "" {
		err := h.Svc.ResetWithToken(c.Request.Context(), req.Token, req.NewPassword)
		if err != nil {
			if errors.Is(err, app.ErrInvalidResetToken) {
				response.Error[any](c, http.StatusUnauthorized, "invalid or expired reset token", nil)
				return
			}
			h.Logger.WithError(err).Warn("reset password failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to reset password", nil)
			return
		}
		response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
		return
	}

	token := middleware.BearerOrCookieToken(c)
	if token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing reset token", nil)
		return
	}
	claims, err := h.JWT.ParseAccessToken(token)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
		return
	}
	if err := h.Svc.ResetOwn(c.Request.Context(), claims.AdminID, req.NewPassword); err != nil {
		h.Logger.WithError(err).Warn("reset password failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to reset password", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}

func (h *AdminHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to read avatar file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString(middleware.CtxAdminIDKey), src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).Warn("avatar upload failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to upload avatar", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}
