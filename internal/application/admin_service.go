package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
	repo "github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/repository"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/helpers"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenTTL = 30 * time.Minute

func sessionKey(adminID string) string { return "admin:session:" + adminID }
func resetKey(token string) string     { return "admin:reset:token:" + token }

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339Nano) }

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// AdminService owns dashboard operator auth: login, session rotation, reset
// password over emailed tokens, and avatar upload.
type AdminService struct {
	Repo             repo.AdminRepository
	Audit            repo.AuditRepository
	JWT              *helpers.JWTManager
	Redis            *redis.Client
	Logger           *logrus.Logger
	GCS              *storage.Client
	GCSBucket        string
	Pub              *helpers.RabbitPublisher
	CompanyName      string
	ResetPasswordURL string
	MailEnabled      bool
}

func NewAdminService(r repo.AdminRepository, audit repo.AuditRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, gcs *storage.Client, gcsBucket string, pub *helpers.RabbitPublisher, companyName, resetURL string, mailEnabled bool) *AdminService {
	return &AdminService{
		Repo:             r,
		Audit:            audit,
		JWT:              jwt,
		Redis:            rdb,
		Logger:           logger,
		GCS:              gcs,
		GCSBucket:        gcsBucket,
		Pub:              pub,
		CompanyName:      companyName,
		ResetPasswordURL: resetURL,
		MailEnabled:      mailEnabled,
	}
}

// Login validates credentials, issues a token pair and records the session in Redis.
func (s *AdminService) Login(ctx context.Context, email, password string) (*entity.Admin, TokenPair, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || a == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.issueTokens(ctx, a)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return a, pair, nil
}

func (s *AdminService) issueTokens(ctx context.Context, a *entity.Admin) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("admin_id", a.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("admin_id", a.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(a.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"admin_id":   a.ID,
			"email":      a.Email,
			"name":       a.Name,
			"avatar_url": a.AvatarURL,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and token pair when the refresh token and
// the current Redis session agree.
func (s *AdminService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	a, err := s.Repo.GetByID(ctx, claims.AdminID)
	if err != nil || a == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(a.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.issueTokens(ctx, a)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, a.ID, nil
}

// Logout drops the Redis session so outstanding tokens stop validating.
func (s *AdminService) Logout(ctx context.Context, adminID string) {
	if s.Redis == nil || adminID == "" {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, sessionKey(adminID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("admin_id", adminID).Warn("session delete failed")
	}
}

func (s *AdminService) Profile(ctx context.Context, adminID string) (*entity.Admin, error) {
	a, err := s.Repo.GetByID(ctx, adminID)
	if err != nil || a == nil {
		return nil, ErrAdminNotFound
	}
	return a, nil
}

// ForgotPassword stores a one-shot reset token in Redis and enqueues the
// reset email. Unknown emails still report success to avoid enumeration; the
// attempt is audited either way.
func (s *AdminService) ForgotPassword(ctx context.Context, email, ip, userAgent string) error {
	a, _ := s.Repo.GetByEmail(ctx, email)
	if a == nil || s.Redis == nil {
		s.auditAuth(ctx, "", email, "forgot_password_unknown", ip, userAgent)
		return nil
	}
	token, err := randomToken(32)
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, resetKey(token), a.ID, resetTokenTTL).Err(); err != nil {
		return err
	}
	link := s.ResetPasswordURL + "?token=" + token
	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:       a.Email,
			Template: "reset_password",
			Data: map[string]any{
				"Company":   s.CompanyName,
				"Name":      a.Name,
				"ResetURL":  link,
				"ExpiresIn": resetTokenTTL.String(),
			},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", a.Email).Warn("reset email enqueue failed")
		}
	}
	s.auditAuth(ctx, a.ID, a.Email, "forgot_password_issue", ip, userAgent)
	return nil
}

// ResetWithToken redeems an emailed reset token and sets the new password.
func (s *AdminService) ResetWithToken(ctx context.Context, token, newPassword string) error {
	if s.Redis == nil {
		return ErrInvalidResetToken
	}
	adminID, err := s.Redis.Get(ctx, resetKey(token)).Result()
	if err != nil || adminID == "" {
		return ErrInvalidResetToken
	}
	if err := s.setPassword(ctx, adminID, newPassword); err != nil {
		return err
	}
	s.Redis.Del(ctx, resetKey(token))
	s.auditAuth(ctx, adminID, "", "reset_password_token", "", "")
	return nil
}

// ResetOwn changes the password of a logged-in admin.
func (s *AdminService) ResetOwn(ctx context.Context, adminID, newPassword string) error {
	if err := s.setPassword(ctx, adminID, newPassword); err != nil {
		return err
	}
	s.auditAuth(ctx, adminID, "", "reset_password_session", "", "")
	return nil
}

func (s *AdminService) setPassword(ctx context.Context, adminID, newPassword string) error {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, adminID, hash)
}

// UploadAvatar stores the avatar in GCS and updates the admin row and session.
func (s *AdminService) UploadAvatar(ctx context.Context, adminID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	a, err := s.Repo.GetByID(ctx, adminID)
	if err != nil || a == nil {
		return "", ErrAdminNotFound
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", adminID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateAvatar(ctx, adminID, url); err != nil {
		return "", err
	}
	if s.Redis != nil {
		s.Redis.HSet(ctx, sessionKey(adminID), map[string]any{
			"avatar_url": url,
			"updated_at": nowRFC3339(),
		})
	}
	return url, nil
}

func (s *AdminService) auditAuth(ctx context.Context, adminID, email, action, ip, userAgent string) {
	if s.Audit == nil {
		return
	}
	md := map[string]any{}
	if email != "" {
		md["email"] = email
	}
	err := s.Audit.Insert(ctx, repo.AuditEntry{
		AdminID:    adminID,
		EntityKind: "admin",
		EntityID:   adminID,
		Action:     action,
		IP:         ip,
		UserAgent:  userAgent,
		Metadata:   md,
	})
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
