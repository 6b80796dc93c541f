package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/entity"
	repo "github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/repository"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/helpers"
	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrPortfolioNotFound = errors.New("portfolio not found")
)

// statsCacheKey is shared with StatsService; moderation mutations invalidate it.
const statsCacheKey = "dashboard:stats"

// Actor identifies the admin performing a moderation action, for auditing.
type Actor struct {
	AdminID   string
	IP        string
	UserAgent string
}

// ModerationService is the server-side authority the dashboard's queue talks
// to: paginated listing, status updates validated against the per-kind status
// table, hard deletes, auditing, and secondary-index upkeep.
type ModerationService struct {
	Accounts   repo.AccountRepository
	Portfolios repo.PortfolioRepository
	Audit      repo.AuditRepository
	Redis      *redis.Client
	Logger     *logrus.Logger
	ES         *elasticsearch.Client
	ESAccounts string
	ESPortfols string
}

func NewModerationService(accounts repo.AccountRepository, portfolios repo.PortfolioRepository, audit repo.AuditRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esAccounts, esPortfolios string) *ModerationService {
	return &ModerationService{
		Accounts:   accounts,
		Portfolios: portfolios,
		Audit:      audit,
		Redis:      rdb,
		Logger:     logger,
		ES:         es,
		ESAccounts: esAccounts,
		ESPortfols: esPortfolios,
	}
}

// clampPage normalizes pagination the way the dashboard expects: page one
// based, limit defaulting to the dashboard's 100 and capped there.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	return page, limit
}

func validFilter(kind moderation.Kind, status moderation.Status) error {
	if status == "" || status == moderation.FilterAll {
		return nil
	}
	if !moderation.ValidStatus(kind, status) {
		return fmt.Errorf("%w: %q for kind %q", moderation.ErrInvalidStatus, status, kind)
	}
	return nil
}

func (s *ModerationService) ListAccounts(ctx context.Context, page, limit int, status moderation.Status) ([]entity.Account, int, int, int, error) {
	page, limit = clampPage(page, limit)
	if err := validFilter(moderation.KindUser, status); err != nil {
		return nil, 0, page, limit, err
	}
	accounts, total, err := s.Accounts.List(ctx, page, limit, status)
	if err != nil {
		return nil, 0, page, limit, err
	}
	return accounts, total, page, limit, nil
}

func (s *ModerationService) GetAccount(ctx context.Context, id int64) (*entity.Account, error) {
	a, err := s.Accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *ModerationService) UpdateAccountStatus(ctx context.Context, id int64, status moderation.Status, actor Actor) (string, error) {
	if !moderation.ValidStatus(moderation.KindUser, status) {
		return "", fmt.Errorf("%w: %q for kind %q", moderation.ErrInvalidStatus, status, moderation.KindUser)
	}
	if err := s.Accounts.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}
	s.audit(ctx, actor, moderation.KindUser, id, "update_status", map[string]any{"status": status})
	s.invalidateStats(ctx)
	if a, err := s.Accounts.GetByID(ctx, id); err == nil {
		s.indexAccount(ctx, a)
	}
	return fmt.Sprintf("User status updated to %q", status), nil
}

func (s *ModerationService) DeleteAccount(ctx context.Context, id int64, actor Actor) error {
	if err := s.Accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	s.audit(ctx, actor, moderation.KindUser, id, "delete", nil)
	s.invalidateStats(ctx)
	s.deleteIndexed(ctx, s.ESAccounts, id)
	return nil
}

func (s *ModerationService) ListPortfolios(ctx context.Context, page, limit int, status moderation.Status) ([]entity.Portfolio, int, int, int, error) {
	page, limit = clampPage(page, limit)
	if err := validFilter(moderation.KindPortfolio, status); err != nil {
		return nil, 0, page, limit, err
	}
	portfolios, total, err := s.Portfolios.List(ctx, page, limit, status)
	if err != nil {
		return nil, 0, page, limit, err
	}
	return portfolios, total, page, limit, nil
}

func (s *ModerationService) GetPortfolio(ctx context.Context, id int64) (*entity.Portfolio, error) {
	p, err := s.Portfolios.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ModerationService) UpdatePortfolioStatus(ctx context.Context, id int64, status moderation.Status, actor Actor) (string, error) {
	if !moderation.ValidStatus(moderation.KindPortfolio, status) {
		return "", fmt.Errorf("%w: %q for kind %q", moderation.ErrInvalidStatus, status, moderation.KindPortfolio)
	}
	if err := s.Portfolios.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrPortfolioNotFound
		}
		return "", err
	}
	s.audit(ctx, actor, moderation.KindPortfolio, id, "update_status", map[string]any{"status": status})
	s.invalidateStats(ctx)
	if p, err := s.Portfolios.GetByID(ctx, id); err == nil {
		s.indexPortfolio(ctx, p)
	}
	return fmt.Sprintf("Portfolio status updated to %q", status), nil
}

func (s *ModerationService) DeletePortfolio(ctx context.Context, id int64, actor Actor) error {
	if err := s.Portfolios.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPortfolioNotFound
		}
		return err
	}
	s.audit(ctx, actor, moderation.KindPortfolio, id, "delete", nil)
	s.invalidateStats(ctx)
	s.deleteIndexed(ctx, s.ESPortfols, id)
	return nil
}

func (s *ModerationService) audit(ctx context.Context, actor Actor, kind moderation.Kind, id int64, action string, metadata map[string]any) {
	if s.Audit == nil {
		return
	}
	err := s.Audit.Insert(ctx, repo.AuditEntry{
		AdminID:    actor.AdminID,
		EntityKind: string(kind),
		EntityID:   fmt.Sprint(id),
		Action:     action,
		IP:         actor.IP,
		UserAgent:  actor.UserAgent,
		Metadata:   metadata,
	})
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"kind": kind, "id": id, "action": action}).Warn("audit insert failed")
	}
}

func (s *ModerationService) invalidateStats(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, statsCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("stats cache invalidation failed")
	}
}

func (s *ModerationService) indexAccount(ctx context.Context, a *entity.Account) {
	doc := map[string]any{
		"id":         a.ID,
		"email":      a.Email,
		"name":       a.Name(),
		"status":     a.Status,
		"created_at": a.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": a.UpdatedAt.Format(time.RFC3339Nano),
	}
	s.indexDoc(ctx, s.ESAccounts, fmt.Sprint(a.ID), doc)
}

func (s *ModerationService) indexPortfolio(ctx context.Context, p *entity.Portfolio) {
	doc := map[string]any{
		"id":          p.ID,
		"user_id":     p.UserID,
		"title":       p.Title,
		"description": p.Description,
		"status":      p.Status,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	s.indexDoc(ctx, s.ESPortfols, fmt.Sprint(p.ID), doc)
}

func (s *ModerationService) indexDoc(ctx context.Context, index, id string, doc map[string]any) {
	if s.ES == nil || index == "" {
		return
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: index, DocumentID: id, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("doc_id", id).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("doc_id", id).Warn("es index response error")
	}
}

func (s *ModerationService) deleteIndexed(ctx context.Context, index string, id int64) {
	if s.ES == nil || index == "" {
		return
	}
	req := esapi.DeleteRequest{Index: index, DocumentID: fmt.Sprint(id)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("doc_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchIndexed performs a multi_match query over one kind's index for the
// back-office search box.
func (s *ModerationService) SearchIndexed(ctx context.Context, kind moderation.Kind, q string, size int) ([]map[string]any, error) {
	if s.ES == nil {
		return []map[string]any{}, nil
	}
	index := s.ESAccounts
	fields := []string{"email^2", "name"}
	if kind == moderation.KindPortfolio {
		index = s.ESPortfols
		fields = []string{"title^2", "description"}
	}
	if index == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": fields,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(index), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
