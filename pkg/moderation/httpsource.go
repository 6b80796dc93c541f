package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSource implements Source against the Q-Work admin REST API. Paths and
// payload shapes follow the production endpoints: accounts are listed under
// /account/get-all with a flat envelope, portfolios under /portfolio/get-all
// with a nested pagination object.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	// Token, when non-nil, supplies the bearer token attached to every request.
	Token func() string
}

func NewHTTPSource(baseURL string, token func() string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
		Token:   token,
	}
}

func kindPath(kind Kind) string {
	if kind == KindPortfolio {
		return "portfolio"
	}
	return "account"
}

func (s *HTTPSource) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.Token != nil {
		if tok := s.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	res, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%s %s: %s: %s", method, path, res.Status, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	return dec.Decode(out)
}

func (s *HTTPSource) FetchPage(ctx context.Context, kind Kind, page, pageSize int, statusFilter Status) (Page, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(pageSize))
	if statusFilter != "" && statusFilter != FilterAll {
		q.Set("status", string(statusFilter))
	}
	path := "/" + kindPath(kind) + "/get-all?" + q.Encode()

	if kind == KindPortfolio {
		var payload struct {
			Pagination struct {
				Page  json.Number `json:"page"`
				Limit json.Number `json:"limit"`
				Total json.Number `json:"total"`
			} `json:"pagination"`
			Data []map[string]any `json:"data"`
		}
		if err := s.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
			return Page{}, err
		}
		items := make([]Entity, 0, len(payload.Data))
		for _, raw := range payload.Data {
			items = append(items, portfolioEntity(raw))
		}
		return Page{
			Items:    items,
			Total:    numToInt(payload.Pagination.Total),
			Page:     numToInt(payload.Pagination.Page),
			PageSize: numToInt(payload.Pagination.Limit),
		}, nil
	}

	var payload struct {
		Page  json.Number      `json:"page"`
		Limit json.Number      `json:"limit"`
		Total json.Number      `json:"total"`
		Users []map[string]any `json:"users"`
	}
	if err := s.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return Page{}, err
	}
	items := make([]Entity, 0, len(payload.Users))
	for _, raw := range payload.Users {
		items = append(items, userEntity(raw))
	}
	return Page{
		Items:    items,
		Total:    numToInt(payload.Total),
		Page:     numToInt(payload.Page),
		PageSize: numToInt(payload.Limit),
	}, nil
}

func (s *HTTPSource) FetchDetail(ctx context.Context, kind Kind, id string) (Entity, error) {
	var raw map[string]any
	if err := s.do(ctx, http.MethodGet, "/"+kindPath(kind)+"/get-by-id/"+id, nil, &raw); err != nil {
		return Entity{}, err
	}
	if kind == KindPortfolio {
		return portfolioEntity(raw), nil
	}
	return userEntity(raw), nil
}

func (s *HTTPSource) UpdateStatus(ctx context.Context, kind Kind, id string, status Status) (string, error) {
	var payload struct {
		Message string `json:"message"`
	}
	body := map[string]string{"status": string(status)}
	if err := s.do(ctx, http.MethodPatch, "/"+kindPath(kind)+"/update-status/"+id, body, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

func (s *HTTPSource) Delete(ctx context.Context, kind Kind, id string) error {
	return s.do(ctx, http.MethodDelete, "/"+kindPath(kind)+"/delete/"+id, nil, nil)
}

var _ Source = (*HTTPSource)(nil)

// userEntity maps one account row into a queue entity. The display name is
// composed from the nested profile the same way the dashboard does.
func userEntity(raw map[string]any) Entity {
	e := Entity{
		ID:        anyToString(raw["id"]),
		Kind:      KindUser,
		Status:    Status(anyToString(raw["status"])),
		CreatedAt: parseTime(raw["created_at"]),
		Display:   map[string]any{},
	}
	first, last := "", ""
	if profile, ok := raw["profile"].(map[string]any); ok {
		first = anyToString(profile["first_name"])
		last = anyToString(profile["last_name"])
		e.Display["profile"] = profile
	}
	e.Display["name"] = strings.TrimSpace(first + " " + last)
	e.Display["email"] = anyToString(raw["email"])
	if v, ok := raw["interests"]; ok {
		e.Display["interests"] = v
	}
	if v, ok := raw["is_premium"]; ok {
		e.Display["is_premium"] = v
	}
	if v, ok := raw["is_active"]; ok {
		e.Display["is_active"] = v
	}
	return e
}

func portfolioEntity(raw map[string]any) Entity {
	e := Entity{
		ID:        anyToString(raw["portfolio_id"]),
		Kind:      KindPortfolio,
		Status:    Status(anyToString(raw["status"])),
		CreatedAt: parseTime(raw["created_at"]),
		Display:   map[string]any{},
	}
	if e.ID == "" {
		e.ID = anyToString(raw["id"])
	}
	for _, key := range []string{"user_id", "title", "description", "video", "supporting_document", "portfolio_images", "portfolio_keywords"} {
		if v, ok := raw[key]; ok {
			if key == "title" || key == "description" {
				e.Display[key] = anyToString(v)
				continue
			}
			e.Display[key] = v
		}
	}
	return e
}

func anyToString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return fmt.Sprintf("%.0f", x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func numToInt(n json.Number) int {
	i, _ := n.Int64()
	return int(i)
}

func parseTime(v any) time.Time {
	s := anyToString(v)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
