package moderation

import (
	"strings"
	"time"
)

// Kind discriminates the moderatable collections tracked by the queue.
type Kind string

const (
	KindUser      Kind = "user"
	KindPortfolio Kind = "portfolio"
)

// Status is the moderation state of an entity, drawn from its kind's set.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusBanned   Status = "banned"
	StatusHold     Status = "hold"
)

// FilterAll is the sentinel status filter that matches every status.
const FilterAll Status = "all"

// KindConfig declares the per-kind status set and the display fields the
// text search matches against. The reserved key "id" searches the entity id.
type KindConfig struct {
	Statuses   []Status
	SearchKeys []string
}

// Kinds is the per-kind configuration table. Portfolios intentionally carry a
// smaller status set than users; adding a status is a config change here, not
// a code change.
var Kinds = map[Kind]KindConfig{
	KindUser: {
		Statuses:   []Status{StatusPending, StatusApproved, StatusRejected, StatusBanned, StatusHold},
		SearchKeys: []string{"name", "email"},
	},
	KindPortfolio: {
		Statuses:   []Status{StatusPending, StatusApproved, StatusRejected},
		SearchKeys: []string{"title", "id"},
	},
}

// ValidStatus reports whether s is a member of kind's status set.
func ValidStatus(kind Kind, s Status) bool {
	for _, allowed := range Kinds[kind].Statuses {
		if allowed == s {
			return true
		}
	}
	return false
}

// Entity is a single moderatable record. Display carries kind-specific
// attributes untouched; the queue only ever reads the keys named in the
// kind's SearchKeys.
type Entity struct {
	ID        string         `json:"id"`
	Kind      Kind           `json:"kind"`
	Status    Status         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	Display   map[string]any `json:"display,omitempty"`
}

// Matches reports whether the entity matches a free-text search term against
// its kind's searchable fields. Matching is a case-insensitive substring test
// per field; fields are never concatenated. A blank term matches everything.
func (e Entity) Matches(term string) bool {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return true
	}
	for _, key := range Kinds[e.Kind].SearchKeys {
		var val string
		if key == "id" {
			val = e.ID
		} else if v, ok := e.Display[key]; ok {
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			val = s
		}
		if val != "" && strings.Contains(strings.ToLower(val), term) {
			return true
		}
	}
	return false
}
