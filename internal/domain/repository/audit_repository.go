package repository

import "context"

// AuditEntry is one row of the moderation audit trail.
type AuditEntry struct {
	AdminID    string
	EntityKind string
	EntityID   string
	Action     string
	IP         string
	UserAgent  string
	Metadata   map[string]any
}

// AuditRepository records moderation and auth events. Implementations must be
// best-effort: audit failure never fails the operation being audited.
type AuditRepository interface {
	Insert(ctx context.Context, e AuditEntry) error
}
