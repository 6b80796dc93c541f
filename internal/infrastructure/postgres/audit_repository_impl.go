package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nasirhussainn/qwork-admin-dashboard/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, e repository.AuditEntry) error {
	md, err := json.Marshal(e.Metadata)
	if err != nil {
		md = []byte("{}")
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_logs (admin_id, entity_kind, entity_id, action, ip, user_agent, metadata)
		VALUES (NULLIF($1, '')::uuid, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
	`, e.AdminID, e.EntityKind, e.EntityID, e.Action, e.IP, e.UserAgent, md)
	return err
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
