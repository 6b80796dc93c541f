package moderation

import (
	"context"
	"errors"
)

// Typed failures surfaced by the queue. All are recoverable; each call is
// independent and the queue never enters a fatal state.
var (
	ErrFetchFailed        = errors.New("fetch failed")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrTransitionFailed   = errors.New("transition failed")
	ErrDeleteFailed       = errors.New("delete failed")
	ErrNotFound           = errors.New("not found")
	ErrTransitionInFlight = errors.New("transition already in flight")
)

// Page is one page of entities as returned by the remote source.
type Page struct {
	Items    []Entity
	Total    int
	Page     int
	PageSize int
}

// Source is the remote collaborator the queue reads from and mutates through.
// The production implementation speaks the Q-Work admin REST API; tests stub
// it. statusFilter is FilterAll for an unfiltered page.
type Source interface {
	FetchPage(ctx context.Context, kind Kind, page, pageSize int, statusFilter Status) (Page, error)
	FetchDetail(ctx context.Context, kind Kind, id string) (Entity, error)
	UpdateStatus(ctx context.Context, kind Kind, id string, status Status) (string, error)
	Delete(ctx context.Context, kind Kind, id string) error
}
