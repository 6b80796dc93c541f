package moderation

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Outcome classifies the result of a Transition or Remove call.
type Outcome int

const (
	// OutcomeApplied means the remote source confirmed the mutation and the
	// local store was updated.
	OutcomeApplied Outcome = iota
	// OutcomeNoOp means nothing needed to change and no remote call was made.
	OutcomeNoOp
)

// Result reports the outcome of a mutation together with any server-supplied
// message for user-facing notification.
type Result struct {
	Outcome Outcome
	Message string
}

type kindID struct {
	kind Kind
	id   string
}

// Queue is the moderation queue facade: list, search, filter, transition and
// remove over a per-kind entity cache backed by a remote Source.
//
// Writes follow confirm-then-mutate: the cache is only touched after the
// source reports success, so a failed remote call leaves the previous
// snapshot intact. At most one transition per (kind, id) may be in flight; a
// concurrent second call fails fast with ErrTransitionInFlight instead of
// racing last-write-wins on the cache.
type Queue struct {
	source Source
	store  *Store
	logger *logrus.Logger

	mu       sync.Mutex
	inFlight map[kindID]struct{}
	filters  map[Kind]Status
	terms    map[Kind]string
	totals   map[Kind]int
	pageSize map[Kind]int
}

func NewQueue(source Source, logger *logrus.Logger) *Queue {
	return &Queue{
		source:   source,
		store:    NewStore(logger),
		logger:   logger,
		inFlight: make(map[kindID]struct{}),
		filters:  make(map[Kind]Status),
		terms:    make(map[Kind]string),
		totals:   make(map[Kind]int),
		pageSize: make(map[Kind]int),
	}
}

// Store exposes the underlying entity cache for read-only collaborators such
// as detail views.
func (q *Queue) Store() *Store { return q.store }

// Total reports the server-side total for the last loaded filter of kind.
func (q *Queue) Total(kind Kind) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.totals[kind]
}

// Load fetches one page from the source, replaces the cached set for kind and
// returns the resulting view with the current search term applied. On fetch
// failure the previous snapshot is kept, stale but consistent.
func (q *Queue) Load(ctx context.Context, kind Kind, page, pageSize int, statusFilter Status) ([]Entity, error) {
	if statusFilter == "" {
		statusFilter = FilterAll
	}
	if statusFilter != FilterAll && !ValidStatus(kind, statusFilter) {
		return nil, fmt.Errorf("%w: %q for kind %q", ErrInvalidStatus, statusFilter, kind)
	}

	res, err := q.source.FetchPage(ctx, kind, page, pageSize, statusFilter)
	if err != nil {
		if q.logger != nil {
			q.logger.WithError(err).WithField("kind", kind).Warn("load failed, keeping previous snapshot")
		}
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	q.store.ReplaceAll(kind, res.Items)
	q.mu.Lock()
	q.filters[kind] = statusFilter
	q.totals[kind] = res.Total
	q.pageSize[kind] = res.PageSize
	term := q.terms[kind]
	q.mu.Unlock()

	return View(q.store, kind, statusFilter, term), nil
}

// Search re-runs the view with the last-used status filter and a new term.
// Purely local; never touches the source or mutates the store.
func (q *Queue) Search(kind Kind, term string) []Entity {
	q.mu.Lock()
	q.terms[kind] = term
	filter := q.filters[kind]
	q.mu.Unlock()
	if filter == "" {
		filter = FilterAll
	}
	return View(q.store, kind, filter, term)
}

// SetStatusFilter changes the active status filter and always re-fetches from
// page one so pagination totals reflect the filtered count from the server.
func (q *Queue) SetStatusFilter(ctx context.Context, kind Kind, statusFilter Status) ([]Entity, error) {
	q.mu.Lock()
	size := q.pageSize[kind]
	q.mu.Unlock()
	if size <= 0 {
		size = 100
	}
	return q.Load(ctx, kind, 1, size, statusFilter)
}

// Transition requests a status change for (kind, id).
//
// A target outside the kind's status set fails locally with ErrInvalidStatus.
// A target equal to the cached current status returns OutcomeNoOp without a
// network call. Otherwise exactly one UpdateStatus call is issued; the cache
// is patched only after the source confirms. No retries.
func (q *Queue) Transition(ctx context.Context, kind Kind, id string, target Status) (Result, error) {
	if !ValidStatus(kind, target) {
		return Result{}, fmt.Errorf("%w: %q for kind %q", ErrInvalidStatus, target, kind)
	}
	current, ok := q.store.Get(kind, id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	if current.Status == target {
		return Result{Outcome: OutcomeNoOp, Message: "status unchanged"}, nil
	}

	key := kindID{kind, id}
	q.mu.Lock()
	if _, busy := q.inFlight[key]; busy {
		q.mu.Unlock()
		return Result{}, fmt.Errorf("%w: %s %s", ErrTransitionInFlight, kind, id)
	}
	q.inFlight[key] = struct{}{}
	q.mu.Unlock()
	defer func() {
		q.mu.Lock()
		delete(q.inFlight, key)
		q.mu.Unlock()
	}()

	msg, err := q.source.UpdateStatus(ctx, kind, id, target)
	if err != nil {
		if q.logger != nil {
			q.logger.WithError(err).WithFields(logrus.Fields{"kind": kind, "id": id, "status": target}).Warn("status update rejected")
		}
		return Result{}, fmt.Errorf("%w: %v", ErrTransitionFailed, err)
	}
	q.store.PatchStatus(kind, id, target)
	if msg == "" {
		msg = fmt.Sprintf("status updated to %q", target)
	}
	return Result{Outcome: OutcomeApplied, Message: msg}, nil
}

// Remove deletes (kind, id) through the source and drops it from the cache on
// success. An id absent from the cache is a local no-op: nothing to delete,
// no remote call, logged only.
func (q *Queue) Remove(ctx context.Context, kind Kind, id string) (Result, error) {
	if _, ok := q.store.Get(kind, id); !ok {
		if q.logger != nil {
			q.logger.WithFields(logrus.Fields{"kind": kind, "id": id}).Debug("remove on unknown entity ignored")
		}
		return Result{Outcome: OutcomeNoOp, Message: "not found"}, nil
	}
	if err := q.source.Delete(ctx, kind, id); err != nil {
		if q.logger != nil {
			q.logger.WithError(err).WithFields(logrus.Fields{"kind": kind, "id": id}).Warn("delete rejected")
		}
		return Result{}, fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	q.store.Remove(kind, id)
	return Result{Outcome: OutcomeApplied, Message: "deleted"}, nil
}

// Detail fetches the richer single-entity payload from the source. The list
// cache is not consulted or updated; detail views render the server truth.
func (q *Queue) Detail(ctx context.Context, kind Kind, id string) (Entity, error) {
	e, err := q.source.FetchDetail(ctx, kind, id)
	if err != nil {
		return Entity{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return e, nil
}
