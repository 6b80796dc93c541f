package moderation

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Store is the last-known-good snapshot of entities per kind, rebuilt by
// ReplaceAll on every load and patched in place after confirmed mutations.
// Insertion order equals server-returned order and is preserved so paginated
// views stay stable. Guarded by a mutex: async completions patch the store
// while views read it.
type Store struct {
	mu     sync.RWMutex
	order  map[Kind][]string
	items  map[Kind]map[string]Entity
	logger *logrus.Logger
}

func NewStore(logger *logrus.Logger) *Store {
	return &Store{
		order:  make(map[Kind][]string),
		items:  make(map[Kind]map[string]Entity),
		logger: logger,
	}
}

// ReplaceAll atomically swaps the stored set for kind with entities, keeping
// their order. Uniqueness of ids within the slice is trusted from the source.
func (s *Store) ReplaceAll(kind Kind, entities []Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := make([]string, 0, len(entities))
	items := make(map[string]Entity, len(entities))
	for _, e := range entities {
		order = append(order, e.ID)
		items[e.ID] = e
	}
	s.order[kind] = order
	s.items[kind] = items
}

// PatchStatus updates the status of one stored entity. A missing id is logged
// and otherwise ignored: the remote mutation may have succeeded against a row
// this cache never loaded, and that must not surface as a failure.
func (s *Store) PatchStatus(kind Kind, id string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[kind][id]
	if !ok {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"kind": kind, "id": id}).Debug("patch on unknown entity ignored")
		}
		return
	}
	e.Status = status
	s.items[kind][id] = e
}

// Remove deletes one entity record; absent ids are a no-op.
func (s *Store) Remove(kind Kind, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[kind][id]; !ok {
		return
	}
	delete(s.items[kind], id)
	order := s.order[kind]
	for i, oid := range order {
		if oid == id {
			s.order[kind] = append(order[:i], order[i+1:]...)
			break
		}
	}
}

// Get returns the stored entity for (kind, id).
func (s *Store) Get(kind Kind, id string) (Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[kind][id]
	return e, ok
}

// Len reports how many entities are cached for kind.
func (s *Store) Len(kind Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order[kind])
}

// All returns the cached entities for kind in insertion order.
func (s *Store) All(kind Kind) []Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entity, 0, len(s.order[kind]))
	for _, id := range s.order[kind] {
		out = append(out, s.items[kind][id])
	}
	return out
}
