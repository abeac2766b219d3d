// Package storage provides in-memory timer and note stores. Nothing is
// persisted across runs.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.TimerStore = (*MemoryTimerStore)(nil)
	_ domain.NoteStore  = (*MemoryNoteStore)(nil)
)

// MemoryTimerStore is an in-memory timer store. Safe for concurrent access.
// Values are copied in and out so callers never share a *Timer.
type MemoryTimerStore struct {
	mu     sync.RWMutex
	timers map[string]*domain.Timer
	order  []string
	log    *logger.Logger
}

// NewMemoryTimerStore creates an empty timer store.
func NewMemoryTimerStore(log *logger.Logger) *MemoryTimerStore {
	return &MemoryTimerStore{
		timers: make(map[string]*domain.Timer),
		log:    log,
	}
}

// Save stores a timer. Overwrites if it already exists.
func (s *MemoryTimerStore) Save(ctx context.Context, t *domain.Timer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.log.Debug("saving timer %s (%s, status=%s, remaining=%s)", t.ID, t.Name, t.Status, t.Remaining)
	s.timers[t.ID] = t.Clone()
	return nil
}

// Load retrieves a timer by ID.
func (s *MemoryTimerStore) Load(ctx context.Context, id string) (*domain.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.timers[id]
	if !ok {
		s.log.Debug("timer not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return t.Clone(), nil
}

// Delete removes a timer by ID.
func (s *MemoryTimerStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.timers, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Debug("deleted timer %s", id)
	return nil
}

// List returns all timers in creation order.
func (s *MemoryTimerStore) List(ctx context.Context) ([]*domain.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Timer, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.timers[id].Clone())
	}
	return out, nil
}

// MemoryNoteStore is an in-memory note store. Safe for concurrent access.
type MemoryNoteStore struct {
	mu    sync.RWMutex
	notes map[string]*domain.Note
	seq   map[string]int // insertion sequence, breaks CreatedAt ties
	next  int
	log   *logger.Logger
}

// NewMemoryNoteStore creates an empty note store.
func NewMemoryNoteStore(log *logger.Logger) *MemoryNoteStore {
	return &MemoryNoteStore{
		notes: make(map[string]*domain.Note),
		seq:   make(map[string]int),
		log:   log,
	}
}

// Save stores a note. Overwrites if it already exists.
func (s *MemoryNoteStore) Save(ctx context.Context, n *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[n.ID]; !ok {
		s.seq[n.ID] = s.next
		s.next++
	}
	s.log.Debug("saving note %s (recipe=%t, favorite=%t)", n.ID, n.IsRecipe, n.Favorite)
	s.notes[n.ID] = n.Clone()
	return nil
}

// Load retrieves a note by ID.
func (s *MemoryNoteStore) Load(ctx context.Context, id string) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return n.Clone(), nil
}

// Delete removes a note by ID.
func (s *MemoryNoteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.notes, id)
	delete(s.seq, id)
	s.log.Debug("deleted note %s", id)
	return nil
}

// List returns all notes, newest first.
func (s *MemoryNoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	return out, nil
}
