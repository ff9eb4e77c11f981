package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/scholarassist/scholarassist/backend/go-services/internal/paper"
)

var (
	ErrNotFound = errors.New("paper not found")
)

// IDPrefix is prepended to the store sequence number to form paper ids.
const IDPrefix = "paper-"

// MemoryRepo is the process-local paper store. All access goes through mu;
// ids come from seq, which only ever grows, so an id is never handed out twice
// even after deletes.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*paper.Paper
	order []string
	seq   uint64
	now   func() time.Time
}

// Option configures a MemoryRepo.
type Option func(*MemoryRepo)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(m *MemoryRepo) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMemoryRepo(opts ...Option) *MemoryRepo {
	m := &MemoryRepo{
		store: make(map[string]*paper.Paper),
		now:   time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *MemoryRepo) Create(f paper.Fields) (*paper.Paper, error) {
	f = f.Normalize()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("%s%d", IDPrefix, m.seq)
	now := m.now().UTC()
	p := &paper.Paper{
		ID:         id,
		Title:      f.Title,
		Content:    f.Content,
		References: f.References,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.store[id] = p
	m.order = append(m.order, id)
	return p.Clone(), nil
}

func (m *MemoryRepo) Get(id string) (*paper.Paper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.store[id]; ok {
		return p.Clone(), nil
	}
	return nil, ErrNotFound
}

// List returns every paper in insertion order.
func (m *MemoryRepo) List() ([]*paper.Paper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*paper.Paper, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.store[id].Clone())
	}
	return out, nil
}

// Update replaces title, content and references of an existing paper. The id
// and created_at are kept; updated_at never moves backwards.
func (m *MemoryRepo) Update(id string, f paper.Fields) (*paper.Paper, error) {
	f = f.Normalize()
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now().UTC()
	if now.Before(prev.UpdatedAt) {
		now = prev.UpdatedAt
	}
	p := &paper.Paper{
		ID:         id,
		Title:      f.Title,
		Content:    f.Content,
		References: f.References,
		CreatedAt:  prev.CreatedAt,
		UpdatedAt:  now,
	}
	m.store[id] = p
	return p.Clone(), nil
}

func (m *MemoryRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports how many papers are currently stored.
func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}
