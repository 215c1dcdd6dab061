package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"outlay/internal/core"
)

// MemoryStore keeps expenses in a map guarded by a RWMutex. It backs tests
// and the "memory" data backend, and mirrors the SQLite store's ordering
// guarantees.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]core.Expense
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		items:  make(map[int64]core.Expense),
	}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Create(_ context.Context, e core.Expense) (core.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	e.ID = m.nextID
	m.nextID++
	e.CreatedAt = now
	e.UpdatedAt = now
	m.items[e.ID] = e
	return e, nil
}

func (m *MemoryStore) GetByID(_ context.Context, id int64) (core.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.items[id]
	if !ok {
		return core.Expense{}, core.ErrNotFound
	}
	return e, nil
}

func (m *MemoryStore) List(_ context.Context, f core.ResolvedFilter) ([]core.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	expenses := []core.Expense{}
	for _, e := range m.items {
		if f.Matches(e) {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
	return expenses, nil
}

func (m *MemoryStore) Update(_ context.Context, e core.Expense) (core.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.items[e.ID]
	if !ok {
		return core.Expense{}, core.ErrNotFound
	}
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now()
	m.items[e.ID] = e
	return e, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) Summarize(_ context.Context, f core.ResolvedFilter) (core.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Iterate in insertion order so ties in the category breakdown land
	// the same way as the SQL backend's MIN(id) tiebreak.
	ids := make([]int64, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	matched := []core.Expense{}
	for _, id := range ids {
		if e := m.items[id]; f.Matches(e) {
			matched = append(matched, e)
		}
	}
	return core.Aggregate(matched), nil
}
