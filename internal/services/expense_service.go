package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"outlay/internal/cache"
	"outlay/internal/core"
	"outlay/internal/store"
)

// ExpenseService orchestrates expense operations: validation and defaults
// on the way in, cached reads on the way out. List and summary results are
// cached per filter; any mutation purges both caches.
type ExpenseService struct {
	store        store.ExpenseStore
	listCache    *cache.LRUCache[[]core.Expense]
	summaryCache *cache.LRUCache[core.Summary]
	group        singleflight.Group
}

// NewExpenseService wires a store with read caches. A cacheSize of zero
// disables caching, which tests use to hit the store directly.
func NewExpenseService(st store.ExpenseStore, cacheSize int, cacheTTL time.Duration) *ExpenseService {
	s := &ExpenseService{store: st}
	if cacheSize > 0 {
		s.listCache = cache.NewLRUCache[[]core.Expense](cacheSize, cacheTTL)
		s.summaryCache = cache.NewLRUCache[core.Summary](cacheSize, cacheTTL)
	}
	return s
}

// CreateExpenseInput carries the fields of a new expense. A nil Date
// defaults to the current time; an empty Category defaults to Other.
type CreateExpenseInput struct {
	Amount   float64
	Date     *time.Time
	Note     string
	Category string
}

func (s *ExpenseService) Create(ctx context.Context, in CreateExpenseInput) (core.Expense, error) {
	e := core.Expense{
		Amount:   in.Amount,
		Note:     strings.TrimSpace(in.Note),
		Category: core.Category(in.Category),
	}
	if in.Date != nil {
		e.Date = *in.Date
	} else {
		e.Date = time.Now()
	}
	if in.Category == "" {
		e.Category = core.Other
	}

	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	created, err := s.store.Create(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.invalidate()
	return created, nil
}

func (s *ExpenseService) Get(ctx context.Context, id int64) (core.Expense, error) {
	return s.store.GetByID(ctx, id)
}

func (s *ExpenseService) List(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	rf := f.Resolve()

	if s.listCache == nil {
		return s.store.List(ctx, rf)
	}

	key := filterKey("list", rf)
	if cached, ok := s.listCache.Get(key); ok {
		out := make([]core.Expense, len(cached))
		copy(out, cached)
		return out, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		expenses, err := s.store.List(ctx, rf)
		if err != nil {
			return nil, err
		}
		s.listCache.Set(key, expenses)
		return expenses, nil
	})
	if err != nil {
		return nil, err
	}

	expenses := v.([]core.Expense)
	out := make([]core.Expense, len(expenses))
	copy(out, expenses)
	return out, nil
}

func (s *ExpenseService) Summary(ctx context.Context, f core.Filter) (core.Summary, error) {
	rf := f.Resolve()

	if s.summaryCache == nil {
		return s.store.Summarize(ctx, rf)
	}

	key := filterKey("summary", rf)
	if cached, ok := s.summaryCache.Get(key); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		summary, err := s.store.Summarize(ctx, rf)
		if err != nil {
			return core.Summary{}, err
		}
		s.summaryCache.Set(key, summary)
		return summary, nil
	})
	if err != nil {
		return core.Summary{}, err
	}
	return v.(core.Summary), nil
}

func (s *ExpenseService) Update(ctx context.Context, id int64, patch core.ExpensePatch) (core.Expense, error) {
	if err := patch.Validate(); err != nil {
		return core.Expense{}, err
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}

	merged := patch.Apply(existing)
	if err := merged.Validate(); err != nil {
		return core.Expense{}, err
	}

	updated, err := s.store.Update(ctx, merged)
	if err != nil {
		return core.Expense{}, err
	}

	s.invalidate()
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *ExpenseService) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// invalidate purges both read caches after a mutation. Purging everything
// is cheaper than tracking which filters a changed row affects.
func (s *ExpenseService) invalidate() {
	if s.listCache != nil {
		s.listCache.Purge()
	}
	if s.summaryCache != nil {
		s.summaryCache.Purge()
	}
	slog.Debug("read caches purged")
}

func filterKey(prefix string, rf core.ResolvedFilter) string {
	key := prefix + "|" + string(rf.Category)
	if rf.HasRange {
		key += "|" + rf.Start.Format(time.RFC3339) + ".." + rf.End.Format(time.RFC3339)
	}
	return key
}
