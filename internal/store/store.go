package store

import (
	"context"

	"outlay/internal/core"
)

// ExpenseStore is the persistence port for expenses. Implementations
// return core.ErrNotFound for lookups, updates and deletes that target a
// missing id. List returns expenses newest first.
type ExpenseStore interface {
	Create(ctx context.Context, e core.Expense) (core.Expense, error)
	GetByID(ctx context.Context, id int64) (core.Expense, error)
	List(ctx context.Context, f core.ResolvedFilter) ([]core.Expense, error)
	Update(ctx context.Context, e core.Expense) (core.Expense, error)
	Delete(ctx context.Context, id int64) error
	Summarize(ctx context.Context, f core.ResolvedFilter) (core.Summary, error)
	Close() error
}
