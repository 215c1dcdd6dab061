package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"outlay/internal/core"

	_ "modernc.org/sqlite"
)

// Dates are stored as naive local timestamps so lexicographic range
// comparisons and strftime grouping both work on the TEXT column.
const sqliteTimeLayout = "2006-01-02 15:04:05"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (amount, date, note, category, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Amount,
		e.Date.Format(sqliteTimeLayout),
		e.Note,
		string(e.Category),
		now.Format(sqliteTimeLayout),
		now.Format(sqliteTimeLayout),
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "expense created", "id", id, "amount", e.Amount, "category", e.Category)
	return s.GetByID(ctx, id)
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, amount, date, note, category, created_at, updated_at
		 FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

func (s *SQLiteStore) List(ctx context.Context, f core.ResolvedFilter) ([]core.Expense, error) {
	query := `SELECT id, amount, date, note, category, created_at, updated_at FROM expenses`
	where, args := filterClauses(f)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func (s *SQLiteStore) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET amount = ?, date = ?, note = ?, category = ?, updated_at = ?
		 WHERE id = ?`,
		e.Amount,
		e.Date.Format(sqliteTimeLayout),
		e.Note,
		string(e.Category),
		time.Now().Format(sqliteTimeLayout),
		e.ID,
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense %d: %w", e.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return core.Expense{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.Expense{}, core.ErrNotFound
	}

	slog.InfoContext(ctx, "expense updated", "id", e.ID)
	return s.GetByID(ctx, e.ID)
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	slog.InfoContext(ctx, "expense deleted", "id", id)
	return nil
}

func (s *SQLiteStore) Summarize(ctx context.Context, f core.ResolvedFilter) (core.Summary, error) {
	where, args := filterClauses(f)
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	summary := core.Summary{
		ByCategory: []core.CategoryTotal{},
		ByMonth:    []core.MonthTotal{},
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses`+clause, args...,
	).Scan(&summary.TotalSpent)
	if err != nil {
		return core.Summary{}, fmt.Errorf("total spent: %w", err)
	}

	// MIN(id) breaks ties between categories with equal totals, so the
	// ordering matches in-memory aggregation over the same rows.
	catRows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount) AS total, COUNT(*)
		 FROM expenses`+clause+`
		 GROUP BY category
		 ORDER BY total DESC, MIN(id) ASC`, args...)
	if err != nil {
		return core.Summary{}, fmt.Errorf("by category: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var ct core.CategoryTotal
		var cat string
		if err := catRows.Scan(&cat, &ct.Total, &ct.Count); err != nil {
			return core.Summary{}, fmt.Errorf("scan category total: %w", err)
		}
		ct.Category = core.Category(cat)
		summary.ByCategory = append(summary.ByCategory, ct)
	}
	if err := catRows.Err(); err != nil {
		return core.Summary{}, fmt.Errorf("iterate category totals: %w", err)
	}

	monthRows, err := s.db.QueryContext(ctx,
		`SELECT CAST(strftime('%Y', date) AS INTEGER) AS year,
		        CAST(strftime('%m', date) AS INTEGER) AS month,
		        SUM(amount), COUNT(*)
		 FROM expenses`+clause+`
		 GROUP BY year, month
		 ORDER BY year DESC, month DESC`, args...)
	if err != nil {
		return core.Summary{}, fmt.Errorf("by month: %w", err)
	}
	defer monthRows.Close()
	for monthRows.Next() {
		var mt core.MonthTotal
		if err := monthRows.Scan(&mt.Year, &mt.Month, &mt.Total, &mt.Count); err != nil {
			return core.Summary{}, fmt.Errorf("scan month total: %w", err)
		}
		summary.ByMonth = append(summary.ByMonth, mt)
	}
	if err := monthRows.Err(); err != nil {
		return core.Summary{}, fmt.Errorf("iterate month totals: %w", err)
	}

	return summary, nil
}

func filterClauses(f core.ResolvedFilter) (where []string, args []any) {
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(f.Category))
	}
	if f.HasRange {
		where = append(where, "date >= ?", "date <= ?")
		args = append(args, f.Start.Format(sqliteTimeLayout), f.End.Format(sqliteTimeLayout))
	}
	return where, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e                          core.Expense
		cat                        string
		date, createdAt, updatedAt string
	)
	if err := row.Scan(&e.ID, &e.Amount, &date, &e.Note, &cat, &createdAt, &updatedAt); err != nil {
		return core.Expense{}, err
	}
	e.Category = core.Category(cat)

	var err error
	if e.Date, err = time.ParseInLocation(sqliteTimeLayout, date, time.Local); err != nil {
		return core.Expense{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	if e.CreatedAt, err = time.ParseInLocation(sqliteTimeLayout, createdAt, time.Local); err != nil {
		return core.Expense{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if e.UpdatedAt, err = time.ParseInLocation(sqliteTimeLayout, updatedAt, time.Local); err != nil {
		return core.Expense{}, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	return e, nil
}
