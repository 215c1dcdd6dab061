package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Categories form a closed set. Values outside it are rejected at the API
// boundary, never deferred to storage.
const (
	Food          Category = "Food"
	Travel        Category = "Travel"
	Bills         Category = "Bills"
	Entertainment Category = "Entertainment"
	Shopping      Category = "Shopping"
	Health        Category = "Health"
	Education     Category = "Education"
	Other         Category = "Other"
)

// MaxNoteLength is the upper bound on a note, counted in runes after trimming.
const MaxNoteLength = 200

type (
	Category string

	Expense struct {
		ID        int64
		Amount    float64
		Date      time.Time
		Note      string
		Category  Category
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// ExpensePatch carries a partial update. A nil field means "not
	// supplied" and leaves the stored value unchanged; a supplied field is
	// validated even when it holds a zero value.
	ExpensePatch struct {
		Amount   *float64
		Date     *time.Time
		Note     *string
		Category *Category
	}
)

var (
	ErrInvalidAmount   = errors.New("amount must be greater than 0")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyNote       = errors.New("note cannot be empty")
	ErrNoteTooLong     = errors.New("note cannot be more than 200 characters")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNotFound        = errors.New("expense not found")
)

// AllCategories returns the closed category set in display order.
func AllCategories() []Category {
	return []Category{Food, Travel, Bills, Entertainment, Shopping, Health, Education, Other}
}

func (c Category) Valid() bool {
	switch c {
	case Food, Travel, Bills, Entertainment, Shopping, Health, Education, Other:
		return true
	}
	return false
}

func validateNote(note string) error {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return ErrEmptyNote
	}
	if utf8.RuneCountInString(trimmed) > MaxNoteLength {
		return ErrNoteTooLong
	}
	return nil
}

func (e Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if err := validateNote(e.Note); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Validate checks only the supplied fields of a partial update.
func (p ExpensePatch) Validate() error {
	if p.Amount != nil && *p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.Date != nil && p.Date.IsZero() {
		return ErrInvalidDate
	}
	if p.Note != nil {
		if err := validateNote(*p.Note); err != nil {
			return err
		}
	}
	if p.Category != nil && !p.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Apply merges the supplied fields onto an existing expense.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Note != nil {
		e.Note = strings.TrimSpace(*p.Note)
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	return e
}

// IsValidationError reports whether err is a field-level validation failure,
// as opposed to a not-found or storage error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrEmptyNote) ||
		errors.Is(err, ErrNoteTooLong) ||
		errors.Is(err, ErrInvalidCategory)
}
