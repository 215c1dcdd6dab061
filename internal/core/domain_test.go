package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validExpense() Expense {
	return Expense{
		Amount:   12.5,
		Date:     time.Date(2025, 10, 4, 0, 0, 0, 0, time.Local),
		Note:     "Lunch",
		Category: Food,
	}
}

func TestExpenseValidate(t *testing.T) {
	if err := validExpense().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Expense)
		want   error
	}{
		{"zero amount", func(e *Expense) { e.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = -3 }, ErrInvalidAmount},
		{"zero date", func(e *Expense) { e.Date = time.Time{} }, ErrInvalidDate},
		{"empty note", func(e *Expense) { e.Note = "" }, ErrEmptyNote},
		{"whitespace note", func(e *Expense) { e.Note = "   " }, ErrEmptyNote},
		{"note too long", func(e *Expense) { e.Note = strings.Repeat("x", MaxNoteLength+1) }, ErrNoteTooLong},
		{"unknown category", func(e *Expense) { e.Category = "Groceries" }, ErrInvalidCategory},
		{"empty category", func(e *Expense) { e.Category = "" }, ErrInvalidCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validExpense()
			tc.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestExpenseValidateNoteBoundary(t *testing.T) {
	e := validExpense()
	e.Note = strings.Repeat("x", MaxNoteLength)
	if err := e.Validate(); err != nil {
		t.Fatalf("note of exactly %d chars should be valid, got %v", MaxNoteLength, err)
	}

	// Surrounding whitespace does not count against the limit.
	e.Note = "  " + strings.Repeat("x", MaxNoteLength) + "  "
	if err := e.Validate(); err != nil {
		t.Fatalf("trimmed note at the limit should be valid, got %v", err)
	}
}

func TestExpensePatchValidate(t *testing.T) {
	zero := 0.0
	neg := -1.0
	ok := 9.99
	empty := ""
	long := strings.Repeat("y", MaxNoteLength+1)
	note := "x"
	badCat := Category("Misc")
	goodCat := Travel

	cases := []struct {
		name  string
		patch ExpensePatch
		want  error
	}{
		{"empty patch", ExpensePatch{}, nil},
		{"valid fields", ExpensePatch{Amount: &ok, Note: &note, Category: &goodCat}, nil},
		{"explicit zero amount", ExpensePatch{Amount: &zero}, ErrInvalidAmount},
		{"negative amount", ExpensePatch{Amount: &neg}, ErrInvalidAmount},
		{"empty note", ExpensePatch{Note: &empty}, ErrEmptyNote},
		{"long note", ExpensePatch{Note: &long}, ErrNoteTooLong},
		{"bad category", ExpensePatch{Category: &badCat}, ErrInvalidCategory},
		{"zero date", ExpensePatch{Date: &time.Time{}}, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.patch.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestExpensePatchApply(t *testing.T) {
	existing := validExpense()
	existing.ID = 7

	note := "  Dinner  "
	cat := Entertainment
	patched := ExpensePatch{Note: &note, Category: &cat}.Apply(existing)

	if patched.Note != "Dinner" {
		t.Errorf("note = %q, want trimmed %q", patched.Note, "Dinner")
	}
	if patched.Category != Entertainment {
		t.Errorf("category = %q, want %q", patched.Category, Entertainment)
	}
	// Omitted fields stay untouched.
	if patched.Amount != existing.Amount || !patched.Date.Equal(existing.Date) || patched.ID != existing.ID {
		t.Errorf("omitted fields changed: %+v", patched)
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range AllCategories() {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	for _, c := range []Category{"", "All", "food", "Misc"} {
		if c.Valid() {
			t.Errorf("%q should be invalid", c)
		}
	}
}
