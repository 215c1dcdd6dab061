package core

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	cases := []struct {
		year, month int
		start, end  time.Time
	}{
		{2025, 10,
			time.Date(2025, 10, 1, 0, 0, 0, 0, time.Local),
			time.Date(2025, 10, 31, 23, 59, 59, 0, time.Local)},
		{2024, 2,
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local),
			time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local)},
		{2025, 2,
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local),
			time.Date(2025, 2, 28, 23, 59, 59, 0, time.Local)},
		{2025, 12,
			time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local),
			time.Date(2025, 12, 31, 23, 59, 59, 0, time.Local)},
	}
	for i, tc := range cases {
		start, end := MonthRange(tc.year, tc.month)
		if !start.Equal(tc.start) {
			t.Errorf("case %d: start = %v, want %v", i, start, tc.start)
		}
		if !end.Equal(tc.end) {
			t.Errorf("case %d: end = %v, want %v", i, end, tc.end)
		}
	}
}

func TestFilterResolve(t *testing.T) {
	s := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	e := time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local)

	t.Run("empty", func(t *testing.T) {
		rf := Filter{}.Resolve()
		if rf.Category != "" || rf.HasRange {
			t.Fatalf("expected no constraints, got %+v", rf)
		}
	})

	t.Run("all category is no filter", func(t *testing.T) {
		rf := Filter{Category: CategoryAll}.Resolve()
		if rf.Category != "" {
			t.Fatalf("category = %q, want unset", rf.Category)
		}
	})

	t.Run("explicit range", func(t *testing.T) {
		rf := Filter{StartDate: &s, EndDate: &e}.Resolve()
		if !rf.HasRange || !rf.Start.Equal(s) || !rf.End.Equal(e) {
			t.Fatalf("range = %v..%v (has=%v)", rf.Start, rf.End, rf.HasRange)
		}
	})

	t.Run("month and year win over range", func(t *testing.T) {
		rf := Filter{StartDate: &s, EndDate: &e, Month: 3, Year: 2024}.Resolve()
		wantStart, wantEnd := MonthRange(2024, 3)
		if !rf.Start.Equal(wantStart) || !rf.End.Equal(wantEnd) {
			t.Fatalf("range = %v..%v, want %v..%v", rf.Start, rf.End, wantStart, wantEnd)
		}
	})

	t.Run("month without year keeps range", func(t *testing.T) {
		rf := Filter{StartDate: &s, EndDate: &e, Month: 3}.Resolve()
		if !rf.Start.Equal(s) || !rf.End.Equal(e) {
			t.Fatalf("range = %v..%v, want explicit range", rf.Start, rf.End)
		}
	})

	t.Run("month out of bounds ignored", func(t *testing.T) {
		rf := Filter{Month: 13, Year: 2024}.Resolve()
		if rf.HasRange {
			t.Fatal("month 13 should impose no range")
		}
	})

	t.Run("start without end ignored", func(t *testing.T) {
		rf := Filter{StartDate: &s}.Resolve()
		if rf.HasRange {
			t.Fatal("half-open range should not constrain")
		}
	})
}

func TestResolvedFilterMatches(t *testing.T) {
	rf := Filter{Category: "Food", Month: 2, Year: 2024}.Resolve()

	mk := func(cat Category, d time.Time) Expense {
		return Expense{Amount: 1, Note: "x", Category: cat, Date: d}
	}

	cases := []struct {
		name string
		e    Expense
		want bool
	}{
		{"inside", mk(Food, time.Date(2024, 2, 15, 12, 0, 0, 0, time.Local)), true},
		{"first instant", mk(Food, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)), true},
		{"leap day end", mk(Food, time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local)), true},
		{"march first", mk(Food, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)), false},
		{"wrong category", mk(Travel, time.Date(2024, 2, 15, 0, 0, 0, 0, time.Local)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rf.Matches(tc.e); got != tc.want {
				t.Fatalf("Matches() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterUnknownCategoryMatchesNothing(t *testing.T) {
	rf := Filter{Category: "Snacks"}.Resolve()
	e := Expense{Amount: 1, Note: "x", Category: Food, Date: time.Now()}
	if rf.Matches(e) {
		t.Fatal("unknown category filter should match no stored expense")
	}
}
