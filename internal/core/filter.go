package core

import "time"

// CategoryAll is the filter sentinel meaning "no category constraint".
const CategoryAll = "All"

// Filter narrows which expenses are listed or summarized. Zero or nil
// fields impose no constraint; decoding is permissive, so an unusable
// field is ignored rather than reported.
type Filter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Month     int // 1-12, only effective together with Year
	Year      int
}

// ResolvedFilter is the normalized predicate the stores evaluate.
type ResolvedFilter struct {
	Category Category // empty = no category constraint
	Start    time.Time
	End      time.Time
	HasRange bool
}

// Resolve normalizes the loose filter fields into a single predicate.
// A month/year pair wins over an explicit start/end range when both are
// supplied.
func (f Filter) Resolve() ResolvedFilter {
	var rf ResolvedFilter
	if f.Category != "" && f.Category != CategoryAll {
		rf.Category = Category(f.Category)
	}
	if f.StartDate != nil && f.EndDate != nil {
		rf.Start = *f.StartDate
		rf.End = *f.EndDate
		rf.HasRange = true
	}
	if f.Month >= 1 && f.Month <= 12 && f.Year != 0 {
		rf.Start, rf.End = MonthRange(f.Year, f.Month)
		rf.HasRange = true
	}
	return rf
}

// MonthRange returns the inclusive bounds of a calendar month, from the
// first day at 00:00:00 through the last day at 23:59:59. Day zero of the
// following month is the last day, which handles 28/29/30/31-day months
// and leap years without a lookup table.
func MonthRange(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end = time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 0, time.Local)
	return start, end
}

// Matches reports whether an expense satisfies the predicate. Range bounds
// are inclusive on both ends.
func (rf ResolvedFilter) Matches(e Expense) bool {
	if rf.Category != "" && e.Category != rf.Category {
		return false
	}
	if rf.HasRange && (e.Date.Before(rf.Start) || e.Date.After(rf.End)) {
		return false
	}
	return true
}
