package core

import "sort"

// CategoryTotal is one per-category bucket of a summary.
type CategoryTotal struct {
	Category Category
	Total    float64
	Count    int
}

// MonthTotal is one per-month bucket of a summary.
type MonthTotal struct {
	Year  int
	Month int // 1-12
	Total float64
	Count int
}

// Summary combines total spend with per-category and per-month breakdowns
// over one filtered set. An empty set yields a zero total and empty (never
// nil) bucket slices.
type Summary struct {
	TotalSpent float64
	ByCategory []CategoryTotal
	ByMonth    []MonthTotal
}

// Aggregate computes the summary views over an already-filtered set. Each
// record lands in exactly one category bucket and one month bucket.
// ByCategory is sorted descending by total; buckets with equal totals keep
// their first-appearance order, so results are deterministic for equal
// inputs. ByMonth is sorted most recent first.
func Aggregate(expenses []Expense) Summary {
	s := Summary{
		ByCategory: []CategoryTotal{},
		ByMonth:    []MonthTotal{},
	}

	catIdx := make(map[Category]int)
	type yearMonth struct{ year, month int }
	monthIdx := make(map[yearMonth]int)

	for _, e := range expenses {
		s.TotalSpent += e.Amount

		if i, ok := catIdx[e.Category]; ok {
			s.ByCategory[i].Total += e.Amount
			s.ByCategory[i].Count++
		} else {
			catIdx[e.Category] = len(s.ByCategory)
			s.ByCategory = append(s.ByCategory, CategoryTotal{Category: e.Category, Total: e.Amount, Count: 1})
		}

		key := yearMonth{e.Date.Year(), int(e.Date.Month())}
		if i, ok := monthIdx[key]; ok {
			s.ByMonth[i].Total += e.Amount
			s.ByMonth[i].Count++
		} else {
			monthIdx[key] = len(s.ByMonth)
			s.ByMonth = append(s.ByMonth, MonthTotal{Year: key.year, Month: key.month, Total: e.Amount, Count: 1})
		}
	}

	sort.SliceStable(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Total > s.ByCategory[j].Total
	})
	sort.SliceStable(s.ByMonth, func(i, j int) bool {
		if s.ByMonth[i].Year != s.ByMonth[j].Year {
			return s.ByMonth[i].Year > s.ByMonth[j].Year
		}
		return s.ByMonth[i].Month > s.ByMonth[j].Month
	})

	return s
}
