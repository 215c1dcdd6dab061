package core

import (
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s.TotalSpent != 0 {
		t.Errorf("TotalSpent = %v, want 0", s.TotalSpent)
	}
	if s.ByCategory == nil || len(s.ByCategory) != 0 {
		t.Errorf("ByCategory = %#v, want empty non-nil slice", s.ByCategory)
	}
	if s.ByMonth == nil || len(s.ByMonth) != 0 {
		t.Errorf("ByMonth = %#v, want empty non-nil slice", s.ByMonth)
	}
}

func TestAggregateSingleRecord(t *testing.T) {
	s := Aggregate([]Expense{
		{Amount: 500, Category: Food, Note: "groceries", Date: day(2025, 10, 4)},
	})

	if s.TotalSpent != 500 {
		t.Errorf("TotalSpent = %v, want 500", s.TotalSpent)
	}
	if len(s.ByCategory) != 1 {
		t.Fatalf("ByCategory has %d buckets, want 1", len(s.ByCategory))
	}
	if got := s.ByCategory[0]; got.Category != Food || got.Total != 500 || got.Count != 1 {
		t.Errorf("ByCategory[0] = %+v", got)
	}
	if len(s.ByMonth) != 1 {
		t.Fatalf("ByMonth has %d buckets, want 1", len(s.ByMonth))
	}
	if got := s.ByMonth[0]; got.Year != 2025 || got.Month != 10 || got.Total != 500 || got.Count != 1 {
		t.Errorf("ByMonth[0] = %+v", got)
	}
}

func TestAggregateOrdering(t *testing.T) {
	s := Aggregate([]Expense{
		{Amount: 500, Category: Food, Date: day(2025, 9, 12)},
		{Amount: 1000, Category: Bills, Date: day(2025, 10, 1)},
		{Amount: 200, Category: Food, Date: day(2025, 10, 4)},
		{Amount: 300, Category: Travel, Date: day(2024, 12, 25)},
	})

	if s.TotalSpent != 2000 {
		t.Errorf("TotalSpent = %v, want 2000", s.TotalSpent)
	}

	wantCats := []CategoryTotal{
		{Bills, 1000, 1},
		{Food, 700, 2},
		{Travel, 300, 1},
	}
	if len(s.ByCategory) != len(wantCats) {
		t.Fatalf("ByCategory = %+v", s.ByCategory)
	}
	for i, want := range wantCats {
		if s.ByCategory[i] != want {
			t.Errorf("ByCategory[%d] = %+v, want %+v", i, s.ByCategory[i], want)
		}
	}

	wantMonths := []MonthTotal{
		{2025, 10, 1200, 2},
		{2025, 9, 500, 1},
		{2024, 12, 300, 1},
	}
	if len(s.ByMonth) != len(wantMonths) {
		t.Fatalf("ByMonth = %+v", s.ByMonth)
	}
	for i, want := range wantMonths {
		if s.ByMonth[i] != want {
			t.Errorf("ByMonth[%d] = %+v, want %+v", i, s.ByMonth[i], want)
		}
	}
}

func TestAggregateTieKeepsFirstAppearance(t *testing.T) {
	s := Aggregate([]Expense{
		{Amount: 250, Category: Health, Date: day(2025, 5, 1)},
		{Amount: 250, Category: Shopping, Date: day(2025, 5, 2)},
		{Amount: 250, Category: Education, Date: day(2025, 5, 3)},
	})

	want := []Category{Health, Shopping, Education}
	for i, c := range want {
		if s.ByCategory[i].Category != c {
			t.Fatalf("ByCategory order = %+v, want %v", s.ByCategory, want)
		}
	}
}

func TestAggregateBucketSumsMatchTotal(t *testing.T) {
	expenses := []Expense{
		{Amount: 19.99, Category: Entertainment, Date: day(2025, 1, 15)},
		{Amount: 42.50, Category: Food, Date: day(2025, 1, 20)},
		{Amount: 7.25, Category: Food, Date: day(2025, 2, 3)},
		{Amount: 130, Category: Bills, Date: day(2025, 2, 28)},
	}
	s := Aggregate(expenses)

	var byCat, byMonth float64
	for _, b := range s.ByCategory {
		byCat += b.Total
	}
	for _, b := range s.ByMonth {
		byMonth += b.Total
	}
	if math.Abs(byCat-s.TotalSpent) > 1e-9 {
		t.Errorf("category buckets sum to %v, total is %v", byCat, s.TotalSpent)
	}
	if math.Abs(byMonth-s.TotalSpent) > 1e-9 {
		t.Errorf("month buckets sum to %v, total is %v", byMonth, s.TotalSpent)
	}
}
