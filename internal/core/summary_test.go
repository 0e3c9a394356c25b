package core

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, NewDate(2024, 1, 20))
	if got.Total.Cents != 0 || got.MonthTotal.Cents != 0 || got.DistinctCategories != 0 || got.AvgPerDay.Cents != 0 {
		t.Fatalf("expected all-zero totals, got %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	records := []Expense{
		{Amount: Money{Cents: 1250}, Category: CategoryFood, Date: NewDate(2024, 1, 15)},
		{Amount: Money{Cents: 3100}, Category: CategoryBills, Date: NewDate(2024, 1, 2)},
		{Amount: Money{Cents: 9900}, Category: CategoryFood, Date: NewDate(2023, 12, 24)},
	}
	got := Summarize(records, NewDate(2024, 1, 20))
	if got.Total.Cents != 14250 {
		t.Fatalf("total expected 14250, got %d", got.Total.Cents)
	}
	if got.MonthTotal.Cents != 4350 {
		t.Fatalf("month total expected 4350, got %d", got.MonthTotal.Cents)
	}
	if got.DistinctCategories != 2 {
		t.Fatalf("distinct categories expected 2, got %d", got.DistinctCategories)
	}
	// 4350 / 31 days in January, rounded half-up
	if got.AvgPerDay.Cents != 140 {
		t.Fatalf("avg per day expected 140, got %d", got.AvgPerDay.Cents)
	}
}

func TestMonthlyTrend(t *testing.T) {
	records := []Expense{
		{Amount: Money{Cents: 1000}, Category: CategoryFood, Date: NewDate(2024, 3, 5)},
		{Amount: Money{Cents: 2000}, Category: CategoryFood, Date: NewDate(2024, 3, 20)},
		{Amount: Money{Cents: 500}, Category: CategoryBills, Date: NewDate(2024, 1, 10)},
		{Amount: Money{Cents: 9999}, Category: CategoryOther, Date: NewDate(2023, 6, 1)}, // outside window
	}
	buckets := MonthlyTrend(records, NewDate(2024, 3, 15), 6)
	if len(buckets) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(buckets))
	}
	if buckets[0].Year != 2023 || buckets[0].Month != 10 {
		t.Fatalf("first bucket expected 2023-10, got %d-%02d", buckets[0].Year, buckets[0].Month)
	}
	if buckets[0].Label != "Oct 2023" {
		t.Fatalf("label expected Oct 2023, got %q", buckets[0].Label)
	}
	if buckets[5].Year != 2024 || buckets[5].Month != 3 {
		t.Fatalf("last bucket expected 2024-03, got %d-%02d", buckets[5].Year, buckets[5].Month)
	}
	if buckets[5].Total.Cents != 3000 {
		t.Fatalf("march total expected 3000, got %d", buckets[5].Total.Cents)
	}
	if buckets[3].Total.Cents != 500 {
		t.Fatalf("january total expected 500, got %d", buckets[3].Total.Cents)
	}
	// Empty months are present with zero totals
	if buckets[4].Total.Cents != 0 {
		t.Fatalf("february expected zero, got %d", buckets[4].Total.Cents)
	}
}

func TestMonthlyTrendYearBoundary(t *testing.T) {
	buckets := MonthlyTrend(nil, NewDate(2024, 2, 1), 6)
	if buckets[0].Year != 2023 || buckets[0].Month != 9 {
		t.Fatalf("first bucket expected 2023-09, got %d-%02d", buckets[0].Year, buckets[0].Month)
	}
}

func TestCategoryTotals(t *testing.T) {
	records := []Expense{
		{Amount: Money{Cents: 100}, Category: CategoryTransport},
		{Amount: Money{Cents: 200}, Category: CategoryFood},
		{Amount: Money{Cents: 300}, Category: CategoryFood},
	}
	got := CategoryTotals(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Fixed category order: Food before Transport
	if got[0].Name != "Food" || got[0].Amount.Cents != 500 {
		t.Fatalf("expected Food=500, got %s=%d", got[0].Name, got[0].Amount.Cents)
	}
	if got[1].Name != "Transport" || got[1].Amount.Cents != 100 {
		t.Fatalf("expected Transport=100, got %s=%d", got[1].Name, got[1].Amount.Cents)
	}
}
