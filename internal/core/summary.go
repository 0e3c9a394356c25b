package core

import "time"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Totals is the dashboard summary for a ledger relative to a reference date.
type Totals struct {
	Total              Money
	MonthTotal         Money
	DistinctCategories int
	// AvgPerDay divides MonthTotal by the number of days in the reference
	// month, not by elapsed days. Mid-month this yields a projected flat
	// average rather than a to-date burn rate.
	AvgPerDay Money
}

// MonthBucket is one point of the monthly spending trend.
type MonthBucket struct {
	Year  int
	Month int // 1-12
	Label string
	Total Money
}

// Summarize computes dashboard totals over records for the calendar month of
// the reference date. An empty ledger yields all-zero totals.
func Summarize(records []Expense, ref Date) Totals {
	var t Totals
	seen := map[Category]struct{}{}
	for _, e := range records {
		t.Total = t.Total.Add(e.Amount)
		if e.Date.InMonth(ref.Year(), ref.Month()) {
			t.MonthTotal = t.MonthTotal.Add(e.Amount)
		}
		seen[e.Category] = struct{}{}
	}
	t.DistinctCategories = len(seen)
	t.AvgPerDay = t.MonthTotal.DivideBy(DaysIn(ref.Year(), ref.Month()))
	return t
}

// MonthlyTrend buckets record totals per calendar month, from monthsBack-1
// months before the reference date through the reference month inclusive.
// Empty months produce zero buckets.
func MonthlyTrend(records []Expense, ref Date, monthsBack int) []MonthBucket {
	if monthsBack < 1 {
		monthsBack = 1
	}
	buckets := make([]MonthBucket, 0, monthsBack)
	index := make(map[[2]int]int, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		m := time.Date(ref.Year(), time.Month(ref.Month())-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		key := [2]int{m.Year(), int(m.Month())}
		index[key] = len(buckets)
		buckets = append(buckets, MonthBucket{
			Year:  m.Year(),
			Month: int(m.Month()),
			Label: m.Format("Jan 2006"),
		})
	}
	for _, e := range records {
		if i, ok := index[[2]int{e.Date.Year(), e.Date.Month()}]; ok {
			buckets[i].Total = buckets[i].Total.Add(e.Amount)
		}
	}
	return buckets
}

// CategoryTotals sums record amounts per category, in fixed category order.
// Categories with no spending are omitted.
func CategoryTotals(records []Expense) []CategoryAmount {
	sums := map[Category]Money{}
	for _, e := range records {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	out := make([]CategoryAmount, 0, len(sums))
	for _, c := range Categories() {
		if amount, ok := sums[c]; ok {
			out = append(out, CategoryAmount{Name: string(c), Amount: amount})
		}
	}
	return out
}
