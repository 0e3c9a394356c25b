package core

import (
	"sort"
	"strings"
)

const (
	SortDateDesc   SortOrder = "date-desc"
	SortDateAsc    SortOrder = "date-asc"
	SortAmountDesc SortOrder = "amount-desc"
	SortAmountAsc  SortOrder = "amount-asc"
)

// SortOrder selects how a filtered listing is ordered.
type SortOrder string

// IsValid returns true if the sort order is recognized.
func (s SortOrder) IsValid() bool {
	switch s {
	case SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc:
		return true
	default:
		return false
	}
}

func (s SortOrder) String() string {
	return string(s)
}

// Filter narrows and orders an expense listing. Zero-valued fields are
// ignored; the set conditions compose with logical AND.
type Filter struct {
	Category   Category  // exact match
	DateFrom   Date      // inclusive lower bound
	DateTo     Date      // inclusive upper bound
	SearchText string    // case-insensitive substring over description or category
	SortBy     SortOrder // empty means no reordering
}

// Apply returns the records matching the filter, sorted per SortBy. The input
// is never mutated; sorting is stable, so ties keep their original relative
// order.
func (f Filter) Apply(records []Expense) []Expense {
	out := make([]Expense, 0, len(records))
	search := strings.ToLower(strings.TrimSpace(f.SearchText))
	for _, e := range records {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if !f.DateFrom.IsZero() && e.Date.Compare(f.DateFrom) < 0 {
			continue
		}
		if !f.DateTo.IsZero() && e.Date.Compare(f.DateTo) > 0 {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Description), search) &&
			!strings.Contains(strings.ToLower(string(e.Category)), search) {
			continue
		}
		out = append(out, e)
	}

	switch f.SortBy {
	case SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Compare(out[j].Date) > 0 })
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Compare(out[j].Date) < 0 })
	case SortAmountDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.Cents > out[j].Amount.Cents })
	case SortAmountAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.Cents < out[j].Amount.Cents })
	}

	return out
}
