package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-15", true},
		{" 2024-01-15 ", true},
		{"2024-13-01", false},
		{"15/01/2024", false},
		{"", false},
	}
	for i, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15"` {
		t.Fatalf("expected %q, got %s", `"2024-01-15"`, b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Compare(d) != 0 {
		t.Fatalf("round trip mismatch: %v vs %v", back, d)
	}
}

func TestDaysIn(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 1, 31},
		{2024, 2, 29}, // leap year
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tc := range cases {
		if got := DaysIn(tc.year, tc.month); got != tc.want {
			t.Fatalf("%d-%02d expected %d days, got %d", tc.year, tc.month, tc.want, got)
		}
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.IsValid() {
			t.Fatalf("%s expected valid", c)
		}
	}
	if Category("Groceries").IsValid() {
		t.Fatalf("unknown category expected invalid")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jane@X.Com "); got != "jane@x.com" {
		t.Fatalf("expected jane@x.com, got %q", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Amount:      Money{Cents: 1250},
		Category:    CategoryFood,
		Date:        NewDate(2024, 1, 15),
		Description: "Lunch",
		Currency:    "USD",
		CreatedAt:   time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: Money{Cents: -1}, Category: CategoryFood, Date: NewDate(2024, 1, 15), Currency: "USD"},
		{Amount: Money{Cents: 1}, Category: "Groceries", Date: NewDate(2024, 1, 15), Currency: "USD"},
		{Amount: Money{Cents: 1}, Category: CategoryFood, Currency: "USD"}, // zero date
		{Amount: Money{Cents: 1}, Category: CategoryFood, Date: NewDate(2024, 1, 15), Currency: "usd"},
		{Amount: Money{Cents: 1}, Category: CategoryFood, Date: NewDate(2024, 1, 15), Currency: "US"},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSymbol(t *testing.T) {
	if got := Symbol("USD"); got != "$" {
		t.Fatalf("expected $, got %q", got)
	}
	if got := Symbol("CHF"); got != "CHF" {
		t.Fatalf("expected fallback to code, got %q", got)
	}
}
