package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true}, // zero amounts are legal
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{".", 0, false}, // bare separator
		{",", 0, false},
		{".5", 50, true},
		{"1.٥", 0, false}, // non-ASCII digits never reach the cents math
		{"١.5", 0, false},
		{"1.5٥", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1250, "12.50"},
		{100000, "1000.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d cents expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 0}).Validate(); err != nil {
		t.Fatalf("expected zero to be ok, got %v", err)
	}
	if err := (Money{Cents: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestMoneyDivideBy(t *testing.T) {
	cases := []struct {
		cents int64
		n     int
		want  int64
	}{
		{3100, 31, 100},
		{1250, 31, 40}, // 40.32 rounds down
		{1000, 3, 333},
		{0, 30, 0},
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).DivideBy(tc.n); got.Cents != tc.want {
			t.Fatalf("%d/%d expected %d, got %d", tc.cents, tc.n, tc.want, got.Cents)
		}
	}
}
