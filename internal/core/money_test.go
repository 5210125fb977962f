package core

import "testing"

func TestParseAmountToCents(t *testing.T) {
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
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"0", 0, true},      // store layer tolerates non-positive
		{"-1.50", -150, true},
		{"+3", 300, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1a.2", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{123456, "$1234.56"},
		{-9950, "-$99.50"},
	}
	for _, tc := range cases {
		if got := FormatUSD(tc.cents); got != tc.want {
			t.Fatalf("FormatUSD(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyDollars(t *testing.T) {
	if got := (Money{Cents: 12345}).Dollars(); got != 123.45 {
		t.Fatalf("Dollars() = %v, want 123.45", got)
	}
}
