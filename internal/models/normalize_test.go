package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain decimal", "1234.50", "1234.5"},
		{"currency symbol and grouping", "₹1,234.50", "1234.5"},
		{"dollar symbol", "$99.99", "99.99"},
		{"euro symbol", "€10", "10"},
		{"negative", "-45.00", "-45"},
		{"explicit positive", "+45.00", "45"},
		{"embedded spaces", "1 234.56", "1234.56"},
		{"trailing unit", "500.00 Cr", "500"},
		{"empty", "", "0"},
		{"whitespace only", "   ", "0"},
		{"no digits", "n/a", "0"},
		{"unassemblable runs", "12.34.56", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			expected := decimal.RequireFromString(tt.expected)
			if !got.Equal(expected) {
				t.Errorf("ParseAmount(%q) = %s, expected %s", tt.input, got, expected)
			}
		})
	}
}

func TestParseAmountIdempotent(t *testing.T) {
	// A value that already parsed once must survive a second pass unchanged.
	first := ParseAmount("₹1,234.50")
	second := ParseAmount(first.String())
	if !first.Equal(second) {
		t.Errorf("re-parsing %s yielded %s", first, second)
	}
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		ok       bool
	}{
		{"iso date", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), true},
		{"iso datetime", "2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local), true},
		{"us slash", "01/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), true},
		{"compact digits", "20240115", time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), true},
		{"dotted compact", "2024.01.15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "not a date", time.Time{}, false},
		{"too few digits", "1234", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexibleDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseFlexibleDate(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.expected) {
				t.Errorf("ParseFlexibleDate(%q) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseCompactDate(t *testing.T) {
	// OFX DTPOSTED values carry time and timezone suffixes that must be
	// ignored.
	got, ok := ParseCompactDate("20240115120000[-5:EST]")
	if !ok {
		t.Fatal("expected a date")
	}
	expected := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(expected) {
		t.Errorf("got %s, expected %s", got, expected)
	}

	if _, ok := ParseCompactDate("2024"); ok {
		t.Error("expected failure for fewer than 8 digits")
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Closing Balance (Rs)", "closing_balance_rs"},
		{"  Date  ", "date"},
		{"Withdrawal Amt.", "withdrawal_amt"},
		{"Tran   Date", "tran_date"},
		{"DEPOSIT", "deposit"},
		{"Value Dt", "value_dt"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeHeader(tt.input); got != tt.expected {
			t.Errorf("NormalizeHeader(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
