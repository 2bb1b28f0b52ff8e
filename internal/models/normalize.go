package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// numberPattern matches signed decimal runs inside a cell. A cell like
// "1 234.56 Cr" yields the runs "1" and "234.56", which are concatenated
// before parsing.
var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// currencyStripper removes digit-grouping commas and the currency glyphs
// that show up in bank and broker exports.
var currencyStripper = strings.NewReplacer(",", "", "₹", "", "$", "", "€", "", "£", "", "¥", "")

// ParseAmount converts a raw statement cell into a decimal amount. It never
// fails: empty cells, cells without digits, and runs that do not assemble
// into a valid number all come back as zero.
func ParseAmount(value string) decimal.Decimal {
	cleaned := strings.TrimSpace(currencyStripper.Replace(value))
	if cleaned == "" {
		return decimal.Zero
	}

	matches := numberPattern.FindAllString(cleaned, -1)
	if matches == nil {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(strings.Join(matches, ""))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// dateFormats are tried in order against trimmed date cells
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseFlexibleDate parses a statement date cell. It tries the known
// formats first and falls back to compact digit slicing for values like
// "20240115" or "2024.01.15". Dates are local calendar dates with no
// timezone normalization. The second return value is false when the cell
// holds no recognizable date.
func ParseFlexibleDate(value string) (time.Time, bool) {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return time.Time{}, false
	}

	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, normalized, time.Local); err == nil {
			return t, true
		}
	}

	return ParseCompactDate(normalized)
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// ParseCompactDate interprets the first eight digits of a value as
// YYYYMMDD. OFX DTPOSTED values like "20240115120000[-5:EST]" reduce to
// their date this way.
func ParseCompactDate(value string) (time.Time, bool) {
	digits := nonDigits.ReplaceAllString(value, "")
	if len(digits) < 8 {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(digits[0:4])
	month, _ := strconv.Atoi(digits[4:6])
	day, _ := strconv.Atoi(digits[6:8])

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

var headerSpaces = regexp.MustCompile(`\s+`)
var headerJunk = regexp.MustCompile(`[^a-z0-9_]`)

// NormalizeHeader produces the canonical key used for all header and alias
// matching: lowercased, whitespace runs collapsed to underscores, and
// every other non-alphanumeric character stripped. Matching downstream is
// exact string equality on this form, never fuzzy.
func NormalizeHeader(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = headerSpaces.ReplaceAllString(normalized, "_")
	return headerJunk.ReplaceAllString(normalized, "")
}
