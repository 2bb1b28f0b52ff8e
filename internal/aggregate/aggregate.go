// Package aggregate reduces reconstructed transaction lists into statement
// period summaries. The same reduction serves both the CSV and OFX
// ingestion paths; only the income/expense classification differs between
// them.
package aggregate

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"statement-ingestion-service/internal/models"
)

// Contribution says how one transaction feeds the gross totals
type Contribution struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Classifier assigns a transaction's contribution to gross income and
// gross expense. Net profit is never derived from a classifier; it is the
// raw signed sum regardless of classification, so the two can diverge when
// a type string reroutes a positive amount to expense.
type Classifier func(txn *models.Transaction) Contribution

// TypeAware classifies using both the amount sign and the transaction's
// type string, in this exact rule order: income when the amount is
// non-negative and the type does not read as a debit; expense (absolute
// amount) when the amount is negative or the type reads as a debit. A
// positive amount with a "debit" type therefore lands in expense, not
// income, while still adding its raw positive value to net profit.
func TypeAware(txn *models.Transaction) Contribution {
	var c Contribution

	isDebit := strings.Contains(txn.Type, "dr") || strings.Contains(txn.Type, "debit")

	if !txn.Amount.IsNegative() && !isDebit {
		c.Income = txn.Amount
	}
	if txn.Amount.IsNegative() || isDebit {
		c.Expense = txn.Amount.Abs()
	}

	return c
}

// SignOnly classifies by amount sign alone. The OFX path uses this: OFX
// transactions never go through the type-aware rules, and the asymmetry
// with the CSV path is deliberate.
func SignOnly(txn *models.Transaction) Contribution {
	var c Contribution

	if txn.Amount.IsNegative() {
		c.Expense = txn.Amount.Abs()
	} else {
		c.Income = txn.Amount
	}

	return c
}

// Options configures a summarization run
type Options struct {
	// Classifier routes amounts into gross income/expense. Defaults to
	// TypeAware.
	Classifier Classifier
	// Clock supplies "now" for the period fallback when no transaction
	// carries a date. It is the only non-deterministic input to the
	// pipeline; inject a fixed clock in tests. Defaults to time.Now.
	Clock func() time.Time
}

// Summary is the reduction of one transaction list
type Summary struct {
	GrossIncome      decimal.Decimal
	GrossExpense     decimal.Decimal
	NetProfit        decimal.Decimal
	OpeningBalance   *decimal.Decimal
	ClosingBalance   *decimal.Decimal
	PeriodStart      time.Time
	PeriodEnd        time.Time
	TransactionCount int
}

// Summarize reduces a transaction list left to right. Gross income and
// gross expense accumulate per the classifier and are always non-negative.
// Opening balance is the first nonzero balance in document order, closing
// the last. Period bounds are min/max over dated transactions, falling
// back to the clock when none exist.
func Summarize(txns []models.Transaction, opts Options) Summary {
	classify := opts.Classifier
	if classify == nil {
		classify = TypeAware
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	summary := Summary{
		GrossIncome:      decimal.Zero,
		GrossExpense:     decimal.Zero,
		NetProfit:        decimal.Zero,
		TransactionCount: len(txns),
	}

	for i := range txns {
		txn := &txns[i]

		c := classify(txn)
		summary.GrossIncome = summary.GrossIncome.Add(c.Income)
		summary.GrossExpense = summary.GrossExpense.Add(c.Expense)
		summary.NetProfit = summary.NetProfit.Add(txn.Amount)

		// A zero balance is indistinguishable from "no balance column",
		// so it never records as opening or closing.
		if !txn.Balance.IsZero() {
			balance := txn.Balance
			if summary.OpeningBalance == nil {
				summary.OpeningBalance = &balance
			}
			summary.ClosingBalance = &balance
		}

		if txn.HasDate() {
			if summary.PeriodStart.IsZero() || txn.Date.Before(summary.PeriodStart) {
				summary.PeriodStart = txn.Date
			}
			if summary.PeriodEnd.IsZero() || txn.Date.After(summary.PeriodEnd) {
				summary.PeriodEnd = txn.Date
			}
		}
	}

	if summary.PeriodStart.IsZero() || summary.PeriodEnd.IsZero() {
		now := clock()
		if summary.PeriodStart.IsZero() {
			summary.PeriodStart = now
		}
		if summary.PeriodEnd.IsZero() {
			summary.PeriodEnd = now
		}
	}

	return summary
}

// Draft shapes a summary into a statement draft. Fees, taxes and notes are
// always empty here; the surrounding application fills them in later.
// Currency and symbol pass through from the caller, never from the
// document.
func (s Summary) Draft(currency, currencySymbol string) models.StatementDraft {
	return models.StatementDraft{
		AccountLabel:   nil,
		ClosingBalance: s.ClosingBalance,
		Currency:       currency,
		CurrencySymbol: currencySymbol,
		Fees:           decimal.Zero,
		GrossExpense:   s.GrossExpense,
		GrossIncome:    s.GrossIncome,
		NetProfit:      s.NetProfit,
		Notes:          "",
		OpeningBalance: s.OpeningBalance,
		PeriodEnd:      s.PeriodEnd,
		PeriodStart:    s.PeriodStart,
		SourceName:     nil,
		SourceType:     models.SourceTypeImport,
		Taxes:          decimal.Zero,
	}
}
