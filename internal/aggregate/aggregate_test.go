package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"statement-ingestion-service/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTypeAware(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		txnType string
		income  string
		expense string
	}{
		{"positive credit", "100", "credit", "100", "0"},
		{"positive no type", "100", "", "100", "0"},
		{"negative", "-40", "", "0", "40"},
		{"positive debit type", "100", "debit", "0", "100"},
		{"positive dr type", "100", "dr", "0", "100"},
		{"negative debit type", "-40", "debit", "0", "40"},
		{"zero counts as income", "0", "", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := TypeAware(&models.Transaction{Amount: dec(tt.amount), Type: tt.txnType})
			if !c.Income.Equal(dec(tt.income)) {
				t.Errorf("income = %s, want %s", c.Income, tt.income)
			}
			if !c.Expense.Equal(dec(tt.expense)) {
				t.Errorf("expense = %s, want %s", c.Expense, tt.expense)
			}
		})
	}
}

func TestSignOnly(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		txnType string
		income  string
		expense string
	}{
		{"positive", "250", "", "250", "0"},
		{"negative", "-75.50", "", "0", "75.50"},
		{"zero", "0", "", "0", "0"},
		{"type string is ignored", "100", "DEBIT", "100", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SignOnly(&models.Transaction{Amount: dec(tt.amount), Type: tt.txnType})
			if !c.Income.Equal(dec(tt.income)) {
				t.Errorf("income = %s, want %s", c.Income, tt.income)
			}
			if !c.Expense.Equal(dec(tt.expense)) {
				t.Errorf("expense = %s, want %s", c.Expense, tt.expense)
			}
		})
	}
}

func TestSummarizeTotals(t *testing.T) {
	txns := []models.Transaction{
		{Amount: dec("50000"), Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)},
		{Amount: dec("-15000"), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)},
		{Amount: dec("-2500"), Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)},
	}

	s := Summarize(txns, Options{})

	if !s.GrossIncome.Equal(dec("50000")) {
		t.Errorf("gross income = %s, want 50000", s.GrossIncome)
	}
	if !s.GrossExpense.Equal(dec("17500")) {
		t.Errorf("gross expense = %s, want 17500", s.GrossExpense)
	}
	if !s.NetProfit.Equal(dec("32500")) {
		t.Errorf("net profit = %s, want 32500", s.NetProfit)
	}
	if s.TransactionCount != 3 {
		t.Errorf("transaction count = %d, want 3", s.TransactionCount)
	}
	if !s.PeriodStart.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)) {
		t.Errorf("period start = %s", s.PeriodStart)
	}
	if !s.PeriodEnd.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)) {
		t.Errorf("period end = %s", s.PeriodEnd)
	}
}

// Net profit is the raw signed sum even when the classifier reroutes a
// positive amount into expense, so income minus expense and net profit can
// disagree.
func TestSummarizeNetProfitIndependentOfClassification(t *testing.T) {
	txns := []models.Transaction{
		{Amount: dec("100"), Type: "debit"},
	}

	s := Summarize(txns, Options{Clock: func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local) }})

	if !s.GrossIncome.Equal(decimal.Zero) {
		t.Errorf("gross income = %s, want 0", s.GrossIncome)
	}
	if !s.GrossExpense.Equal(dec("100")) {
		t.Errorf("gross expense = %s, want 100", s.GrossExpense)
	}
	if !s.NetProfit.Equal(dec("100")) {
		t.Errorf("net profit = %s, want 100", s.NetProfit)
	}
}

func TestSummarizeBalances(t *testing.T) {
	t.Run("first and last nonzero", func(t *testing.T) {
		txns := []models.Transaction{
			{Amount: dec("10"), Balance: dec("0")},
			{Amount: dec("10"), Balance: dec("1010")},
			{Amount: dec("-5"), Balance: dec("1005")},
			{Amount: dec("1"), Balance: dec("0")},
		}

		s := Summarize(txns, Options{})

		if s.OpeningBalance == nil || !s.OpeningBalance.Equal(dec("1010")) {
			t.Errorf("opening balance = %v, want 1010", s.OpeningBalance)
		}
		if s.ClosingBalance == nil || !s.ClosingBalance.Equal(dec("1005")) {
			t.Errorf("closing balance = %v, want 1005", s.ClosingBalance)
		}
	})

	t.Run("all zero means no balances", func(t *testing.T) {
		txns := []models.Transaction{
			{Amount: dec("10")},
			{Amount: dec("-5")},
		}

		s := Summarize(txns, Options{})

		if s.OpeningBalance != nil {
			t.Errorf("opening balance = %s, want nil", s.OpeningBalance)
		}
		if s.ClosingBalance != nil {
			t.Errorf("closing balance = %s, want nil", s.ClosingBalance)
		}
	})
}

func TestSummarizePeriodFallsBackToClock(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	opts := Options{Clock: func() time.Time { return now }}

	t.Run("no transactions", func(t *testing.T) {
		s := Summarize(nil, opts)
		if !s.PeriodStart.Equal(now) || !s.PeriodEnd.Equal(now) {
			t.Errorf("period = [%s, %s], want clock time", s.PeriodStart, s.PeriodEnd)
		}
	})

	t.Run("no dated transactions", func(t *testing.T) {
		s := Summarize([]models.Transaction{{Amount: dec("10")}}, opts)
		if !s.PeriodStart.Equal(now) || !s.PeriodEnd.Equal(now) {
			t.Errorf("period = [%s, %s], want clock time", s.PeriodStart, s.PeriodEnd)
		}
	})
}

func TestSummaryDraft(t *testing.T) {
	closing := dec("1455")
	s := Summary{
		GrossIncome:    dec("2000"),
		GrossExpense:   dec("545"),
		NetProfit:      dec("1455"),
		ClosingBalance: &closing,
		PeriodStart:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		PeriodEnd:      time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local),
	}

	draft := s.Draft("USD", "$")

	if draft.Currency != "USD" || draft.CurrencySymbol != "$" {
		t.Errorf("currency = %s %s, want USD $", draft.Currency, draft.CurrencySymbol)
	}
	if draft.SourceType != models.SourceTypeImport {
		t.Errorf("source type = %s, want import", draft.SourceType)
	}
	if !draft.Fees.Equal(decimal.Zero) || !draft.Taxes.Equal(decimal.Zero) {
		t.Error("fees and taxes should start at zero")
	}
	if draft.OpeningBalance != nil {
		t.Errorf("opening balance = %s, want nil", draft.OpeningBalance)
	}
	if draft.ClosingBalance == nil || !draft.ClosingBalance.Equal(dec("1455")) {
		t.Errorf("closing balance = %v, want 1455", draft.ClosingBalance)
	}
}
