package parsers

import (
	"strings"
	"time"

	"statement-ingestion-service/internal/aggregate"
	"statement-ingestion-service/internal/models"
	"statement-ingestion-service/pkg/logger"
)

// Ingestor runs the statement ingestion pipeline. It holds no mutable
// state between runs; the zero-value configuration uses the real clock.
type Ingestor struct {
	log   logger.Logger
	clock func() time.Time
}

// Option configures an Ingestor
type Option func(*Ingestor)

// WithClock overrides the clock used for the period fallback when a
// document has no dated transactions. Tests inject a fixed clock here.
func WithClock(clock func() time.Time) Option {
	return func(ing *Ingestor) {
		ing.clock = clock
	}
}

// WithLogger overrides the ingestor's logger
func WithLogger(log logger.Logger) Option {
	return func(ing *Ingestor) {
		ing.log = log
	}
}

// NewIngestor creates an ingestion pipeline
func NewIngestor(opts ...Option) *Ingestor {
	ing := &Ingestor{
		log:   logger.WithComponent("ingestor"),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// BuildTransactions reconstructs one transaction per CSV row using the
// resolved column mapping. Header lookup is by name; when two raw headers
// collide the later column wins. Missing trailing cells in short rows read
// as empty values.
//
// When both a credit and a debit column are mapped the signed amount is
// credit minus debit, taking priority over any amount column. The type
// cell is lowercased as stored; balance defaults to zero rather than
// unset, unlike amount and date.
func BuildTransactions(headers []string, rows [][]string, mapping models.Mapping) []models.Transaction {
	headerIndex := make(map[string]int, len(headers))
	for i, header := range headers {
		headerIndex[header] = i
	}

	cell := func(row []string, field models.Field) string {
		header := mapping.Header(field)
		if header == "" {
			return ""
		}
		index, ok := headerIndex[header]
		if !ok || index >= len(row) {
			return ""
		}
		return row[index]
	}

	useCreditDebit := mapping.Has(models.FieldCredit) && mapping.Has(models.FieldDebit)

	txns := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		var txn models.Transaction

		if useCreditDebit {
			credit := models.ParseAmount(cell(row, models.FieldCredit))
			debit := models.ParseAmount(cell(row, models.FieldDebit))
			txn.Amount = credit.Sub(debit)
		} else {
			txn.Amount = models.ParseAmount(cell(row, models.FieldAmount))
		}

		txn.Balance = models.ParseAmount(cell(row, models.FieldBalance))
		if date, ok := models.ParseFlexibleDate(cell(row, models.FieldDate)); ok {
			txn.Date = date
		}
		txn.Description = cell(row, models.FieldDescription)
		txn.Type = strings.ToLower(cell(row, models.FieldType))

		txns = append(txns, txn)
	}

	return txns
}

// BuildStatementFromCSV reconstructs and aggregates mapped CSV rows into a
// statement draft. Every row yields exactly one transaction, so the
// returned count always equals len(rows).
func (ing *Ingestor) BuildStatementFromCSV(headers []string, rows [][]string, mapping models.Mapping, currency, currencySymbol string) models.ImportResult {
	txns := BuildTransactions(headers, rows, mapping)

	summary := aggregate.Summarize(txns, aggregate.Options{
		Classifier: aggregate.TypeAware,
		Clock:      ing.clock,
	})

	ing.log.WithFields(logger.Fields{
		"rows":          len(rows),
		"transactions":  summary.TransactionCount,
		"gross_income":  summary.GrossIncome,
		"gross_expense": summary.GrossExpense,
	}).Debug("Aggregated CSV statement")

	return models.ImportResult{
		Statement:        summary.Draft(currency, currencySymbol),
		TransactionCount: summary.TransactionCount,
	}
}
