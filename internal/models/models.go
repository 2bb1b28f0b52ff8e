package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceType tags where a statement came from
type SourceType string

const (
	SourceTypeBank   SourceType = "bank"
	SourceTypeBroker SourceType = "broker"
	SourceTypeManual SourceType = "manual"
	SourceTypeImport SourceType = "import"
)

// String returns the string representation of SourceType
func (s SourceType) String() string {
	return string(s)
}

// IsValid checks if the source type is valid
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeBank, SourceTypeBroker, SourceTypeManual, SourceTypeImport:
		return true
	}
	return false
}

// Field identifies a semantic transaction column in a statement export
type Field string

const (
	FieldDate        Field = "date"
	FieldAmount      Field = "amount"
	FieldCredit      Field = "credit"
	FieldDebit       Field = "debit"
	FieldBalance     Field = "balance"
	FieldDescription Field = "description"
	FieldType        Field = "type"
)

// Fields lists every semantic field a mapping may carry
func Fields() []Field {
	return []Field{
		FieldDate,
		FieldAmount,
		FieldCredit,
		FieldDebit,
		FieldBalance,
		FieldDescription,
		FieldType,
	}
}

// Mapping assigns semantic fields to raw header names of a statement
// export. Absent keys mean the field was not found. Headers are matched by
// name, not by index, so a short row simply yields no value for a field.
type Mapping map[Field]string

// Header returns the raw header mapped to a field, or "" when unmapped
func (m Mapping) Header(field Field) string {
	return m[field]
}

// Has reports whether a field is mapped
func (m Mapping) Has(field Field) bool {
	return m[field] != ""
}

// HasMinimumColumns reports whether the mapping is usable for ingestion:
// a date column plus either an amount column or at least one of the
// credit/debit pair.
func (m Mapping) HasMinimumColumns() bool {
	hasDate := m.Has(FieldDate)
	hasAmount := m.Has(FieldAmount)
	hasCreditDebit := m.Has(FieldCredit) || m.Has(FieldDebit)
	return hasDate && (hasAmount || hasCreditDebit)
}

// Transaction is one reconstructed statement row. It only lives long
// enough to be aggregated into a statement draft.
type Transaction struct {
	Amount      decimal.Decimal
	Balance     decimal.Decimal
	Date        time.Time // zero when the row had no parsable date
	Description string
	Type        string
}

// HasDate reports whether the transaction carries a resolved date
func (t *Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// StatementDraft is the canonical, not-yet-persisted summary of one
// imported statement period. Fees and taxes are always zero from automated
// ingestion; the surrounding application edits them afterwards.
type StatementDraft struct {
	AccountLabel   *string          `json:"accountLabel"`
	ClosingBalance *decimal.Decimal `json:"closingBalance"`
	Currency       string           `json:"currency"`
	CurrencySymbol string           `json:"currencySymbol"`
	Fees           decimal.Decimal  `json:"fees"`
	GrossExpense   decimal.Decimal  `json:"grossExpense"`
	GrossIncome    decimal.Decimal  `json:"grossIncome"`
	NetProfit      decimal.Decimal  `json:"netProfit"`
	Notes          string           `json:"notes"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
	PeriodEnd      time.Time        `json:"periodEnd"`
	PeriodStart    time.Time        `json:"periodStart"`
	SourceName     *string          `json:"sourceName"`
	SourceType     SourceType       `json:"sourceType"`
	Taxes          decimal.Decimal  `json:"taxes"`
}

// ImportResult is the output shape of both the CSV and OFX ingestion paths
type ImportResult struct {
	Statement        StatementDraft `json:"statement"`
	TransactionCount int            `json:"transactionCount"`
}

// Statement is a persisted statement summary as the surrounding storage
// layer hands it back, which is all the growth series builder needs.
type Statement struct {
	ID string `json:"id"`
	StatementDraft
	TransactionCount int       `json:"transactionCount"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewStatement promotes a draft into a persisted-shape record
func NewStatement(draft StatementDraft, transactionCount int, createdAt time.Time) *Statement {
	return &Statement{
		ID:               uuid.NewString(),
		StatementDraft:   draft,
		TransactionCount: transactionCount,
		CreatedAt:        createdAt,
	}
}

// ParseMethod identifies which ingestion path handled a statement file
type ParseMethod string

const (
	ParseMethodCSV     ParseMethod = "csv"
	ParseMethodOFX     ParseMethod = "ofx"
	ParseMethodQFX     ParseMethod = "qfx"
	ParseMethodManual  ParseMethod = "manual"
	ParseMethodUnknown ParseMethod = "unknown"
)

// ParseStatus reports how well an ingestion run went
type ParseStatus string

const (
	ParseStatusSuccess ParseStatus = "success"
	ParseStatusPartial ParseStatus = "partial"
	ParseStatusFailed  ParseStatus = "failed"
)

// FileDraft carries metadata about one ingested statement file
type FileDraft struct {
	FileName    string      `json:"fileName"`
	FileSize    int64       `json:"fileSize"`
	ParseMethod ParseMethod `json:"parseMethod"`
	ParseStatus ParseStatus `json:"parseStatus"`
}

// DeriveParseStatus classifies an ingestion run by its transaction count.
// A run that produced no transactions still returns a draft, so the caller
// sees "partial" rather than an error.
func DeriveParseStatus(transactionCount int) ParseStatus {
	if transactionCount > 0 {
		return ParseStatusSuccess
	}
	return ParseStatusPartial
}
