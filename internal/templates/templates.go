// Package templates maps statement export headers to semantic transaction
// fields. It carries a registry of known bank and broker export profiles,
// a best-match auto-detector, and a generic keyword fallback for exports
// no profile knows about.
package templates

import (
	"fmt"
	"strings"

	"statement-ingestion-service/internal/models"
)

// Template is a named bank or broker export profile. For each semantic
// field it lists the normalized header names that export uses, in
// preference order. Templates are immutable after registry construction.
type Template struct {
	ID         string                    `yaml:"id" json:"id"`
	Name       string                    `yaml:"name" json:"name"`
	SourceName string                    `yaml:"source_name" json:"sourceName"`
	SourceType models.SourceType         `yaml:"source_type" json:"sourceType"`
	Aliases    map[models.Field][]string `yaml:"aliases" json:"aliases"`
}

// Validate checks that a template is well formed
func (t *Template) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("template id cannot be empty")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if t.SourceType != models.SourceTypeBank && t.SourceType != models.SourceTypeBroker {
		return fmt.Errorf("template source type must be bank or broker, got %q", t.SourceType)
	}

	known := make(map[models.Field]bool)
	for _, field := range models.Fields() {
		known[field] = true
	}
	declared := 0
	for field, aliases := range t.Aliases {
		if !known[field] {
			return fmt.Errorf("template declares unknown field %q", field)
		}
		declared += len(aliases)
	}
	if declared == 0 {
		return fmt.Errorf("template declares no header aliases")
	}

	return nil
}

// Builtin returns the built-in bank and broker export profiles
func Builtin() []*Template {
	return []*Template{
		{
			ID:         "hdfc",
			Name:       "HDFC Bank",
			SourceName: "HDFC Bank",
			SourceType: models.SourceTypeBank,
			Aliases: map[models.Field][]string{
				models.FieldAmount:      {"amount", "transaction_amount", "txn_amount"},
				models.FieldBalance:     {"closing_balance", "balance", "running_balance"},
				models.FieldCredit:      {"deposit_amt", "deposit_amount", "credit", "credit_amount"},
				models.FieldDate:        {"date", "value_dt", "value_date"},
				models.FieldDebit:       {"withdrawal_amt", "withdrawal_amount", "debit", "debit_amount"},
				models.FieldDescription: {"narration", "description", "particulars", "details"},
			},
		},
		{
			ID:         "icici",
			Name:       "ICICI Bank",
			SourceName: "ICICI Bank",
			SourceType: models.SourceTypeBank,
			Aliases: map[models.Field][]string{
				models.FieldAmount:      {"amount", "transaction_amount", "txn_amount"},
				models.FieldBalance:     {"balance", "closing_balance", "running_balance"},
				models.FieldCredit:      {"deposit", "deposits", "credit", "credit_amount"},
				models.FieldDate:        {"transaction_date", "date"},
				models.FieldDebit:       {"withdrawal", "withdrawals", "debit", "debit_amount"},
				models.FieldDescription: {"transaction_remarks", "remarks", "description", "narration"},
			},
		},
		{
			ID:         "sbi",
			Name:       "SBI Bank",
			SourceName: "SBI Bank",
			SourceType: models.SourceTypeBank,
			Aliases: map[models.Field][]string{
				models.FieldAmount:      {"amount", "transaction_amount", "txn_amount"},
				models.FieldBalance:     {"balance", "closing_balance", "running_balance"},
				models.FieldCredit:      {"credit", "deposit", "cr", "credit_amount"},
				models.FieldDate:        {"txn_date", "transaction_date", "date"},
				models.FieldDebit:       {"debit", "withdrawal", "dr", "debit_amount"},
				models.FieldDescription: {"description", "narration", "particulars", "details"},
			},
		},
		{
			ID:         "axis",
			Name:       "Axis Bank",
			SourceName: "Axis Bank",
			SourceType: models.SourceTypeBank,
			Aliases: map[models.Field][]string{
				models.FieldAmount:      {"amount", "transaction_amount", "txn_amount"},
				models.FieldBalance:     {"balance", "closing_balance", "running_balance"},
				models.FieldCredit:      {"credit", "deposit", "cr", "credit_amount"},
				models.FieldDate:        {"tran_date", "transaction_date", "date"},
				models.FieldDebit:       {"debit", "withdrawal", "dr", "debit_amount"},
				models.FieldDescription: {"transaction_remarks", "remarks", "description", "narration"},
			},
		},
		{
			ID:         "kotak",
			Name:       "Kotak Bank",
			SourceName: "Kotak Bank",
			SourceType: models.SourceTypeBank,
			Aliases: map[models.Field][]string{
				models.FieldAmount:      {"amount", "transaction_amount", "txn_amount"},
				models.FieldBalance:     {"balance", "closing_balance", "running_balance"},
				models.FieldCredit:      {"deposit", "credit", "cr", "credit_amount"},
				models.FieldDate:        {"transaction_date", "date"},
				models.FieldDebit:       {"withdrawal", "debit", "dr", "debit_amount"},
				models.FieldDescription: {"narration", "description", "remarks", "particulars"},
			},
		},
		{
			ID:         "yes",
			Name:       "Yes Bank",
			SourceName: "Yes Bank",
			SourceType: models.SourceTypeBank,
			Aliases: map[models.Field][]string{
				models.FieldAmount:      {"amount", "transaction_amount", "txn_amount"},
				models.FieldBalance:     {"balance", "closing_balance", "running_balance"},
				models.FieldCredit:      {"credit", "deposit", "cr", "credit_amount"},
				models.FieldDate:        {"transaction_date", "date"},
				models.FieldDebit:       {"debit", "withdrawal", "dr", "debit_amount"},
				models.FieldDescription: {"description", "narration", "transaction_description", "remarks"},
			},
		},
		{
			ID:         "canara",
			Name:       "Canara Bank",
			SourceName: "Canara Bank",
			SourceType: models.SourceTypeBank,
			Aliases: map[models.Field][]string{
				models.FieldAmount:      {"amount", "transaction_amount", "txn_amount"},
				models.FieldBalance:     {"balance", "closing_balance", "running_balance"},
				models.FieldCredit:      {"credit", "deposit", "cr", "credit_amount"},
				models.FieldDate:        {"transaction_date", "date"},
				models.FieldDebit:       {"debit", "withdrawal", "dr", "debit_amount"},
				models.FieldDescription: {"description", "narration", "remarks", "particulars"},
			},
		},
		{
			ID:         "groww",
			Name:       "Groww",
			SourceName: "Groww",
			SourceType: models.SourceTypeBroker,
			Aliases: map[models.Field][]string{
				models.FieldAmount:      {"amount", "transaction_amount", "txn_amount"},
				models.FieldBalance:     {"balance", "closing_balance", "running_balance"},
				models.FieldCredit:      {"credit", "deposit", "cr", "credit_amount"},
				models.FieldDate:        {"date", "transaction_date", "trade_date", "value_date"},
				models.FieldDebit:       {"debit", "withdrawal", "dr", "debit_amount"},
				models.FieldDescription: {"narration", "description", "remarks", "details", "particulars"},
			},
		},
	}
}
