package parsers

import (
	"regexp"
	"strings"

	"statement-ingestion-service/internal/aggregate"
	"statement-ingestion-service/internal/models"
	"statement-ingestion-service/pkg/logger"
)

// OFX SGML has no closing tags for leaf values, so a value runs until the
// next angle bracket or line break.
var (
	stmtTrnPattern   = regexp.MustCompile(`(?is)<STMTTRN>(.*?)</STMTTRN>`)
	ledgerBalPattern = regexp.MustCompile(`(?is)<LEDGERBAL>(.*?)</LEDGERBAL>`)

	trnAmtPattern   = tagPattern("TRNAMT")
	dtPostedPattern = tagPattern("DTPOSTED")
	memoPattern     = tagPattern("MEMO")
	namePattern     = tagPattern("NAME")
	trnTypePattern  = tagPattern("TRNTYPE")
	balAmtPattern   = tagPattern("BALAMT")
)

func tagPattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)<` + tag + `>([^<` + "\n\r" + `]*)`)
}

func extractTagValue(block string, pattern *regexp.Regexp) string {
	match := pattern.FindStringSubmatch(block)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// ParseOFXTransactions extracts the <STMTTRN> blocks from an OFX/QFX
// document. The transaction type stays exactly as written; unlike the CSV
// path it is never lowercased, and the aggregation below never consults it.
func ParseOFXTransactions(text string) []models.Transaction {
	var txns []models.Transaction

	for _, match := range stmtTrnPattern.FindAllStringSubmatch(text, -1) {
		block := match[1]

		var txn models.Transaction
		txn.Amount = models.ParseAmount(extractTagValue(block, trnAmtPattern))
		if date, ok := models.ParseCompactDate(extractTagValue(block, dtPostedPattern)); ok {
			txn.Date = date
		}
		txn.Description = extractTagValue(block, memoPattern)
		if txn.Description == "" {
			txn.Description = extractTagValue(block, namePattern)
		}
		txn.Type = extractTagValue(block, trnTypePattern)

		txns = append(txns, txn)
	}

	return txns
}

// BuildStatementFromOFX runs the OFX/QFX ingestion path: extract the
// transaction blocks, aggregate with sign-only classification, and take
// the closing balance from the top-level <LEDGERBAL> block when present.
// OFX reports no opening balance, so that field is always nil. A document
// with no transaction blocks degrades to zero aggregates with the period
// falling back to the clock.
func (ing *Ingestor) BuildStatementFromOFX(text, currency, currencySymbol string) models.ImportResult {
	txns := ParseOFXTransactions(text)

	summary := aggregate.Summarize(txns, aggregate.Options{
		Classifier: aggregate.SignOnly,
		Clock:      ing.clock,
	})

	if ledger := ledgerBalPattern.FindStringSubmatch(text); ledger != nil {
		closing := models.ParseAmount(extractTagValue(ledger[1], balAmtPattern))
		summary.ClosingBalance = &closing
	}

	ing.log.WithFields(logger.Fields{
		"transactions":  summary.TransactionCount,
		"gross_income":  summary.GrossIncome,
		"gross_expense": summary.GrossExpense,
	}).Debug("Aggregated OFX statement")

	return models.ImportResult{
		Statement:        summary.Draft(currency, currencySymbol),
		TransactionCount: summary.TransactionCount,
	}
}
