// Package reporter renders import outcomes and earnings series for the CLI.
//
// Supported output formats:
//   - Console: human-readable output for terminal display
//   - JSON: structured data for programmatic consumption
//   - CSV: comma-separated output for spreadsheet applications
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"statement-ingestion-service/internal/growth"
	"statement-ingestion-service/internal/parsers"
)

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// WriteImport renders one import outcome in the given format
func WriteImport(w io.Writer, outcome *parsers.ImportOutcome, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, outcome)
	case FormatCSV:
		return writeImportCSV(w, outcome)
	case FormatConsole:
		writeImportConsole(w, outcome)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteSeries renders a cumulative earnings series in the given format
func WriteSeries(w io.Writer, series []growth.Point, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, series)
	case FormatCSV:
		return writeSeriesCSV(w, series)
	case FormatConsole:
		for _, point := range series {
			fmt.Fprintf(w, "%s  net %12s  cumulative %12s\n",
				point.X.Format("2006-01-02"), point.Net, point.Y)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeImportConsole(w io.Writer, outcome *parsers.ImportOutcome) {
	statement := outcome.Result.Statement

	fmt.Fprintf(w, "File:          %s (%s, %s)\n", outcome.File.FileName, outcome.File.ParseMethod, outcome.File.ParseStatus)
	if outcome.Detection != nil {
		fmt.Fprintf(w, "Template:      %s (%d/%d columns matched)\n",
			outcome.Detection.Template.Name, outcome.Detection.Matched, outcome.Detection.Total)
	}
	fmt.Fprintf(w, "Transactions:  %d\n", outcome.Result.TransactionCount)
	fmt.Fprintf(w, "Period:        %s to %s\n",
		statement.PeriodStart.Format("2006-01-02"), statement.PeriodEnd.Format("2006-01-02"))
	fmt.Fprintf(w, "Gross income:  %s%s\n", statement.CurrencySymbol, statement.GrossIncome)
	fmt.Fprintf(w, "Gross expense: %s%s\n", statement.CurrencySymbol, statement.GrossExpense)
	fmt.Fprintf(w, "Net profit:    %s%s\n", statement.CurrencySymbol, statement.NetProfit)
	if statement.OpeningBalance != nil {
		fmt.Fprintf(w, "Opening:       %s%s\n", statement.CurrencySymbol, statement.OpeningBalance)
	}
	if statement.ClosingBalance != nil {
		fmt.Fprintf(w, "Closing:       %s%s\n", statement.CurrencySymbol, statement.ClosingBalance)
	}
}

func writeImportCSV(w io.Writer, outcome *parsers.ImportOutcome) error {
	statement := outcome.Result.Statement

	opening := ""
	if statement.OpeningBalance != nil {
		opening = statement.OpeningBalance.String()
	}
	closing := ""
	if statement.ClosingBalance != nil {
		closing = statement.ClosingBalance.String()
	}
	template := ""
	if outcome.Detection != nil {
		template = outcome.Detection.Template.ID
	}

	writer := csv.NewWriter(w)
	records := [][]string{
		{"file_name", "parse_method", "parse_status", "template", "transactions",
			"period_start", "period_end", "currency",
			"gross_income", "gross_expense", "net_profit",
			"opening_balance", "closing_balance"},
		{
			outcome.File.FileName,
			string(outcome.File.ParseMethod),
			string(outcome.File.ParseStatus),
			template,
			fmt.Sprintf("%d", outcome.Result.TransactionCount),
			statement.PeriodStart.Format("2006-01-02"),
			statement.PeriodEnd.Format("2006-01-02"),
			statement.Currency,
			statement.GrossIncome.String(),
			statement.GrossExpense.String(),
			statement.NetProfit.String(),
			opening,
			closing,
		},
	}

	if err := writer.WriteAll(records); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeSeriesCSV(w io.Writer, series []growth.Point) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"period_end", "net", "cumulative"}); err != nil {
		return err
	}
	for _, point := range series {
		record := []string{
			point.X.Format("2006-01-02"),
			point.Net.String(),
			point.Y.String(),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
