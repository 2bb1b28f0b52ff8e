package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"statement-ingestion-service/cmd/statements/config"
	"statement-ingestion-service/internal/parsers"
	"statement-ingestion-service/internal/reporter"
	"statement-ingestion-service/pkg/logger"
)

// Flags for the import command
var (
	importCurrency     string
	importSymbol       string
	importOutputFormat string
	importOutputFile   string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Ingest a statement export into a period summary",
	Long: `Import reads a bank or broker statement export (CSV or OFX/QFX) and
normalizes it into a statement period summary: gross income, gross
expense, net profit, balances and period bounds.

For CSV files the column mapping comes from the best matching statement
template, falling back to generic keyword inference when no template
clears the minimum-columns gate (a date column plus an amount or
credit/debit pair).

Examples:
  # Import with defaults
  statements import statement.csv

  # Explicit currency and JSON output
  statements import export.ofx --currency USD --currency-symbol '$' --output-format json

  # Use custom templates alongside the built-in ones
  statements import statement.csv --templates-file mybanks.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importCurrency, "currency", "c", "", "currency code recorded on the statement (default INR)")
	importCmd.Flags().StringVar(&importSymbol, "currency-symbol", "", "currency symbol recorded on the statement (default ₹)")
	importCmd.Flags().StringVarP(&importOutputFormat, "output-format", "f", "console", "output format: console, json, csv")
	importCmd.Flags().StringVarP(&importOutputFile, "output-file", "o", "", "output file path (default: stdout)")

	viper.BindPFlag("currency", importCmd.Flags().Lookup("currency"))
	viper.BindPFlag("currency-symbol", importCmd.Flags().Lookup("currency-symbol"))
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	content, err := config.ReadStatementFile(path)
	if err != nil {
		return err
	}

	registry, err := config.LoadRegistry(templatesFile)
	if err != nil {
		return err
	}

	currency, symbol := config.Currency(importCurrency, importSymbol)

	op := logger.StartOperation("import", nil).WithField("file_path", path)

	ingestor := parsers.NewIngestor()
	outcome, err := ingestor.ImportDocument(filepath.Base(path), content, currency, symbol, registry)
	if err != nil {
		op.Error(err, "Import failed")
		return err
	}
	op.WithFields(logger.Fields{
		"parse_method": outcome.File.ParseMethod,
		"transactions": outcome.Result.TransactionCount,
	}).Success("Import completed")

	format := reporter.OutputFormat(importOutputFormat)
	if !format.IsValid() {
		return fmt.Errorf("unsupported output format: %s", importOutputFormat)
	}

	out := os.Stdout
	if importOutputFile != "" {
		f, err := os.Create(importOutputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return reporter.WriteImport(out, outcome, format)
}
