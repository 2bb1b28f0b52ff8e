package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statement-ingestion-service/cmd/statements/config"
	"statement-ingestion-service/internal/growth"
	"statement-ingestion-service/internal/models"
	"statement-ingestion-service/internal/reporter"
	"statement-ingestion-service/pkg/errors"
)

var growthOutputFormat string

// growthCmd represents the growth command
var growthCmd = &cobra.Command{
	Use:   "growth <statements.json>",
	Short: "Build a cumulative earnings series from statement summaries",
	Long: `Growth reads a JSON array of persisted statement summaries and produces
the cumulative net-profit series used for earnings charts: statements
sorted by period end, one point per statement, running cumulative sum.

Example:
  statements growth statements.json --output-format json`,
	Args: cobra.ExactArgs(1),
	RunE: runGrowth,
}

func init() {
	rootCmd.AddCommand(growthCmd)

	growthCmd.Flags().StringVarP(&growthOutputFormat, "output-format", "f", "console", "output format: console, json, csv")
}

func runGrowth(cmd *cobra.Command, args []string) error {
	path := args[0]

	content, err := config.ReadStatementFile(path)
	if err != nil {
		return err
	}

	var statements []*models.Statement
	if err := json.Unmarshal(content, &statements); err != nil {
		return errors.FormatError(errors.CodeEncodingError, path, err).
			WithSuggestion("provide a JSON array of statement summaries")
	}

	series := growth.BuildSeries(statements)

	format := reporter.OutputFormat(growthOutputFormat)
	if !format.IsValid() {
		return fmt.Errorf("unsupported output format: %s", growthOutputFormat)
	}

	return reporter.WriteSeries(os.Stdout, series, format)
}
