package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statement-ingestion-service/cmd/statements/config"
	"statement-ingestion-service/internal/models"
	"statement-ingestion-service/internal/parsers"
	"statement-ingestion-service/internal/templates"
	"statement-ingestion-service/pkg/errors"
)

var templatesOutputFormat string

// templatesCmd groups the template registry subcommands
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect the statement template registry",
}

// templatesListCmd represents the templates list command
var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available statement templates",
	RunE:  runTemplatesList,
}

// templatesDetectCmd represents the templates detect command
var templatesDetectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Detect which template matches a CSV export",
	Long: `Detect tokenizes the first row of a CSV export and matches it against
the template registry. The best match is the template with the most alias
hits among those that clear the minimum-columns gate; when nothing clears
the gate the generic keyword inference is shown instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplatesDetect,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesDetectCmd)

	templatesCmd.PersistentFlags().StringVarP(&templatesOutputFormat, "output-format", "f", "console", "output format: console, json")
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry(templatesFile)
	if err != nil {
		return err
	}

	if templatesOutputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(registry.Templates())
	}

	for _, t := range registry.Templates() {
		fmt.Printf("%-8s %-20s %s\n", t.ID, t.Name, t.SourceType)
	}
	return nil
}

func runTemplatesDetect(cmd *cobra.Command, args []string) error {
	path := args[0]

	content, err := config.ReadStatementFile(path)
	if err != nil {
		return err
	}

	rows := parsers.ParseCSV(string(content))
	if len(rows) == 0 {
		return errors.FormatError(errors.CodeEmptyDocument, path, nil)
	}
	headers := rows[0]

	registry, err := config.LoadRegistry(templatesFile)
	if err != nil {
		return err
	}

	detection := registry.Detect(headers)

	if templatesOutputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if detection != nil {
			return encoder.Encode(detection)
		}
		return encoder.Encode(map[string]interface{}{
			"template": nil,
			"mapping":  templates.InferMapping(headers),
		})
	}

	if detection == nil {
		fmt.Println("No template cleared the minimum-columns gate; generic inference:")
		printMapping(templates.InferMapping(headers))
		return nil
	}

	fmt.Printf("Template: %s (%s), %d/%d columns matched\n",
		detection.Template.Name, detection.Template.ID, detection.Matched, detection.Total)
	printMapping(detection.Mapping)
	return nil
}

func printMapping(mapping models.Mapping) {
	for _, field := range models.Fields() {
		if header := mapping.Header(field); header != "" {
			fmt.Printf("  %-12s <- %q\n", field, header)
		}
	}
	if !mapping.HasMinimumColumns() {
		fmt.Println("  (mapping does not clear the minimum-columns gate)")
	}
}
