// Package config assembles the pieces a command invocation needs from
// flags, environment and config file values.
package config

import (
	"os"

	"github.com/spf13/viper"

	"statement-ingestion-service/internal/templates"
	"statement-ingestion-service/pkg/errors"
)

const (
	// DefaultCurrency is used when the caller supplies no currency code
	DefaultCurrency = "INR"
	// DefaultCurrencySymbol matches DefaultCurrency
	DefaultCurrencySymbol = "₹"
)

// LoadRegistry builds the template registry for a command invocation:
// built-in profiles plus the optional user template file from the
// --templates-file flag or STATEMENTS_TEMPLATES_FILE.
func LoadRegistry(templatesFile string) (*templates.Registry, error) {
	if templatesFile == "" {
		templatesFile = viper.GetString("templates-file")
	}
	return templates.LoadRegistry(templatesFile)
}

// Currency resolves the currency code and symbol for an import, preferring
// explicit flag values over configuration over defaults.
func Currency(flagCurrency, flagSymbol string) (string, string) {
	currency := flagCurrency
	if currency == "" {
		currency = viper.GetString("currency")
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	symbol := flagSymbol
	if symbol == "" {
		symbol = viper.GetString("currency-symbol")
	}
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}

	return currency, symbol
}

// ReadStatementFile loads a statement export, mapping OS errors to the
// structured file error codes the CLI reports.
func ReadStatementFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	return content, nil
}
