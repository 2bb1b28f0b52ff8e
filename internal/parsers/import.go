package parsers

import (
	"statement-ingestion-service/internal/models"
	"statement-ingestion-service/internal/templates"
	"statement-ingestion-service/pkg/errors"
	"statement-ingestion-service/pkg/logger"
)

// ImportOutcome is the full result of ingesting one statement file
type ImportOutcome struct {
	Result models.ImportResult `json:"result"`
	File   models.FileDraft    `json:"file"`
	// Mapping holds the resolved column mapping for CSV imports; nil for
	// OFX.
	Mapping models.Mapping `json:"mapping,omitempty"`
	// Detection is set when a registry template matched the CSV headers.
	// Callers may use it to override the draft's source name and type;
	// the draft itself always carries sourceType "import".
	Detection *templates.Detection `json:"detection,omitempty"`
}

// ImportDocument ingests one statement file end to end: sniff the format,
// tokenize (CSV only), resolve a column mapping from the registry or by
// generic inference, reconstruct transactions and aggregate the period.
//
// Malformed content is not an error: the pipeline degrades to zero
// aggregates and the outcome's parse status reports "partial". The only
// error here is a format nothing can ingest.
func (ing *Ingestor) ImportDocument(filename string, content []byte, currency, currencySymbol string, registry *templates.Registry) (*ImportOutcome, error) {
	method := DetectFormat(filename, content)

	file := models.FileDraft{
		FileName:    filename,
		FileSize:    int64(len(content)),
		ParseMethod: method,
	}

	switch method {
	case models.ParseMethodCSV:
		outcome := ing.importCSV(string(content), currency, currencySymbol, registry)
		outcome.File = file
		outcome.File.ParseStatus = models.DeriveParseStatus(outcome.Result.TransactionCount)
		return outcome, nil

	case models.ParseMethodOFX, models.ParseMethodQFX:
		result := ing.BuildStatementFromOFX(string(content), currency, currencySymbol)
		file.ParseStatus = models.DeriveParseStatus(result.TransactionCount)
		return &ImportOutcome{Result: result, File: file}, nil

	default:
		return nil, errors.FormatError(errors.CodeUnsupportedFormat, filename, nil)
	}
}

func (ing *Ingestor) importCSV(text, currency, currencySymbol string, registry *templates.Registry) *ImportOutcome {
	rows := ParseCSV(text)
	if len(rows) == 0 {
		ing.log.Debug("CSV document has no rows")
		return &ImportOutcome{
			Result:  ing.BuildStatementFromCSV(nil, nil, models.Mapping{}, currency, currencySymbol),
			Mapping: models.Mapping{},
		}
	}

	headers := rows[0]
	data := rows[1:]

	var mapping models.Mapping
	var detection *templates.Detection
	if registry != nil {
		detection = registry.Detect(headers)
	}
	if detection != nil {
		mapping = detection.Mapping
		ing.log.WithFields(logger.Fields{
			"template": detection.Template.ID,
			"matched":  detection.Matched,
			"total":    detection.Total,
		}).Debug("Detected statement template")
	} else {
		mapping = templates.InferMapping(headers)
		ing.log.WithField("mapped_fields", len(mapping)).Debug("Using generic column inference")
	}

	return &ImportOutcome{
		Result:    ing.BuildStatementFromCSV(headers, data, mapping, currency, currencySymbol),
		Mapping:   mapping,
		Detection: detection,
	}
}
