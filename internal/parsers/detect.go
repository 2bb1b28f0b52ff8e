package parsers

import (
	"path/filepath"
	"strings"

	"statement-ingestion-service/internal/models"
)

// DetectFormat sniffs which ingestion path should handle a file. The
// extension decides when it is recognizable; otherwise the first bytes are
// checked for OFX markers (both the v1 SGML and v2 XML headers) and, as a
// last resort, for something that reads like delimited text.
func DetectFormat(filename string, content []byte) models.ParseMethod {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return models.ParseMethodCSV
	case ".ofx":
		return models.ParseMethodOFX
	case ".qfx":
		return models.ParseMethodQFX
	}

	head := content
	if len(head) > 1024 {
		head = head[:1024]
	}
	upper := strings.ToUpper(string(head))

	if strings.Contains(upper, "OFXHEADER") ||
		strings.Contains(upper, "<?OFX") ||
		strings.Contains(upper, "<OFX>") {
		return models.ParseMethodOFX
	}

	if strings.Contains(upper, ",") {
		return models.ParseMethodCSV
	}

	return models.ParseMethodUnknown
}
