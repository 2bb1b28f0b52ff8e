// Package parsers turns raw statement exports (CSV and OFX/QFX text) into
// normalized statement drafts.
//
// The package never fails on malformed content: unparsable numbers become
// zero, unparsable dates stay unset, and a document with no usable rows
// still produces a draft with zero aggregates. Callers read the
// transaction count to decide whether a parse was worth keeping.
package parsers

import "strings"

// ParseCSV tokenizes delimited text into rows of string cells with a
// single left-to-right scan and a quote-state flag.
//
// Inside quotes a doubled quote emits one literal quote and any other
// character, commas and newlines included, is taken literally. Outside
// quotes a comma ends the cell and \n, \r or \r\n ends the row. Rows whose
// cells are all blank after trimming are dropped, including a trailing
// blank line at EOF. Rows may have differing cell counts; no column-count
// validation happens here.
func ParseCSV(text string) [][]string {
	var rows [][]string
	var row []string
	var current strings.Builder
	inQuotes := false

	flushRow := func() {
		row = append(row, current.String())
		current.Reset()
		if rowHasValues(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inQuotes {
			if ch == '"' && i+1 < len(text) && text[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			if ch == '"' {
				inQuotes = false
				continue
			}
			current.WriteByte(ch)
			continue
		}

		if ch == '"' {
			inQuotes = true
			continue
		}

		if ch == ',' {
			row = append(row, current.String())
			current.Reset()
			continue
		}

		if ch == '\n' || ch == '\r' {
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			flushRow()
			continue
		}

		current.WriteByte(ch)
	}

	if current.Len() > 0 || len(row) > 0 {
		flushRow()
	}

	return rows
}

func rowHasValues(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
