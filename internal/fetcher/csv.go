// Package fetcher reads the source spreadsheets (CSV or XLSX exports) into
// memory as cleaned string tables.
package fetcher

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	Delimiter rune // default ','
	Comment   rune // comment character (0 = none)
}

// ReadCSV reads every record from r. A leading byte-order mark is consumed
// (UTF-8, or UTF-16 from "Unicode text" spreadsheet exports) and invalid
// UTF-8 is replaced rather than rejected. Records may have differing field
// counts; shape checks belong to the caller.
func ReadCSV(r io.Reader, opts CSVOptions) ([][]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		records = append(records, record)
	}
}
