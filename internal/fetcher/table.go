package fetcher

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/uncharted-waters/tradedb/internal/model"
)

// Options selects how a source table is read.
type Options struct {
	Sheet      string // XLSX sheet name; empty uses SheetIndex
	SheetIndex int
	Delimiter  rune // CSV only; .tsv files default to tab
	// HTTP downloads http(s) sources; nil uses a fetcher with defaults.
	HTTP *HTTPFetcher
}

// Row is one non-blank data row. Line is its 1-based position in the source,
// counting the header as line 1.
type Row struct {
	Line  int
	Cells []string
}

// Get returns cell i, or "" when the row is too short.
func (r Row) Get(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Table is a source spreadsheet held in memory.
type Table struct {
	Source string
	Header []string
	Rows   []Row
}

// Column returns the index of the named header, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadTable reads a .csv, .tsv, or .xlsx file, or downloads one from an
// http(s) URL first. Header cells lose every
// whitespace character and byte-order mark; data cells are trimmed. All text
// is NFC-normalized so names compare byte-for-byte against the lookup tables
// regardless of the exporting platform. Blank rows are dropped.
//
// Any failure to open or decode the file is reported as model.ErrMissingSource.
func ReadTable(ctx context.Context, path string, opts Options) (*Table, error) {
	records, err := readRecords(ctx, path, opts)
	if err != nil {
		return nil, eris.Wrapf(model.ErrMissingSource, "fetcher: %s: %v", path, err)
	}
	if len(records) == 0 {
		return nil, eris.Wrapf(model.ErrMissingSource, "fetcher: %s: no header row", path)
	}

	t := &Table{
		Source: path,
		Header: make([]string, len(records[0])),
	}
	for i, h := range records[0] {
		t.Header[i] = CleanHeader(h)
	}

	skipped := 0
	for i, rec := range records[1:] {
		cells := make([]string, len(rec))
		blank := true
		for j, c := range rec {
			cells[j] = CleanCell(c)
			if cells[j] != "" {
				blank = false
			}
		}
		if blank {
			skipped++
			continue
		}
		t.Rows = append(t.Rows, Row{Line: i + 2, Cells: cells})
	}

	zap.L().Debug("fetcher: read table",
		zap.String("path", path),
		zap.Int("columns", len(t.Header)),
		zap.Int("rows", len(t.Rows)),
		zap.Int("blank_rows", skipped),
	)
	return t, nil
}

func readRecords(ctx context.Context, path string, opts Options) ([][]string, error) {
	if IsRemote(path) {
		return readRemote(ctx, path, opts)
	}
	return readLocal(path, strings.ToLower(filepath.Ext(path)), opts)
}

// readRemote downloads the table into a scratch directory and parses it
// there, since XLSX needs random access.
func readRemote(ctx context.Context, rawURL string, opts Options) ([][]string, error) {
	f := opts.HTTP
	if f == nil {
		f = NewHTTPFetcher(HTTPOptions{})
	}
	dir, err := os.MkdirTemp("", "tradedb-source-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	ext := remoteExt(rawURL)
	local := filepath.Join(dir, "table"+ext)
	n, err := f.DownloadToFile(ctx, rawURL, local)
	if err != nil {
		return nil, err
	}
	zap.L().Info("fetcher: downloaded table", zap.String("url", rawURL), zap.Int64("bytes", n))
	return readLocal(local, ext, opts)
}

func readLocal(path, ext string, opts Options) ([][]string, error) {
	if ext == ".xlsx" {
		return ReadXLSX(path, XLSXOptions{SheetName: opts.Sheet, SheetIndex: opts.SheetIndex})
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	delim := opts.Delimiter
	if delim == 0 && ext == ".tsv" {
		delim = '\t'
	}
	return ReadCSV(f, CSVOptions{Delimiter: delim})
}

// CleanHeader strips byte-order marks and all whitespace from a header cell.
func CleanHeader(s string) string {
	s = strings.ReplaceAll(s, "\uFEFF", "")
	return norm.NFC.String(strings.Join(strings.Fields(s), ""))
}

// CleanCell trims a data cell and normalizes it to NFC.
func CleanCell(s string) string {
	return norm.NFC.String(strings.TrimSpace(strings.ReplaceAll(s, "\uFEFF", "")))
}

// SourceName is the short name recorded for a source: the file name, or the
// last path segment of a URL.
func SourceName(p string) string {
	if IsRemote(p) {
		if u, err := url.Parse(p); err == nil && u.Path != "" && u.Path != "/" {
			return path.Base(u.Path)
		}
		return p
	}
	return filepath.Base(p)
}
