package pipeline

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/uncharted-waters/tradedb/internal/culture"
	"github.com/uncharted-waters/tradedb/internal/fetcher"
	"github.com/uncharted-waters/tradedb/internal/geo"
	"github.com/uncharted-waters/tradedb/internal/model"
	"github.com/uncharted-waters/tradedb/internal/region"
)

// City table column names after header cleaning.
const (
	ColCityName    = "도시명"
	ColCulture     = "문화권"
	ColCoordinates = "좌표"
	ColDevelopment = "발전"
	ColMilitary    = "무장"
	ColSpecialties = "특산물"
	ColType        = "기타"
	ColTavern      = "선술집"
	ColShipyard    = "조선소"
)

// cityHeaderAliases maps alternative header spellings seen in older exports
// to the canonical column names.
var cityHeaderAliases = map[string]string{
	"발전도": ColDevelopment,
	"무장도": ColMilitary,
	"특산품": ColSpecialties,
	"타입":  ColType,
	"도시":  ColCityName,
}

// CityRecord is the typed schema of one city-table row. Numeric and flag
// columns stay strings here; CityFromRecord applies the defaulting rules.
type CityRecord struct {
	Line        int    `csv:"-"`
	Name        string `csv:"도시명" validate:"required"`
	Culture     string `csv:"문화권"`
	Coordinates string `csv:"좌표"`
	Development string `csv:"발전"`
	Military    string `csv:"무장"`
	Specialties string `csv:"특산물"`
	Type        string `csv:"기타"`
	Tavern      string `csv:"선술집" validate:"omitempty,oneof=O o X x ○ ×"`
	Shipyard    string `csv:"조선소" validate:"omitempty,oneof=O o X x ○ ×"`
}

// DecodeCities decodes the city table into typed records. Rows whose field
// count differs from the header are padded or truncated; rows without a city
// name are dropped. Both are recorded as malformed rows. A table without a
// city-name column is rejected outright.
func DecodeCities(t *fetcher.Table, report *model.Report) ([]CityRecord, error) {
	header := canonicalHeader(t.Header, cityHeaderAliases)
	if indexOf(header, ColCityName) < 0 {
		return nil, eris.Errorf("pipeline: city table %s has no %q column", t.Source, ColCityName)
	}

	rr := &rowReader{rows: t.Rows, width: len(header), source: "cities", report: report}
	dec, err := csvutil.NewDecoder(rr, header...)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: city decoder")
	}

	validate := validator.New()
	var out []CityRecord
	for {
		var rec CityRecord
		err := dec.Decode(&rec)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "pipeline: decode city row %d", rr.line)
		}
		rec.Line = rr.line

		if err := validate.Struct(&rec); err != nil {
			verrs, ok := err.(validator.ValidationErrors)
			if !ok {
				return nil, eris.Wrap(err, "pipeline: validate city row")
			}
			skip := false
			for _, fe := range verrs {
				if fe.StructField() == "Name" {
					skip = true
					report.Add(model.AnomalyMalformedRow, "cities", rec.Line, "missing city name")
					continue
				}
				report.Add(model.AnomalyMalformedRow, rec.Name, rec.Line, fe.StructField()+": unrecognized value "+strconv.Quote(fe.Value().(string)))
			}
			if skip {
				continue
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// CityBuilder turns decoded rows into City entities.
type CityBuilder struct {
	Resolver *culture.Resolver
	Mapper   *region.Mapper
}

// Build resolves and converts every record. A repeated city name replaces the
// earlier city in place, so output order follows first appearance.
func (b *CityBuilder) Build(records []CityRecord, report *model.Report) []model.City {
	cities := make([]model.City, 0, len(records))
	lines := make([]int, 0, len(records))
	index := make(map[string]int, len(records))

	for _, rec := range records {
		c := b.CityFromRecord(rec, report)
		if i, dup := index[c.Name]; dup {
			report.Add(model.AnomalyDuplicateCity, c.Name, rec.Line, "replaces row "+strconv.Itoa(lines[i]))
			cities[i], lines[i] = c, rec.Line
			continue
		}
		index[c.Name] = len(cities)
		cities = append(cities, c)
		lines = append(lines, rec.Line)
	}
	return cities
}

// CityFromRecord converts one record, applying culture resolution, region
// canonicalization, coordinate parsing, and numeric defaulting.
func (b *CityBuilder) CityFromRecord(rec CityRecord, report *model.Report) model.City {
	res := b.Resolver.Resolve(rec.Name, rec.Culture)

	c := model.City{
		Name:        rec.Name,
		Coordinates: geo.ParseCompass(rec.Coordinates),
		Specialties: SplitSpecialties(rec.Specialties),
		Type:        rec.Type,
		HasTavern:   parseFlag(rec.Tavern),
		HasShipyard: parseFlag(rec.Shipyard),
		Line:        rec.Line,
	}

	if res.Resolved() {
		if r, ok := b.Mapper.Lookup(res.Label); ok {
			c.Culture, c.CultureName = r.Code, r.Name
		} else {
			c.Culture, c.CultureName = res.Label, res.Label
		}
	}

	var ok bool
	if c.Development, ok = ParseCount(rec.Development); !ok {
		report.Add(model.AnomalyMalformedRow, rec.Name, rec.Line, "development: "+strconv.Quote(rec.Development)+" is not a count")
	}
	if c.Military, ok = ParseCount(rec.Military); !ok {
		report.Add(model.AnomalyMalformedRow, rec.Name, rec.Line, "military: "+strconv.Quote(rec.Military)+" is not a count")
	}
	return c
}

// ParseCount parses a non-negative integer that may contain thousands
// separators. Blank input is 0. Anything else that does not parse, or is
// negative, yields 0 and false.
func ParseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(stripSeparators(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// SplitSpecialties splits a specialties cell on commas and whitespace and
// strips parentheses from each token. The result is never nil.
func SplitSpecialties(s string) []string {
	out := []string{}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '、' || unicode.IsSpace(r)
	})
	for _, f := range fields {
		f = strings.NewReplacer("(", "", ")", "").Replace(f)
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseFlag(s string) bool {
	switch strings.TrimSpace(s) {
	case "O", "o", "○":
		return true
	}
	return false
}

func stripSeparators(s string) string {
	return strings.NewReplacer(",", "", " ", "").Replace(s)
}

// canonicalHeader rewrites header aliases and makes names unique so the
// decoder sees each canonical column once. Later duplicates are renamed and
// thereby ignored.
func canonicalHeader(header []string, aliases map[string]string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if c, ok := aliases[h]; ok {
			h = c
		}
		if h == "" || seen[h] {
			h = "#" + strconv.Itoa(i)
		}
		seen[h] = true
		out[i] = h
	}
	return out
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// rowReader feeds table rows to csvutil, fixing up the field count so every
// record matches the header width.
type rowReader struct {
	rows   []fetcher.Row
	width  int
	next   int
	line   int
	source string
	report *model.Report
}

func (r *rowReader) Read() ([]string, error) {
	if r.next >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.next]
	r.next++
	r.line = row.Line

	cells := row.Cells
	if len(cells) != r.width {
		r.report.Add(model.AnomalyMalformedRow, r.source, row.Line,
			"expected "+strconv.Itoa(r.width)+" columns, got "+strconv.Itoa(len(cells)))
		fixed := make([]string, r.width)
		copy(fixed, cells)
		cells = fixed
	}
	return cells, nil
}
