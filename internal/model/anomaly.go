package model

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	// ErrMissingSource marks a required input table that could not be read.
	ErrMissingSource = eris.New("missing source file")
	// ErrOutputWrite marks an artifact that could not be written or committed.
	ErrOutputWrite = eris.New("output write failure")
)

// AnomalyKind classifies a data-quality problem found during generation.
type AnomalyKind string

const (
	AnomalyMalformedRow      AnomalyKind = "malformed_row"
	AnomalyUnresolvedCulture AnomalyKind = "unresolved_culture"
	AnomalyUnmappedRegion    AnomalyKind = "unmapped_region"
	AnomalyUncategorizedItem AnomalyKind = "uncategorized_item"
	AnomalyDuplicateCity     AnomalyKind = "duplicate_city"
	AnomalyDuplicateItem     AnomalyKind = "duplicate_item"
	AnomalyUnknownPriceKey   AnomalyKind = "unknown_price_key"
)

// AnomalyKinds lists every kind in report order.
func AnomalyKinds() []AnomalyKind {
	return []AnomalyKind{
		AnomalyUnresolvedCulture,
		AnomalyUnmappedRegion,
		AnomalyUncategorizedItem,
		AnomalyDuplicateCity,
		AnomalyDuplicateItem,
		AnomalyUnknownPriceKey,
		AnomalyMalformedRow,
	}
}

// Anomaly is one recoverable data-quality problem. Row is the 1-based data
// row in the source table, or 0 when not tied to a row.
type Anomaly struct {
	Kind    AnomalyKind `json:"kind"`
	Subject string      `json:"subject"`
	Detail  string      `json:"detail,omitempty"`
	Row     int         `json:"row,omitempty"`
}

func (a Anomaly) String() string {
	s := fmt.Sprintf("%s: %s", a.Kind, a.Subject)
	if a.Row > 0 {
		s += fmt.Sprintf(" (row %d)", a.Row)
	}
	if a.Detail != "" {
		s += ": " + a.Detail
	}
	return s
}

// Report collects anomalies in the order they were found.
type Report struct {
	Anomalies []Anomaly `json:"anomalies"`
}

// Add records an anomaly.
func (r *Report) Add(kind AnomalyKind, subject string, row int, detail string) {
	r.Anomalies = append(r.Anomalies, Anomaly{Kind: kind, Subject: subject, Row: row, Detail: detail})
}

// Merge appends every anomaly of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Anomalies = append(r.Anomalies, other.Anomalies...)
}

// Len returns the number of anomalies.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Anomalies)
}

// Empty reports whether nothing was recorded.
func (r *Report) Empty() bool { return r.Len() == 0 }

// ByKind returns the anomalies of one kind in first-seen order.
func (r *Report) ByKind(kind AnomalyKind) []Anomaly {
	var out []Anomaly
	for _, a := range r.Anomalies {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// Subjects returns the subjects of one kind, deduplicated, in first-seen order.
func (r *Report) Subjects(kind AnomalyKind) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range r.ByKind(kind) {
		if seen[a.Subject] {
			continue
		}
		seen[a.Subject] = true
		out = append(out, a.Subject)
	}
	return out
}
