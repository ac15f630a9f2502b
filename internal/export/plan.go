package export

import (
	"github.com/uncharted-waters/tradedb/internal/model"
)

// Targets lists output paths. Only JSON is required; empty paths are skipped.
type Targets struct {
	JSON    string
	GeoJSON string
	Archive string
	SQLite  string
	Report  string
}

// Plan returns the artifacts to commit for a generated document. The JSON
// document comes last so Commit only replaces it once every optional
// artifact is in place.
func Plan(t Targets, db *model.TradeDatabase, report *model.Report) []Artifact {
	var artifacts []Artifact
	if t.GeoJSON != "" {
		artifacts = append(artifacts, GeoJSON(t.GeoJSON, db))
	}
	if t.Archive != "" {
		artifacts = append(artifacts, Archive(t.Archive, db))
	}
	if t.SQLite != "" {
		artifacts = append(artifacts, SQLite(t.SQLite, db))
	}
	if t.Report != "" {
		artifacts = append(artifacts, Report(t.Report, report))
	}
	return append(artifacts, JSON(t.JSON, db))
}
