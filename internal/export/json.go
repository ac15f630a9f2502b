package export

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/uncharted-waters/tradedb/internal/model"
)

// EncodeDatabase renders the document the way the viewer expects it: two
// space indent, Hangul and punctuation unescaped, trailing newline. Map keys
// come out sorted, so equal documents encode to equal bytes.
func EncodeDatabase(db *model.TradeDatabase) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(db); err != nil {
		return nil, eris.Wrap(err, "export: encode database")
	}
	return buf.Bytes(), nil
}

// WriteDatabase encodes and schema-checks the document before writing it.
func WriteDatabase(w io.Writer, db *model.TradeDatabase) error {
	data, err := EncodeDatabase(db)
	if err != nil {
		return err
	}
	if err := Validate(data); err != nil {
		return err
	}
	_, err = w.Write(data)
	return eris.Wrap(err, "export: write database")
}

// JSON is the primary document artifact.
func JSON(path string, db *model.TradeDatabase) Artifact {
	return &fileArtifact{
		name:   "json",
		path:   path,
		render: func(w io.Writer) error { return WriteDatabase(w, db) },
	}
}

// Report writes the anomaly list as JSON.
func Report(path string, r *model.Report) Artifact {
	return &fileArtifact{
		name: "report",
		path: path,
		render: func(w io.Writer) error {
			out := model.Report{Anomalies: []model.Anomaly{}}
			if r != nil {
				out.Anomalies = append(out.Anomalies, r.Anomalies...)
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return eris.Wrap(enc.Encode(&out), "export: encode report")
		},
	}
}
