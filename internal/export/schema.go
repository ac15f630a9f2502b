package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaURL identifies the document schema.
const SchemaURL = "https://github.com/uncharted-waters/tradedb/tradedb.schema.json"

//go:embed tradedb.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(SchemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, eris.Wrap(err, "export: add schema resource")
	}
	s, err := c.Compile(SchemaURL)
	if err != nil {
		return nil, eris.Wrap(err, "export: compile schema")
	}
	return s, nil
})

// Schema returns the embedded document schema.
func Schema() []byte {
	return schemaJSON
}

// Validate checks an encoded document against the schema.
func Validate(doc []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return eris.Wrap(err, "export: decode document")
	}
	if err := s.Validate(v); err != nil {
		return eris.Wrap(err, "export: document does not match schema")
	}
	return nil
}
