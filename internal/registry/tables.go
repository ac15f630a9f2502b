// Package registry loads the hand-maintained lookup tables: the region table,
// manual culture overrides, and name-based culture inference.
package registry

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/uncharted-waters/tradedb/internal/model"
	"github.com/uncharted-waters/tradedb/internal/region"
)

//go:embed tables.yaml
var defaultTables []byte

// DefaultSource names the embedded tables in logs and metadata.
const DefaultSource = "embedded:tables.yaml"

// Tables is the on-disk form of the lookup tables.
type Tables struct {
	Version   string            `yaml:"version" toml:"version" validate:"required"`
	Regions   []model.Region    `yaml:"regions" toml:"regions" validate:"required,min=1,dive"`
	Overrides map[string]string `yaml:"overrides" toml:"overrides" validate:"dive,keys,required,endkeys,required"`
	Inferred  map[string]string `yaml:"inferred" toml:"inferred" validate:"dive,keys,required,endkeys,required"`
}

// Registry is the loaded, validated lookup tables with culture values
// canonicalized to region codes where the region table knows them.
type Registry struct {
	Source    string
	Version   string
	Mapper    *region.Mapper
	Overrides map[string]string
	Inferred  map[string]string
}

// Load reads tables from path, or the embedded defaults when path is empty.
// Files ending in .toml are decoded as TOML, anything else as YAML.
func Load(path string) (*Registry, error) {
	if path == "" {
		t, err := decodeYAML(defaultTables)
		if err != nil {
			return nil, eris.Wrap(err, "registry: embedded tables")
		}
		return build(DefaultSource, t)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: read tables %s", path)
	}

	var t *Tables
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		t, err = decodeTOML(data)
	default:
		t, err = decodeYAML(data)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "registry: parse tables %s", path)
	}
	return build(path, t)
}

func decodeYAML(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrap(err, "registry: decode yaml")
	}
	return &t, nil
}

func decodeTOML(data []byte) (*Tables, error) {
	var t Tables
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, eris.Wrap(err, "registry: decode toml")
	}
	return &t, nil
}

func build(source string, t *Tables) (*Registry, error) {
	if err := validator.New().Struct(t); err != nil {
		return nil, eris.Wrapf(formatValidation(err), "registry: validate %s", source)
	}

	m, err := region.New(t.Regions)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: region table %s", source)
	}

	r := &Registry{
		Source:    source,
		Version:   t.Version,
		Mapper:    m,
		Overrides: canonicalize(m, t.Overrides, "override"),
		Inferred:  canonicalize(m, t.Inferred, "inferred"),
	}

	zap.L().Debug("registry: loaded tables",
		zap.String("source", source),
		zap.String("version", t.Version),
		zap.Int("regions", len(t.Regions)),
		zap.Int("overrides", len(r.Overrides)),
		zap.Int("inferred", len(r.Inferred)),
	)
	return r, nil
}

// canonicalize NFC-normalizes city names and rewrites culture values to region
// codes. Values the region table does not know are kept as written; they
// surface later as unmapped-region anomalies for the cities that use them.
func canonicalize(m *region.Mapper, in map[string]string, table string) map[string]string {
	out := make(map[string]string, len(in))
	for name, culture := range in {
		name = norm.NFC.String(strings.TrimSpace(name))
		culture = norm.NFC.String(strings.TrimSpace(culture))
		if code := m.Canonical(culture); code != "" {
			culture = code
		} else {
			zap.L().Debug("registry: culture value has no region",
				zap.String("table", table),
				zap.String("city", name),
				zap.String("culture", culture),
			)
		}
		out[name] = culture
	}
	return out
}

// formatValidation flattens validator errors into one readable error.
func formatValidation(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Namespace()+" failed "+e.Tag())
	}
	return eris.New(strings.Join(msgs, "; "))
}
