package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Embedded(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSource, r.Source)
	assert.Equal(t, "2.0", r.Version)
	assert.Len(t, r.Mapper.Codes(), 21)
	assert.Equal(t, "카리", r.Overrides["베라크루스"])
	assert.Equal(t, "멕시", r.Inferred["베라크루스"])
	assert.Equal(t, "스페", r.Overrides["세우타"])
	assert.Equal(t, "동아", r.Overrides["르완다[12]"])
}

func TestLoad_EmbeddedValuesAreCodes(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	for name, code := range r.Overrides {
		assert.True(t, r.Mapper.IsCode(code), "override %s -> %s", name, code)
	}
	for name, code := range r.Inferred {
		assert.True(t, r.Mapper.IsCode(code), "inferred %s -> %s", name, code)
	}
}

const customYAML = `
version: "test-1"
regions:
  - {code: 영국, name: 영국, display: 북해}
  - {code: 스페, name: 스페인, display: 지중해, aliases: [에스파냐]}
overrides:
  세비야: 에스파냐
  런던: 아틀란티스
inferred:
  브리스틀: 영국
`

func TestLoad_YAMLCanonicalizes(t *testing.T) {
	r, err := Load(writeFile(t, "tables.yaml", customYAML))
	require.NoError(t, err)

	assert.Equal(t, "test-1", r.Version)
	assert.Equal(t, "스페", r.Overrides["세비야"])
	assert.Equal(t, "아틀란티스", r.Overrides["런던"], "unknown cultures are kept as written")
	assert.Equal(t, "영국", r.Inferred["브리스틀"])
}

func TestLoad_TOML(t *testing.T) {
	content := `
version = "toml-1"

[[regions]]
code = "일본"
name = "일본"
display = "동아시아"

[[regions]]
code = "조선"
name = "조선"
display = "동아시아"
aliases = ["한국"]

[overrides]
"한양" = "한국"

[inferred]
"나가사키" = "일본"
`
	r, err := Load(writeFile(t, "tables.toml", content))
	require.NoError(t, err)

	assert.Equal(t, "toml-1", r.Version)
	assert.Equal(t, []string{"일본", "조선"}, r.Mapper.Codes())
	assert.Equal(t, "조선", r.Overrides["한양"])
	assert.Equal(t, "일본", r.Inferred["나가사키"])
}

func TestLoad_NormalizesNames(t *testing.T) {
	nfd := norm.NFD.String("리스본")
	content := "version: \"1\"\nregions:\n  - {code: 포르, name: 포르투갈, display: 지중해}\ninferred:\n  " + nfd + ": 포르투갈\n"

	r, err := Load(writeFile(t, "tables.yaml", content))
	require.NoError(t, err)
	assert.Equal(t, "포르", r.Inferred["리스본"])
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing version", "regions:\n  - {code: 영국, name: 영국, display: 북해}\n", "Version"},
		{"no regions", "version: \"1\"\n", "Regions"},
		{"region without display", "version: \"1\"\nregions:\n  - {code: 영국, name: 영국}\n", "Display"},
		{"code too long", "version: \"1\"\nregions:\n  - {code: 카리브해역, name: 카리브해, display: 신대륙}\n", "Code"},
		{"duplicate code", "version: \"1\"\nregions:\n  - {code: 영국, name: 영국, display: 북해}\n  - {code: 영국, name: 잉글랜드, display: 북해}\n", "duplicate code"},
		{"empty override value", "version: \"1\"\nregions:\n  - {code: 영국, name: 영국, display: 북해}\noverrides:\n  런던: \"\"\n", "Overrides"},
		{"bad yaml", "version: [", "parse tables"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "tables.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read tables")
}
