package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncharted-waters/tradedb/internal/culture"
	"github.com/uncharted-waters/tradedb/internal/model"
)

var cityHeader = []string{"도시명", "문화권", "좌표", "발전", "무장", "특산물", "기타", "선술집", "조선소"}

func TestDecodeCities(t *testing.T) {
	tbl := table(cityHeader,
		[]string{"런던", "영국", "북51 동0", "1,200", "300", "양모, 모직물", "수도", "O", "O"},
		[]string{"리스본", "포르", "북38 서9", "", "", "", "", "X", "x"},
	)
	report := &model.Report{}

	recs, err := DecodeCities(tbl, report)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "런던", recs[0].Name)
	assert.Equal(t, "1,200", recs[0].Development)
	assert.Equal(t, 2, recs[0].Line)
	assert.Equal(t, 3, recs[1].Line)
	assert.True(t, report.Empty())
}

func TestDecodeCities_HeaderAliases(t *testing.T) {
	tbl := table([]string{"도시", "문화권", "발전도", "무장도", "특산품", "타입"},
		[]string{"세비야", "스페", "800", "200", "올리브유", "항구"},
	)
	recs, err := DecodeCities(tbl, &model.Report{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "세비야", recs[0].Name)
	assert.Equal(t, "800", recs[0].Development)
	assert.Equal(t, "200", recs[0].Military)
	assert.Equal(t, "올리브유", recs[0].Specialties)
	assert.Equal(t, "항구", recs[0].Type)
}

func TestDecodeCities_NoNameColumn(t *testing.T) {
	_, err := DecodeCities(table([]string{"문화권"}, []string{"영국"}), &model.Report{})
	assert.Error(t, err)
}

func TestDecodeCities_MalformedRows(t *testing.T) {
	tbl := table(cityHeader,
		[]string{"", "영국"},
		[]string{"런던", "영국", "북51 동0", "1", "2", "", "", "O", "O", "extra"},
		[]string{"도버", "영국", "", "", "", "", "", "maybe", ""},
	)
	report := &model.Report{}

	recs, err := DecodeCities(tbl, report)
	require.NoError(t, err)
	require.Len(t, recs, 2, "row without a name is dropped")
	assert.Equal(t, "런던", recs[0].Name)
	assert.Equal(t, "O", recs[0].Shipyard, "long row truncated, not shifted")

	malformed := report.ByKind(model.AnomalyMalformedRow)
	require.Len(t, malformed, 4)
	assert.Equal(t, 2, malformed[0].Row, "short row padded")
	assert.Equal(t, "missing city name", malformed[1].Detail)
	assert.Equal(t, 3, malformed[2].Row, "long row truncated")
	assert.Equal(t, "도버", malformed[3].Subject)
	assert.Contains(t, malformed[3].Detail, "Tavern")
}

func newBuilder(t *testing.T) *CityBuilder {
	return &CityBuilder{
		Resolver: culture.NewResolver(
			map[string]string{"하바나": "카리", "세우타": "스페"},
			map[string]string{"브리스틀": "영국"},
		),
		Mapper: testMapper(t),
	}
}

func TestCityFromRecord(t *testing.T) {
	b := newBuilder(t)
	report := &model.Report{}

	c := b.CityFromRecord(CityRecord{
		Line: 2, Name: "런던", Culture: "잉글랜드", Coordinates: "북51 동0",
		Development: "1,200", Military: " 300 ", Specialties: "양모(고급), 모직물",
		Type: "수도", Tavern: "O", Shipyard: "x",
	}, report)

	assert.Equal(t, "영국", c.Culture, "alias canonicalized to code")
	assert.Equal(t, "영국", c.CultureName)
	assert.Equal(t, model.Coordinates{Lat: 51, Lng: 0, Display: "북51 동0"}, c.Coordinates)
	assert.Equal(t, 1200, c.Development)
	assert.Equal(t, 300, c.Military)
	assert.Equal(t, []string{"양모고급", "모직물"}, c.Specialties)
	assert.True(t, c.HasTavern)
	assert.False(t, c.HasShipyard)
	assert.True(t, report.Empty())
}

func TestCityFromRecord_OverrideWinsOverRaw(t *testing.T) {
	b := newBuilder(t)
	for _, raw := range []string{"", "스페", "영국", "아무거나"} {
		c := b.CityFromRecord(CityRecord{Name: "하바나", Culture: raw}, &model.Report{})
		assert.Equal(t, "카리", c.Culture, "raw %q", raw)
		assert.Equal(t, "카리브해", c.CultureName)
	}
}

func TestCityFromRecord_InferredAndRaw(t *testing.T) {
	b := newBuilder(t)

	c := b.CityFromRecord(CityRecord{Name: "브리스틀"}, &model.Report{})
	assert.Equal(t, "영국", c.Culture)

	c = b.CityFromRecord(CityRecord{Name: "마드리드", Culture: "에스파냐"}, &model.Report{})
	assert.Equal(t, "스페", c.Culture)
	c = b.CityFromRecord(CityRecord{Name: "톨레도", Culture: "스페인"}, &model.Report{})
	assert.Equal(t, "스페", c.Culture)
}

func TestCityFromRecord_UnmappedAndUnresolved(t *testing.T) {
	b := newBuilder(t)

	c := b.CityFromRecord(CityRecord{Name: "교토", Culture: "일본"}, &model.Report{})
	assert.Equal(t, "일본", c.Culture, "unmapped label kept verbatim")
	assert.Equal(t, "일본", c.CultureName)

	c = b.CityFromRecord(CityRecord{Name: "아틀란티스"}, &model.Report{})
	assert.Empty(t, c.Culture)
	assert.Empty(t, c.CultureName)
}

func TestCityFromRecord_BadCounts(t *testing.T) {
	b := newBuilder(t)
	report := &model.Report{}

	c := b.CityFromRecord(CityRecord{Line: 7, Name: "런던", Development: "많음", Military: "-5"}, report)
	assert.Zero(t, c.Development)
	assert.Zero(t, c.Military)

	malformed := report.ByKind(model.AnomalyMalformedRow)
	require.Len(t, malformed, 2)
	assert.Equal(t, 7, malformed[0].Row)
	assert.Contains(t, malformed[0].Detail, "development")
	assert.Contains(t, malformed[1].Detail, "military")
}

func TestBuild_DuplicateCityReplacesInPlace(t *testing.T) {
	b := newBuilder(t)
	report := &model.Report{}

	cities := b.Build([]CityRecord{
		{Line: 2, Name: "런던", Development: "100"},
		{Line: 3, Name: "리스본"},
		{Line: 4, Name: "런던", Development: "200"},
	}, report)

	require.Len(t, cities, 2)
	assert.Equal(t, "런던", cities[0].Name)
	assert.Equal(t, 200, cities[0].Development)
	assert.Equal(t, "리스본", cities[1].Name)

	dups := report.ByKind(model.AnomalyDuplicateCity)
	require.Len(t, dups, 1)
	assert.Equal(t, 4, dups[0].Row)
	assert.Equal(t, "replaces row 2", dups[0].Detail)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"", 0, true},
		{"  ", 0, true},
		{"42", 42, true},
		{"1,234", 1234, true},
		{"1 234", 1234, true},
		{"-1", 0, false},
		{"12a", 0, false},
		{"3.5", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCount(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSplitSpecialties(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"양모", []string{"양모"}},
		{"양모, 모직물", []string{"양모", "모직물"}},
		{"후추 육두구", []string{"후추", "육두구"}},
		{"(금),은、,구리", []string{"금", "은", "구리"}},
		{"()", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SplitSpecialties(tt.in)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalHeader(t *testing.T) {
	got := canonicalHeader([]string{"도시", "도시명", "", "발전도"}, cityHeaderAliases)
	assert.Equal(t, []string{"도시명", "#1", "#2", "발전"}, got)
}
