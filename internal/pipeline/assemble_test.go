package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncharted-waters/tradedb/internal/model"
)

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func assembleInput(t *testing.T) AssembleInput {
	return AssembleInput{
		Header:  Header{Title: "t", Description: "d", Version: "2.0"},
		Sources: model.Sources{Cities: "cities.csv", Prices: "prices.csv"},
		Created: fixedTime,
		Mapper:  testMapper(t),
		Cities: []model.City{
			{Name: "런던", Culture: "영국", CultureName: "영국"},
			{Name: "교토", Culture: "일본", CultureName: "일본", Specialties: []string{"칼"}, Line: 3},
			{Name: "아틀란티스", Line: 4},
		},
		Pivot: &Pivot{
			Categories: []string{"식료품"},
			Items: []model.Item{
				{Name: "밀", Category: "식료품", Prices: map[string]int{"영국": 30}},
				{Name: "소금", Category: "식료품"},
			},
		},
	}
}

func TestAssemble(t *testing.T) {
	report := &model.Report{}
	db, err := Assemble(assembleInput(t), report)
	require.NoError(t, err)

	assert.Equal(t, "t", db.Metadata.Title)
	assert.Equal(t, "2026-03-14T09:26:53.589Z", db.Metadata.Created)
	assert.NotEmpty(t, db.Metadata.ID)
	assert.Len(t, db.Regions, 4)
	assert.Equal(t, model.RegionEntry{Name: "스페인", Display: "지중해"}, db.Regions["스페"])
	assert.Equal(t, []string{"식료품"}, db.Categories)
	require.Len(t, db.Cities, 3)
	assert.NotNil(t, db.Cities[0].Specialties)
	assert.NotNil(t, db.Items[1].Prices)

	unresolved := report.ByKind(model.AnomalyUnresolvedCulture)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "아틀란티스", unresolved[0].Subject)
	assert.Equal(t, 4, unresolved[0].Row)

	unmapped := report.ByKind(model.AnomalyUnmappedRegion)
	require.Len(t, unmapped, 1)
	assert.Equal(t, "교토", unmapped[0].Subject)
	assert.Equal(t, 3, unmapped[0].Row)
}

func TestAssemble_NilPivot(t *testing.T) {
	in := assembleInput(t)
	in.Pivot = nil
	db, err := Assemble(in, &model.Report{})
	require.NoError(t, err)
	assert.NotNil(t, db.Items)
	assert.NotNil(t, db.Categories)
	assert.Empty(t, db.Items)
}

func TestAssemble_UnknownPriceKey(t *testing.T) {
	in := assembleInput(t)
	in.Pivot.Items[0].Prices["잉글랜드"] = 5
	report := &model.Report{}

	_, err := Assemble(in, report)
	require.NoError(t, err)
	keys := report.ByKind(model.AnomalyUnknownPriceKey)
	require.Len(t, keys, 1)
	assert.Equal(t, "밀", keys[0].Subject)
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	in := assembleInput(t)
	_, err := Assemble(in, &model.Report{})
	require.NoError(t, err)
	assert.Nil(t, in.Cities[0].Specialties)
	assert.Nil(t, in.Pivot.Items[1].Prices)
}

func TestDocumentID(t *testing.T) {
	a, err := Assemble(assembleInput(t), &model.Report{})
	require.NoError(t, err)

	later := assembleInput(t)
	later.Created = fixedTime.Add(48 * time.Hour)
	b, err := Assemble(later, &model.Report{})
	require.NoError(t, err)
	assert.Equal(t, a.Metadata.ID, b.Metadata.ID, "creation time does not change the id")

	changed := assembleInput(t)
	changed.Pivot.Items[0].Prices["영국"] = 31
	c, err := Assemble(changed, &model.Report{})
	require.NoError(t, err)
	assert.NotEqual(t, a.Metadata.ID, c.Metadata.ID)
}
