package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncharted-waters/tradedb/internal/model"
)

func city(name, pos string) model.City {
	return model.City{Name: name, Coordinates: ParseCompass(pos)}
}

func TestDistanceKM(t *testing.T) {
	a := model.Coordinates{Lat: 0, Lng: 0}
	b := model.Coordinates{Lat: 0, Lng: 1}
	assert.InDelta(t, 111.2, DistanceKM(a, b), 0.1, "one degree of longitude at the equator")

	assert.Zero(t, DistanceKM(b, b))

	pole := model.Coordinates{Lat: 90, Lng: 0}
	south := model.Coordinates{Lat: -90, Lng: 0}
	assert.InDelta(t, 20015.1, DistanceKM(pole, south), 0.5)
}

func TestNearest(t *testing.T) {
	cities := []model.City{
		city("리스본", "북38 서9"),
		city("세비야", "북37 서6"),
		city("포르투", "북41 서8"),
		city("런던", "북51 동0"),
		city("어딘가", "???"),
		city("미정", ""),
	}

	got, err := Nearest(cities, cities[0], 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "세비야", got[0].City.Name)
	assert.Equal(t, "포르투", got[1].City.Name)
	assert.Equal(t, BandAdjacent, got[0].Band)
	assert.Less(t, got[0].DistanceKM, got[1].DistanceKM)
}

func TestNearest_DefaultsAndExclusions(t *testing.T) {
	cities := []model.City{
		city("리스본", "북38 서9"),
		city("런던", "북51 동0"),
		city("어딘가", "???"),
	}

	got, err := Nearest(cities, cities[0], 0)
	require.NoError(t, err)
	require.Len(t, got, 1, "unlocated cities and the origin are skipped")
	assert.Equal(t, "런던", got[0].City.Name)
	assert.Equal(t, BandRegional, got[0].Band)
}

func TestNearest_OriginWithoutPosition(t *testing.T) {
	_, err := Nearest(nil, city("어딘가", "???"), 3)
	assert.Error(t, err)
}

func TestNearest_EquatorMeridianPort(t *testing.T) {
	cities := []model.City{
		city("기니만", "북0 동0"),
		city("상투메", "북0 동6"),
	}

	got, err := Nearest(cities, cities[1], 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "기니만", got[0].City.Name)

	_, err = Nearest(cities, cities[0], 3)
	assert.NoError(t, err)
}
