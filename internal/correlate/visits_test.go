package correlate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poinet/profiler-backend-go/internal/models"
)

var day = time.Date(2016, 11, 11, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func TestBusinessVisitsDistinctHourRequirement(t *testing.T) {
	cfg := DefaultConfig()

	// Business B sits at the trail location; business C is visited four
	// times but always inside a single hour bucket.
	bizB := models.Business{ID: "B", Name: "B SHOP", Lat: 39.2900, Lon: -76.6100}
	bizC := models.Business{ID: "C", Name: "C SHOP", Lat: 39.4000, Lon: -76.5000}

	trail := []models.TrailPing{
		{TS: at(8, 0), Lat: 39.2900, Lon: -76.6100},
		{TS: at(8, 30), Lat: 39.2901, Lon: -76.6100},
		{TS: at(9, 15), Lat: 39.2900, Lon: -76.6101},
		{TS: at(9, 45), Lat: 39.2900, Lon: -76.6100},
		// four pings at C, all inside hour 14
		{TS: at(14, 1), Lat: 39.4000, Lon: -76.5000},
		{TS: at(14, 12), Lat: 39.4000, Lon: -76.5000},
		{TS: at(14, 25), Lat: 39.4000, Lon: -76.5000},
		{TS: at(14, 58), Lat: 39.4000, Lon: -76.5000},
	}

	out := BusinessVisits(cfg, trail, []models.Business{bizB, bizC})
	require.Len(t, out, 1)
	v := out[0]
	assert.Equal(t, "B", v.ID)
	assert.Equal(t, 4, v.Pings)
	assert.Equal(t, 2, v.VisitHours)
	assert.Equal(t, at(8, 0), v.FirstTS)
	assert.Equal(t, at(9, 45), v.LastTS)
	assert.Equal(t, ViaTrailProx, v.Via)
}

func TestBusinessVisitsEmptyTrail(t *testing.T) {
	out := BusinessVisits(DefaultConfig(), nil, sampleBusinesses())
	assert.Empty(t, out)
}

func TestBusinessVisitsOrderingAndLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VisitLimit = 2

	// Three co-located businesses all aggregate the same pings; the id
	// breaks the tie deterministically.
	biz := []models.Business{
		{ID: "z", Lat: 39.29, Lon: -76.61},
		{ID: "a", Lat: 39.29, Lon: -76.61},
		{ID: "m", Lat: 39.29, Lon: -76.61},
	}
	trail := []models.TrailPing{
		{TS: at(8, 0), Lat: 39.29, Lon: -76.61},
		{TS: at(9, 0), Lat: 39.29, Lon: -76.61},
	}

	out := BusinessVisits(cfg, trail, biz)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "m", out[1].ID)
}
