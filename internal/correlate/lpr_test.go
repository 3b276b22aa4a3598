package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poinet/profiler-backend-go/internal/models"
)

func TestLprSightingsPlateTierExcludesProximityTier(t *testing.T) {
	cfg := DefaultConfig()

	vehicles := []models.Vehicle{{Plate: "ABC123"}}
	trail := []models.TrailPing{
		{TS: at(12, 0), Lat: 39.2900, Lon: -76.6100},
	}
	hits := []models.LprHit{
		// plate match ~50 m from the ping, inside the window
		{TS: at(12, 5), Lat: 39.29045, Lon: -76.6100, PlateNorm: "ABC123", PlateRaw: "ABC-123", SensorID: "S1"},
		// a closer non-matching plate; Tier 1 being non-empty hides it
		{TS: at(12, 2), Lat: 39.2900, Lon: -76.6100, PlateNorm: "ZZZ999", PlateRaw: "ZZZ-999", SensorID: "S2"},
	}

	out := LprSightings(cfg, trail, vehicles, hits)
	require.Len(t, out, 1)
	s := out[0]
	assert.Equal(t, MethodPlate, s.Method)
	assert.Equal(t, "ABC-123", s.PlateRaw)
	assert.True(t, s.Confirmed)
	require.NotNil(t, s.TrailTS)
	assert.Equal(t, at(12, 0), *s.TrailTS)
	require.NotNil(t, s.DistanceM)
	assert.Less(t, *s.DistanceM, cfg.LprRadiusM)
}

func TestLprSightingsPlateMatchUnconfirmedOutsideWindow(t *testing.T) {
	cfg := DefaultConfig()
	vehicles := []models.Vehicle{{Plate: "ABC123"}}
	trail := []models.TrailPing{
		{TS: at(6, 0), Lat: 39.29, Lon: -76.61},
	}
	hits := []models.LprHit{
		// plate matches, but no trail ping within 10 minutes
		{TS: at(12, 0), Lat: 39.29, Lon: -76.61, PlateNorm: "ABC123"},
	}

	out := LprSightings(cfg, trail, vehicles, hits)
	require.Len(t, out, 1)
	assert.Equal(t, MethodPlate, out[0].Method)
	assert.False(t, out[0].Confirmed)
	assert.Nil(t, out[0].TrailTS)
	assert.Nil(t, out[0].DistanceM)
}

func TestLprSightingsFallbackTier(t *testing.T) {
	cfg := DefaultConfig()
	trail := []models.TrailPing{
		{TS: at(12, 0), Lat: 39.2900, Lon: -76.6100},
	}
	hits := []models.LprHit{
		// no owned vehicles: fallback confirms in-window, in-radius hits
		{TS: at(12, 4), Lat: 39.2901, Lon: -76.6100, PlateNorm: "ANY111", SensorID: "S1"},
		// in window but ~1.1 km away
		{TS: at(12, 4), Lat: 39.3000, Lon: -76.6100, PlateNorm: "ANY222", SensorID: "S2"},
		// out of window
		{TS: at(15, 0), Lat: 39.2900, Lon: -76.6100, PlateNorm: "ANY333", SensorID: "S3"},
	}

	out := LprSightings(cfg, trail, nil, hits)
	require.Len(t, out, 1)
	assert.Equal(t, MethodTrailProx, out[0].Method)
	assert.Equal(t, "S1", out[0].SensorID)
	assert.True(t, out[0].Confirmed)
}

func TestLprSightingsBestPingMinimizesDistance(t *testing.T) {
	cfg := DefaultConfig()
	trail := []models.TrailPing{
		{TS: at(12, 1), Lat: 39.3000, Lon: -76.6100}, // in window, ~1.1 km away
		{TS: at(12, 8), Lat: 39.2901, Lon: -76.6100}, // in window, exactly at the hit
		{TS: at(12, 0), Lat: 39.2900, Lon: -76.6100}, // in window, ~11 m away
	}
	hits := []models.LprHit{
		{TS: at(12, 9), Lat: 39.2901, Lon: -76.6100, PlateNorm: "P1"},
	}
	vehicles := []models.Vehicle{{Plate: "P1"}}

	out := LprSightings(cfg, trail, vehicles, hits)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].TrailTS)
	// the 12:08 ping is spatially closest among in-window candidates
	assert.Equal(t, at(12, 8), *out[0].TrailTS)
}

func TestLprSightingsSortedByTimestampWithLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LprLimit = 2
	vehicles := []models.Vehicle{{Plate: "P1"}}
	hits := []models.LprHit{
		{TS: at(15, 0), PlateNorm: "P1", SensorID: "S3"},
		{TS: at(11, 0), PlateNorm: "P1", SensorID: "S1"},
		{TS: at(13, 0), PlateNorm: "P1", SensorID: "S2"},
	}

	out := LprSightings(cfg, nil, vehicles, hits)
	require.Len(t, out, 2)
	assert.Equal(t, "S1", out[0].SensorID)
	assert.Equal(t, "S2", out[1].SensorID)
}

func TestLprSightingsBlankPlatesFallThrough(t *testing.T) {
	cfg := DefaultConfig()
	// vehicle with a blank plate contributes nothing to Tier 1
	vehicles := []models.Vehicle{{Plate: "  "}}
	trail := []models.TrailPing{{TS: at(12, 0), Lat: 39.29, Lon: -76.61}}
	hits := []models.LprHit{
		{TS: at(12, 1), Lat: 39.29, Lon: -76.61, PlateNorm: "OTHER1"},
	}

	out := LprSightings(cfg, trail, vehicles, hits)
	require.Len(t, out, 1)
	assert.Equal(t, MethodTrailProx, out[0].Method)
}
