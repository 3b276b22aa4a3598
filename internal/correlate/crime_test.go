package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poinet/profiler-backend-go/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestMatchCrimesByTrailConfirmsWithinRadius(t *testing.T) {
	cfg := DefaultConfig()
	trail := []models.TrailPing{
		{TS: at(22, 0), Lat: 39.2900, Lon: -76.6100},
		{TS: at(23, 0), Lat: 39.4000, Lon: -76.5000},
	}
	crimes := []models.Crime{
		{ReportID: "R1", Lat: 39.2905, Lon: -76.6100}, // ~55 m from the 22:00 ping
		{ReportID: "R2", Lat: 39.2000, Lon: -76.9000}, // nowhere near the trail
	}

	out := MatchCrimesByTrail(cfg, trail, crimes)
	require.Len(t, out, 1)
	m := out[0]
	assert.Equal(t, "R1", m.ReportID)
	assert.Equal(t, ViaTrailProx, m.Via)
	require.NotNil(t, m.TrailTS)
	assert.Equal(t, at(22, 0), *m.TrailTS)
	require.NotNil(t, m.DistanceM)
	assert.LessOrEqual(t, *m.DistanceM, cfg.CrimeRadiusM)
}

func TestMatchCrimesByTrailEmptyTrail(t *testing.T) {
	out := MatchCrimesByTrail(DefaultConfig(), nil, []models.Crime{{ReportID: "R1"}})
	assert.Empty(t, out)
}

func TestMatchCrimesByLprUsesConfirmedSightingsOnly(t *testing.T) {
	cfg := DefaultConfig()
	ts := at(22, 0)
	sightings := []models.LprSighting{
		// unconfirmed sighting right on top of the crime: must not match
		{TS: at(21, 0), Lat: 39.2905, Lon: -76.6100, Confirmed: false},
		// confirmed sighting ~100 m away
		{TS: at(22, 0), TrailTS: &ts, DistanceM: fptr(30), Lat: 39.2914, Lon: -76.6100, Confirmed: true},
	}
	crimes := []models.Crime{{ReportID: "R1", Lat: 39.2905, Lon: -76.6100}}

	out := MatchCrimesByLpr(cfg, sightings, crimes)
	require.Len(t, out, 1)
	assert.Equal(t, ViaLprProx, out[0].Via)
	require.NotNil(t, out[0].DistanceM)
	// distance is to the confirmed sighting, not the unconfirmed one
	assert.Greater(t, *out[0].DistanceM, 50.0)
	require.NotNil(t, out[0].TrailTS)
	assert.Equal(t, ts, *out[0].TrailTS)
}

func TestMatchCrimesByWifiRequiresOwnedMac(t *testing.T) {
	cfg := DefaultConfig()
	events := []models.WifiEvent{
		{TS: at(9, 0), Lat: 39.2905, Lon: -76.6100, DeviceMAC: "AABBCCDDEEFF"},
		{TS: at(9, 5), Lat: 39.2905, Lon: -76.6100, DeviceMAC: "FFEEDDCCBBAA"},
	}
	crimes := []models.Crime{{ReportID: "R1", Lat: 39.2905, Lon: -76.6100}}

	assert.Empty(t, MatchCrimesByWifi(cfg, nil, events, crimes))

	phones := []models.Phone{{MAC: "aa:bb:cc:dd:ee:ff"}}
	out := MatchCrimesByWifi(cfg, phones, events, crimes)
	require.Len(t, out, 1)
	assert.Equal(t, ViaWifiProx, out[0].Via)
	assert.Nil(t, out[0].TrailTS)
}

func TestMergeCrimeMatchesSmallerDistanceWins(t *testing.T) {
	a := []models.CrimeMatch{{ReportID: "R1", DistanceM: fptr(40), Via: "ankle proximity"}}
	b := []models.CrimeMatch{{ReportID: "R1", DistanceM: fptr(25), Via: "lpr proximity"}}

	out := MergeCrimeMatches(a, b)
	require.Len(t, out, 1)
	assert.Equal(t, 25.0, *out[0].DistanceM)
	assert.Equal(t, "lpr proximity", out[0].Via)
}

func TestMergeCrimeMatchesEqualDistanceAppendsVia(t *testing.T) {
	a := []models.CrimeMatch{{ReportID: "R2", DistanceM: fptr(10), Via: "x"}}
	b := []models.CrimeMatch{{ReportID: "R2", DistanceM: fptr(10), Via: "y"}}

	out := MergeCrimeMatches(a, b)
	require.Len(t, out, 1)
	assert.Equal(t, "x+y", out[0].Via)
	assert.Equal(t, 10.0, *out[0].DistanceM)
}

func TestMergeCrimeMatchesViaNotDuplicated(t *testing.T) {
	a := []models.CrimeMatch{{ReportID: "R3", DistanceM: fptr(10), Via: "x+y"}}
	b := []models.CrimeMatch{{ReportID: "R3", DistanceM: fptr(10), Via: "y"}}

	out := MergeCrimeMatches(a, b)
	require.Len(t, out, 1)
	assert.Equal(t, "x+y", out[0].Via)
}

func TestMergeCrimeMatchesSortsByDistanceMissingLast(t *testing.T) {
	a := []models.CrimeMatch{
		{ReportID: "R1", DistanceM: fptr(90)},
		{ReportID: "R2", DistanceM: nil},
	}
	b := []models.CrimeMatch{
		{ReportID: "R3", DistanceM: fptr(5)},
	}

	out := MergeCrimeMatches(a, b)
	require.Len(t, out, 3)
	assert.Equal(t, "R3", out[0].ReportID)
	assert.Equal(t, "R1", out[1].ReportID)
	assert.Equal(t, "R2", out[2].ReportID)
}

func TestMergeCrimeMatchesDisjointKeepsBoth(t *testing.T) {
	a := []models.CrimeMatch{{ReportID: "A", DistanceM: fptr(30)}}
	b := []models.CrimeMatch{{ReportID: "B", DistanceM: fptr(20)}}

	out := MergeCrimeMatches(a, b)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].ReportID)
	assert.Equal(t, "A", out[1].ReportID)
}
