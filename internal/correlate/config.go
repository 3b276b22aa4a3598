// Package correlate implements the spatial-temporal correlation engine:
// it takes a POI's trail and the surrounding datasets and derives business
// visits, Wi-Fi spots, LPR sightings, crime matches, and related people.
// All computation is in-memory and side-effect-free with respect to its
// inputs; parallel fan-out feeds synchronized aggregation, and final
// ordering is applied single-threaded so results are deterministic.
package correlate

import "runtime"

// Via tags record which detection channel or relationship path produced a
// result.
const (
	ViaOwnerName    = "owner_name_fl"
	ViaTrailProx    = "ankle proximity"
	ViaProximity    = "proximity"
	ViaDeviceMAC    = "device_mac"
	ViaLprProx      = "lpr proximity"
	ViaWifiProx     = "wifi proximity"
	ViaHousehold    = "household"
	ViaEmployerAddr = "employer_addr_matches_POI"
	ViaCoworker     = "coworker:tax_employer"
)

// Correlation methods for LPR sightings.
const (
	MethodPlate     = "PLATE"
	MethodTrailProx = "ANKLE_PROX"
)

// Config carries the radii, time windows, and result caps for one
// correlation pass. Thread an explicit value into each call so tests and
// callers can override individual knobs.
type Config struct {
	VisitRadiusM  float64 // business visit proximity radius
	MinVisitHours int     // distinct hour buckets required for a visit
	VisitLimit    int

	WifiWindowMin int // trail-to-event time window, minutes
	WifiRadiusM   float64
	WifiLimit     int

	LprWindowMin int
	LprRadiusM   float64
	LprLimit     int

	CrimeRadiusM float64
	CrimeLimit   int // per-matcher cap

	BoundsPadM float64 // trail bounding-box padding for boxed dataset loads

	Workers int // parallel fan-out width, defaults to NumCPU
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		VisitRadiusM:  80,
		MinVisitHours: 2,
		VisitLimit:    10,
		WifiWindowMin: 10,
		WifiRadiusM:   120,
		WifiLimit:     200,
		LprWindowMin:  10,
		LprRadiusM:    120,
		LprLimit:      500,
		CrimeRadiusM:  150,
		CrimeLimit:    50,
		BoundsPadM:    200,
		Workers:       runtime.NumCPU(),
	}
}
