package models

import "time"

// TrailPing is one GPS fix from the POI's monitor, ordered by timestamp
// on load.
type TrailPing struct {
	TS  time.Time `json:"ts" db:"ts"`
	Lat float64   `json:"lat" db:"lat"`
	Lon float64   `json:"lon" db:"lon"`
}

// Bounds is a lat/lon bounding box derived from a trail with meter padding.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}
