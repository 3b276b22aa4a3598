package models

import "time"

// WifiEvent is a raw sensor sighting of a device. Up to 10 SSID slots are
// reported per event; blanks are dropped at ingestion.
type WifiEvent struct {
	TS        time.Time `json:"ts" db:"ts"`
	Lat       float64   `json:"lat" db:"lat"`
	Lon       float64   `json:"lon" db:"lon"`
	DeviceMAC string    `json:"deviceMac" db:"device_mac"`
	SSIDs     []string  `json:"ssids" db:"-"`
}

// WifiSpot is an aggregated sighting location keyed by coordinates rounded
// to 6 decimal places. Via records which detection channels produced it,
// joined with "+".
type WifiSpot struct {
	Lat     float64   `json:"lat"`
	Lon     float64   `json:"lon"`
	SSIDs   []string  `json:"ssids"`
	FirstTS time.Time `json:"firstTs"`
	LastTS  time.Time `json:"lastTs"`
	Hits    int64     `json:"hits"`
	Via     string    `json:"via"`
}
