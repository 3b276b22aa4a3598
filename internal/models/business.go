package models

import "time"

// Business is a registry entry. The ID is content-derived (stable hash of
// name and coordinates) so re-ingestion never changes it.
type Business struct {
	ID         string  `json:"bizId" db:"biz_id"`
	Name       string  `json:"name" db:"name"`
	Address    string  `json:"address" db:"address_line1"`
	OwnerFirst string  `json:"-" db:"owner_first"`
	OwnerLast  string  `json:"-" db:"owner_last"`
	Lat        float64 `json:"lat" db:"lat"`
	Lon        float64 `json:"lon" db:"lon"`
}

// OwnedBusiness links a business to a person through an owner-name match.
type OwnedBusiness struct {
	ID      string  `json:"bizId"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Via     string  `json:"via"`
}

// BusinessVisit is a business the trail kept coming back to: pings within
// the visit radius spread across at least the configured number of
// distinct hour buckets.
type BusinessVisit struct {
	ID         string    `json:"bizId"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	FirstTS    time.Time `json:"firstTs"`
	LastTS     time.Time `json:"lastTs"`
	Pings      int       `json:"pings"`
	VisitHours int       `json:"visitHours"` // distinct hour buckets
	Via        string    `json:"via"`
}
