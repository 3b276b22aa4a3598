package models

import "time"

// LprHit is a raw license-plate-reader event.
type LprHit struct {
	TS         time.Time `json:"ts" db:"ts"`
	Lat        float64   `json:"lat" db:"lat"`
	Lon        float64   `json:"lon" db:"lon"`
	SensorID   string    `json:"sensorId" db:"sensor_id"`
	Direction  string    `json:"direction" db:"direction"`
	PlateState string    `json:"plateState" db:"plate_state"`
	PlateRaw   string    `json:"plateRaw" db:"plate_raw"`
	PlateNorm  string    `json:"-" db:"plate_norm"` // uppercase alnum-only
}

// LprSighting is a reader event correlated against the trail. TrailTS and
// DistanceM are nil when the hit matched on plate but no in-window trail
// ping confirmed it.
type LprSighting struct {
	TS         time.Time  `json:"ts"`
	TrailTS    *time.Time `json:"trailTs"`
	DistanceM  *float64   `json:"distM"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	SensorID   string     `json:"sensorId"`
	Direction  string     `json:"direction"`
	PlateState string     `json:"plateState"`
	PlateRaw   string     `json:"plateRaw"`
	Method     string     `json:"method"` // "PLATE" or "ANKLE_PROX"
	Confirmed  bool       `json:"confirmed"`
}
