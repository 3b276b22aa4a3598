package models

import "time"

// Crime is a report row with the report location and surrounding text.
type Crime struct {
	ReportID string  `json:"reportId" db:"report_id"`
	Lat      float64 `json:"lat" db:"lat"`
	Lon      float64 `json:"lon" db:"lon"`
	PreText  string  `json:"preText" db:"pre_text"`
	PostText string  `json:"postText" db:"post_text"`
	FilePath string  `json:"filePath" db:"file_path"`
}

// CrimeMatch is a crime tied to the POI through one or more detection
// channels. TrailTS is nil for channels with no trail timestamp (Wi-Fi).
type CrimeMatch struct {
	ReportID  string     `json:"reportId"`
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	TrailTS   *time.Time `json:"trailTs"`
	DistanceM *float64   `json:"distM"`
	Via       string     `json:"via"`
	PreText   string     `json:"preText"`
	PostText  string     `json:"postText"`
	FilePath  string     `json:"filePath"`
}
