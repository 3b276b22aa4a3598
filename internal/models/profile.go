package models

// Profile is the full linked-entity report for one POI. It is rebuilt per
// request and never persisted.
type Profile struct {
	Person          Person          `json:"person"`
	Phones          []Phone         `json:"phones"`
	Vehicles        []Vehicle       `json:"vehicles"`
	Employers       []Employer      `json:"employers"`
	OwnedBusinesses []OwnedBusiness `json:"ownedBusinesses"`
	BusinessVisits  []BusinessVisit `json:"businessVisits"`
	WifiSpots       []WifiSpot      `json:"wifiSpots"`
	LprSightings    []LprSighting   `json:"lprSightings"`
	CrimeMatches    []CrimeMatch    `json:"crimeMatches"`
	RelatedPeople   []RelatedPerson `json:"relatedPeople"`
}
