package models

// Phone is a telecom contract row tied to a person.
type Phone struct {
	OwnerID string `json:"-" db:"person_id"`
	Number  string `json:"msisdn" db:"msisdn"`
	Type    string `json:"type" db:"contract_type"`
	Make    string `json:"make" db:"device_make"`
	Model   string `json:"model" db:"device_model"`
	MAC     string `json:"mac" db:"mac"` // uppercase at ingestion; hex-only after NormalizeMAC
	IMSI    string `json:"imsi" db:"imsi"`
}

// Vehicle is a registration record keyed by the owner's license ID.
type Vehicle struct {
	VIN   string `json:"vin" db:"vin"`
	Plate string `json:"plate" db:"plate_norm"` // uppercase alnum-only
	Make  string `json:"make" db:"make"`
	Model string `json:"model" db:"model"`
	Year  *int64 `json:"year" db:"year"`
}

// Employer is a (name, address) pair from the tax filings.
type Employer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
