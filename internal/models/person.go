package models

// Person is an identity record from the DMV dataset. The person ID is the
// join key across every other dataset.
type Person struct {
	ID      string `json:"id" db:"person_id"`
	First   string `json:"first" db:"first_name"`
	Middle  string `json:"middle,omitempty" db:"middle_name"`
	Last    string `json:"last" db:"last_name"`
	Name    string `json:"name" db:"-"` // display name, collapsed whitespace
	License string `json:"license" db:"license_id"`
	Address string `json:"address" db:"address_line1"`
}

// PersonMini is the minimal profile loaded for related people. It may be
// backfilled from tax filings when no identity record exists, in which
// case License is empty.
type PersonMini struct {
	ID      string
	Name    string
	Address string
	First   string
	Last    string
	License string
}

// RelatedPerson is one enriched card in the related-people result.
type RelatedPerson struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	Via             []string        `json:"via"`
	Phones          []Phone         `json:"phones"`
	Vehicles        []Vehicle       `json:"vehicles"`
	Businesses      []OwnedBusiness `json:"businesses"`
	EmployerName    string          `json:"employerName,omitempty"`
	EmployerAddress string          `json:"employerAddress,omitempty"`
}
