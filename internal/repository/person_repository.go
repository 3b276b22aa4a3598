package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/poinet/profiler-backend-go/internal/models"
)

// PersonRepository handles identity, telecom, tax, and vehicle lookups
// for a single person.
type PersonRepository struct {
	db *sql.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// displayName builds the collapsed-whitespace display name.
func displayName(first, middle, last string) string {
	return strings.Join(strings.Fields(first+" "+middle+" "+last), " ")
}

// placeholders returns "?,?,...,?" with n marks.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// GetPerson returns the identity record for an id, or nil when no record
// exists.
func (r *PersonRepository) GetPerson(id string) (*models.Person, error) {
	query := `SELECT person_id, first_name, middle_name, last_name, license_id, address_line1
		FROM people WHERE person_id = ?`

	var p models.Person
	err := r.db.QueryRow(query, id).Scan(&p.ID, &p.First, &p.Middle, &p.Last, &p.License, &p.Address)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	p.Name = displayName(p.First, p.Middle, p.Last)
	return &p, nil
}

// GetPhones returns every telecom contract for a person.
func (r *PersonRepository) GetPhones(id string) ([]models.Phone, error) {
	query := `SELECT person_id, msisdn, contract_type, device_make, device_model, mac, imsi
		FROM phone_contracts WHERE person_id = ?`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query phones: %w", err)
	}
	defer rows.Close()

	phones := []models.Phone{}
	for rows.Next() {
		var p models.Phone
		if err := rows.Scan(&p.OwnerID, &p.Number, &p.Type, &p.Make, &p.Model, &p.MAC, &p.IMSI); err != nil {
			return nil, fmt.Errorf("failed to scan phone: %w", err)
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

// GetEmployers returns every employer a person has filed against.
func (r *PersonRepository) GetEmployers(id string) ([]models.Employer, error) {
	query := `SELECT employer_name, employer_address FROM tax_employers WHERE person_id = ?`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query employers: %w", err)
	}
	defer rows.Close()

	employers := []models.Employer{}
	for rows.Next() {
		var e models.Employer
		if err := rows.Scan(&e.Name, &e.Address); err != nil {
			return nil, fmt.Errorf("failed to scan employer: %w", err)
		}
		employers = append(employers, e)
	}
	return employers, rows.Err()
}

// GetVehiclesByLicense returns the vehicles registered to a license id.
// A blank license matches nothing.
func (r *PersonRepository) GetVehiclesByLicense(license string) ([]models.Vehicle, error) {
	if strings.TrimSpace(license) == "" {
		return []models.Vehicle{}, nil
	}
	query := `SELECT vin, plate_norm, make, model, year FROM vehicles WHERE owner_license = ?`

	rows, err := r.db.Query(query, license)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.VIN, &v.Plate, &v.Make, &v.Model, &v.Year); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
