package repository

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/poinet/profiler-backend-go/internal/models"
)

// RelationRepository handles the relationship lookups and batch loaders
// used for related-people discovery. Lookups exclude the anchor id and
// preserve row order; the caller dedupes across discovery paths.
type RelationRepository struct {
	db *sql.DB
}

// NewRelationRepository creates a new relation repository
func NewRelationRepository(db *sql.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

func (r *RelationRepository) queryIDs(query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PeopleAtAddress returns the ids of people whose home address matches.
func (r *RelationRepository) PeopleAtAddress(addr, excludeID string) ([]string, error) {
	return r.queryIDs(`SELECT person_id FROM people WHERE address_line1 = ? AND person_id <> ?`,
		addr, excludeID)
}

// FilersAtAddress returns the ids of tax filers whose filing address
// matches.
func (r *RelationRepository) FilersAtAddress(addr, excludeID string) ([]string, error) {
	return r.queryIDs(`SELECT person_id FROM tax_employers WHERE filer_address = ? AND person_id <> ?`,
		addr, excludeID)
}

// PeopleAtEmployerAddress returns the ids of people whose employer's
// address matches.
func (r *RelationRepository) PeopleAtEmployerAddress(addr, excludeID string) ([]string, error) {
	return r.queryIDs(`SELECT DISTINCT person_id FROM tax_employers WHERE employer_address = ? AND person_id <> ?`,
		addr, excludeID)
}

// CoworkersAtEmployerNames returns the ids of people filing against any
// of the given employer names.
func (r *RelationRepository) CoworkersAtEmployerNames(names []string, excludeID string) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}
	query := `SELECT person_id FROM tax_employers WHERE employer_name IN (` +
		placeholders(len(names)) + `) AND person_id <> ?`
	args := make([]interface{}, 0, len(names)+1)
	for _, n := range names {
		args = append(args, n)
	}
	args = append(args, excludeID)
	return r.queryIDs(query, args...)
}

// PersonMinis batch-loads minimal profiles. Ids with no identity record
// are backfilled from their tax filings, with an empty license.
func (r *RelationRepository) PersonMinis(ids []string) (map[string]models.PersonMini, error) {
	out := make(map[string]models.PersonMini)
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := `SELECT person_id, first_name, middle_name, last_name, address_line1, license_id
		FROM people WHERE person_id IN (` + placeholders(len(ids)) + `)`
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query minimal profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, first, middle, last, addr, license string
		if err := rows.Scan(&id, &first, &middle, &last, &addr, &license); err != nil {
			return nil, fmt.Errorf("failed to scan minimal profile: %w", err)
		}
		out[id] = models.PersonMini{
			ID:      id,
			Name:    displayName(first, middle, last),
			Address: addr,
			First:   first,
			Last:    last,
			License: license,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	missing := make([]interface{}, 0)
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	query = `SELECT person_id, filer_first, filer_middle, filer_last, filer_address
		FROM tax_employers WHERE person_id IN (` + placeholders(len(missing)) + `)`
	fallback, err := r.db.Query(query, missing...)
	if err != nil {
		return nil, fmt.Errorf("failed to query filer profiles: %w", err)
	}
	defer fallback.Close()

	for fallback.Next() {
		var id, first, middle, last, addr string
		if err := fallback.Scan(&id, &first, &middle, &last, &addr); err != nil {
			return nil, fmt.Errorf("failed to scan filer profile: %w", err)
		}
		out[id] = models.PersonMini{
			ID:      id,
			Name:    displayName(first, middle, last),
			Address: addr,
			First:   first,
			Last:    last,
		}
	}
	return out, fallback.Err()
}

// PhonesFor batch-loads telecom contracts keyed by owner id.
func (r *RelationRepository) PhonesFor(ids []string) (map[string][]models.Phone, error) {
	out := make(map[string][]models.Phone)
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT person_id, msisdn, contract_type, device_make, device_model, mac, imsi
		FROM phone_contracts WHERE person_id IN (` + placeholders(len(ids)) + `)`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query phones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Phone
		if err := rows.Scan(&p.OwnerID, &p.Number, &p.Type, &p.Make, &p.Model, &p.MAC, &p.IMSI); err != nil {
			return nil, fmt.Errorf("failed to scan phone: %w", err)
		}
		out[p.OwnerID] = append(out[p.OwnerID], p)
	}
	return out, rows.Err()
}

// VehiclesForLicenses batch-loads vehicles keyed by person id given each
// person's license id.
func (r *RelationRepository) VehiclesForLicenses(licenseByID map[string]string) (map[string][]models.Vehicle, error) {
	out := make(map[string][]models.Vehicle)
	if len(licenseByID) == 0 {
		return out, nil
	}

	query := `SELECT vin, plate_norm, make, model, year FROM vehicles WHERE owner_license = ?`
	for id, license := range licenseByID {
		rows, err := r.db.Query(query, license)
		if err != nil {
			return nil, fmt.Errorf("failed to query vehicles: %w", err)
		}
		vehicles := []models.Vehicle{}
		for rows.Next() {
			var v models.Vehicle
			if err := rows.Scan(&v.VIN, &v.Plate, &v.Make, &v.Model, &v.Year); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan vehicle: %w", err)
			}
			vehicles = append(vehicles, v)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
		out[id] = vehicles
	}
	return out, nil
}

// PrimaryEmployers picks, per person, the (name, address) employer pair
// they filed against most often. Pairs with a blank address are ignored;
// count ties break on the lexicographically smaller pair.
func (r *RelationRepository) PrimaryEmployers(ids []string) (map[string]models.Employer, error) {
	out := make(map[string]models.Employer)
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT person_id, employer_name, employer_address FROM tax_employers
		WHERE person_id IN (` + placeholders(len(ids)) + `)
		  AND employer_address <> ''`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employers: %w", err)
	}
	defer rows.Close()

	type pair struct{ name, address string }
	counts := make(map[string]map[pair]int)
	for rows.Next() {
		var id string
		var p pair
		if err := rows.Scan(&id, &p.name, &p.address); err != nil {
			return nil, fmt.Errorf("failed to scan employer: %w", err)
		}
		if counts[id] == nil {
			counts[id] = make(map[pair]int)
		}
		counts[id][p]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for id, byPair := range counts {
		pairs := make([]pair, 0, len(byPair))
		for p := range byPair {
			pairs = append(pairs, p)
		}
		sort.Slice(pairs, func(i, j int) bool {
			if byPair[pairs[i]] != byPair[pairs[j]] {
				return byPair[pairs[i]] > byPair[pairs[j]]
			}
			if pairs[i].name != pairs[j].name {
				return pairs[i].name < pairs[j].name
			}
			return pairs[i].address < pairs[j].address
		})
		out[id] = models.Employer{Name: pairs[0].name, Address: pairs[0].address}
	}
	return out, nil
}
