package database

import (
	"database/sql"
	"fmt"
)

// schemaStatements creates every dataset table plus the indexes the
// profile queries lean on. Timestamps are stored as unix seconds.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS people (
		person_id    TEXT PRIMARY KEY,
		first_name   TEXT NOT NULL DEFAULT '',
		middle_name  TEXT NOT NULL DEFAULT '',
		last_name    TEXT NOT NULL DEFAULT '',
		license_id   TEXT NOT NULL DEFAULT '',
		address_line1 TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_people_address ON people(address_line1)`,

	`CREATE TABLE IF NOT EXISTS phone_contracts (
		person_id     TEXT NOT NULL,
		msisdn        TEXT NOT NULL DEFAULT '',
		msisdn_norm   TEXT NOT NULL DEFAULT '',
		contract_type TEXT NOT NULL DEFAULT '',
		device_make   TEXT NOT NULL DEFAULT '',
		device_model  TEXT NOT NULL DEFAULT '',
		mac           TEXT NOT NULL DEFAULT '',
		imsi          TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_phone_person ON phone_contracts(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_phone_mac ON phone_contracts(mac)`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		owner_license TEXT NOT NULL DEFAULT '',
		owner_first   TEXT NOT NULL DEFAULT '',
		owner_middle  TEXT NOT NULL DEFAULT '',
		owner_last    TEXT NOT NULL DEFAULT '',
		vin           TEXT NOT NULL DEFAULT '',
		plate_norm    TEXT NOT NULL DEFAULT '',
		plate_raw     TEXT NOT NULL DEFAULT '',
		make          TEXT NOT NULL DEFAULT '',
		model         TEXT NOT NULL DEFAULT '',
		year          INTEGER,
		color         TEXT NOT NULL DEFAULT '',
		state_registered TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_owner ON vehicles(owner_license)`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_plate ON vehicles(plate_norm)`,

	`CREATE TABLE IF NOT EXISTS tax_employers (
		person_id        TEXT NOT NULL,
		employer_name    TEXT NOT NULL DEFAULT '',
		employer_address TEXT NOT NULL DEFAULT '',
		employer_ein     TEXT NOT NULL DEFAULT '',
		filer_address    TEXT NOT NULL DEFAULT '',
		filer_first      TEXT NOT NULL DEFAULT '',
		filer_middle     TEXT NOT NULL DEFAULT '',
		filer_last       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tax_person ON tax_employers(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tax_filer_address ON tax_employers(filer_address)`,
	`CREATE INDEX IF NOT EXISTS idx_tax_employer_address ON tax_employers(employer_address)`,
	`CREATE INDEX IF NOT EXISTS idx_tax_employer_name ON tax_employers(employer_name)`,

	`CREATE TABLE IF NOT EXISTS trail_pings (
		person_id TEXT NOT NULL,
		ts        INTEGER NOT NULL,
		lat       REAL NOT NULL,
		lon       REAL NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trail_person_ts ON trail_pings(person_id, ts)`,

	`CREATE TABLE IF NOT EXISTS wifi_events (
		ts         INTEGER NOT NULL,
		lat        REAL NOT NULL,
		lon        REAL NOT NULL,
		device_mac TEXT NOT NULL DEFAULT '',
		ssid_1 TEXT NOT NULL DEFAULT '', ssid_2 TEXT NOT NULL DEFAULT '',
		ssid_3 TEXT NOT NULL DEFAULT '', ssid_4 TEXT NOT NULL DEFAULT '',
		ssid_5 TEXT NOT NULL DEFAULT '', ssid_6 TEXT NOT NULL DEFAULT '',
		ssid_7 TEXT NOT NULL DEFAULT '', ssid_8 TEXT NOT NULL DEFAULT '',
		ssid_9 TEXT NOT NULL DEFAULT '', ssid_10 TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wifi_ts ON wifi_events(ts)`,
	`CREATE INDEX IF NOT EXISTS idx_wifi_mac ON wifi_events(device_mac)`,
	`CREATE INDEX IF NOT EXISTS idx_wifi_box ON wifi_events(lat, lon)`,

	`CREATE TABLE IF NOT EXISTS businesses (
		biz_id        TEXT PRIMARY KEY,
		name          TEXT NOT NULL DEFAULT '',
		address_line1 TEXT NOT NULL DEFAULT '',
		lat           REAL,
		lon           REAL,
		naics         TEXT NOT NULL DEFAULT '',
		owner_first   TEXT NOT NULL DEFAULT '',
		owner_last    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_biz_box ON businesses(lat, lon)`,
	`CREATE INDEX IF NOT EXISTS idx_biz_owner ON businesses(owner_first, owner_last)`,

	`CREATE TABLE IF NOT EXISTS lpr_hits (
		ts          INTEGER NOT NULL,
		lat         REAL NOT NULL,
		lon         REAL NOT NULL,
		sensor_id   TEXT NOT NULL DEFAULT '',
		direction   TEXT NOT NULL DEFAULT '',
		plate_state TEXT NOT NULL DEFAULT '',
		plate_raw   TEXT NOT NULL DEFAULT '',
		plate_norm  TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_lpr_ts ON lpr_hits(ts)`,
	`CREATE INDEX IF NOT EXISTS idx_lpr_plate ON lpr_hits(plate_norm)`,
	`CREATE INDEX IF NOT EXISTS idx_lpr_box ON lpr_hits(lat, lon)`,

	`CREATE TABLE IF NOT EXISTS crime_reports (
		report_id TEXT PRIMARY KEY,
		lat       REAL NOT NULL,
		lon       REAL NOT NULL,
		pre_text  TEXT NOT NULL DEFAULT '',
		post_text TEXT NOT NULL DEFAULT '',
		file_path TEXT NOT NULL DEFAULT ''
	)`,
}

// EnsureSchema creates all tables and indexes if they do not exist yet.
func EnsureSchema(conn *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
