package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/poinet/profiler-backend-go/internal/correlate"
	"github.com/poinet/profiler-backend-go/internal/database"
	"github.com/poinet/profiler-backend-go/internal/repository"
)

const (
	testLat = 39.29
	testLon = -76.61
)

func newTestService(t *testing.T) (*ProfileService, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.EnsureSchema(db))
	t.Cleanup(func() { db.Close() })

	svc := NewProfileService(
		repository.NewPersonRepository(db),
		repository.NewTrailRepository(db),
		repository.NewBusinessRepository(db),
		repository.NewEventRepository(db),
		repository.NewCrimeRepository(db),
		repository.NewRelationRepository(db),
		correlate.DefaultConfig(),
	)
	return svc, db
}

func exec(t *testing.T, db *sql.DB, query string, args ...interface{}) {
	t.Helper()
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}

func TestBuildProfileUnknownPerson(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.BuildProfile("nobody")
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestBuildProfileNoTrail(t *testing.T) {
	svc, db := newTestService(t)
	exec(t, db, `INSERT INTO people (person_id, first_name, last_name, license_id, address_line1)
		VALUES ('p1', 'JOHN', 'DOE', 'DL1', '10 MAIN ST')`)

	profile, err := svc.BuildProfile("p1")
	require.NoError(t, err)
	assert.Equal(t, "JOHN DOE", profile.Person.Name)
	assert.Empty(t, profile.BusinessVisits)
	assert.Empty(t, profile.WifiSpots)
	assert.Empty(t, profile.LprSightings)
	assert.Empty(t, profile.CrimeMatches)
}

func TestBuildProfileFullCorrelation(t *testing.T) {
	svc, db := newTestService(t)

	exec(t, db, `INSERT INTO people (person_id, first_name, last_name, license_id, address_line1)
		VALUES ('p1', 'JOHN', 'DOE', 'DL1', '10 MAIN ST')`)
	exec(t, db, `INSERT INTO people (person_id, first_name, last_name, license_id, address_line1)
		VALUES ('p2', 'JANE', 'ROE', 'DL2', '10 MAIN ST')`)

	exec(t, db, `INSERT INTO phone_contracts (person_id, msisdn, msisdn_norm, contract_type, mac)
		VALUES ('p1', '555-0100', '5550100', 'CONTRACT', 'AABBCCDDEEFF')`)
	exec(t, db, `INSERT INTO vehicles (owner_license, vin, plate_norm, plate_raw, make, model)
		VALUES ('DL1', 'VIN1', 'ABC123', 'ABC-123', 'FORD', 'FOCUS')`)
	exec(t, db, `INSERT INTO tax_employers (person_id, employer_name, employer_address, filer_address)
		VALUES ('p1', 'ACME', '1 WORK RD', '10 MAIN ST')`)

	// business at the trail location, owned by the POI
	exec(t, db, `INSERT INTO businesses (biz_id, name, address_line1, lat, lon, owner_first, owner_last)
		VALUES ('b1', 'CORNER SHOP', '12 MAIN ST', ?, ?, 'JOHN', 'DOE')`, testLat, testLon)

	// four pings across two distinct hours
	base := time.Date(2016, 11, 11, 8, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, 30 * time.Minute, 75 * time.Minute, 105 * time.Minute} {
		exec(t, db, `INSERT INTO trail_pings (person_id, ts, lat, lon) VALUES ('p1', ?, ?, ?)`,
			base.Add(offset).Unix(), testLat, testLon)
	}

	// wifi event at a ping, within window, carrying the POI device MAC
	exec(t, db, `INSERT INTO wifi_events (ts, lat, lon, device_mac, ssid_1)
		VALUES (?, ?, ?, 'AABBCCDDEEFF', 'CAFE')`, base.Add(5*time.Minute).Unix(), testLat, testLon)

	// plate-matching reader hit at a ping
	exec(t, db, `INSERT INTO lpr_hits (ts, lat, lon, sensor_id, direction, plate_state, plate_raw, plate_norm)
		VALUES (?, ?, ?, 'S1', 'N', 'MD', 'ABC-123', 'ABC123')`, base.Add(30*time.Minute).Unix(), testLat, testLon)

	exec(t, db, `INSERT INTO crime_reports (report_id, lat, lon, pre_text, post_text, file_path)
		VALUES ('R1', ?, ?, 'before', 'after', '/reports/r1.txt')`, testLat, testLon)

	profile, err := svc.BuildProfile("p1")
	require.NoError(t, err)

	assert.Len(t, profile.Phones, 1)
	assert.Len(t, profile.Vehicles, 1)
	assert.Len(t, profile.Employers, 1)

	require.Len(t, profile.OwnedBusinesses, 1)
	assert.Equal(t, "b1", profile.OwnedBusinesses[0].ID)

	require.Len(t, profile.BusinessVisits, 1)
	assert.Equal(t, 4, profile.BusinessVisits[0].Pings)
	assert.Equal(t, 2, profile.BusinessVisits[0].VisitHours)

	require.Len(t, profile.WifiSpots, 1)
	assert.Equal(t, "proximity+device_mac", profile.WifiSpots[0].Via)

	require.Len(t, profile.LprSightings, 1)
	assert.Equal(t, correlate.MethodPlate, profile.LprSightings[0].Method)
	assert.True(t, profile.LprSightings[0].Confirmed)

	require.NotEmpty(t, profile.CrimeMatches)
	assert.Equal(t, "R1", profile.CrimeMatches[0].ReportID)

	require.Len(t, profile.RelatedPeople, 1)
	assert.Equal(t, "p2", profile.RelatedPeople[0].ID)
	assert.Contains(t, profile.RelatedPeople[0].Via, correlate.ViaHousehold)
}
