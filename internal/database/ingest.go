package database

import (
	"crypto/md5"
	"database/sql"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// csvTimeLayout is the timestamp format used by every sensor export.
const csvTimeLayout = "2006-01-02 15:04:05"

var (
	nonDigit    = regexp.MustCompile(`[^0-9]`)
	nonAlnum    = regexp.MustCompile(`[^A-Z0-9]`)
	nonHexDigit = regexp.MustCompile(`[^A-F0-9]`)
)

func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// digitsOnly normalizes phone numbers to their digits.
func digitsOnly(s string) string {
	return nonDigit.ReplaceAllString(strings.TrimSpace(s), "")
}

// alnumUpper normalizes plates: uppercase with everything but A-Z0-9
// stripped.
func alnumUpper(s string) string {
	return nonAlnum.ReplaceAllString(upperTrim(s), "")
}

// hexUpper normalizes MACs: uppercase with everything but hex digits
// stripped.
func hexUpper(s string) string {
	return nonHexDigit.ReplaceAllString(upperTrim(s), "")
}

// businessID derives a stable content hash from the raw name and
// coordinate strings, so re-ingesting the same registry file yields the
// same ids.
func businessID(name, latRaw, lonRaw string) string {
	sum := md5.Sum([]byte(upperTrim(name) + "|" + strings.TrimSpace(latRaw) + "|" + strings.TrimSpace(lonRaw)))
	return hex.EncodeToString(sum[:])
}

// csvFile is a fully-read CSV with case-insensitive header lookup.
type csvFile struct {
	cols map[string]int
	rows [][]string
}

func readCSVFile(path string) (*csvFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return &csvFile{cols: cols, rows: records[1:]}, nil
}

// get returns the trimmed value of the named column, or "" when the
// column or cell is absent.
func (f *csvFile) get(row []string, col string) string {
	i, ok := f.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (f *csvFile) getTime(row []string, col string) (time.Time, bool) {
	t, err := time.Parse(csvTimeLayout, f.get(row, col))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (f *csvFile) getFloat(row []string, col string) (float64, bool) {
	v, err := strconv.ParseFloat(f.get(row, col), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Ingestor bootstraps the dataset tables from the CSV exports in a data
// directory. Each present file replaces its table wholesale; missing
// files are skipped with a warning so partial data directories still
// produce a usable database.
type Ingestor struct {
	db      *sql.DB
	dataDir string
}

// NewIngestor creates a new ingestor over an open database.
func NewIngestor(db *sql.DB, dataDir string) *Ingestor {
	return &Ingestor{db: db, dataDir: dataDir}
}

type dataset struct {
	file  string
	table string
	load  func(tx *sql.Tx, f *csvFile) (int, error)
}

// Run ingests every known dataset file found under the data directory.
func (in *Ingestor) Run() error {
	datasets := []dataset{
		{"dmv_people.csv", "people", in.loadPeople},
		{"phone_contracts.csv", "phone_contracts", in.loadPhoneContracts},
		{"vehicle_registrations.csv", "vehicles", in.loadVehicles},
		{"tax_records.csv", "tax_employers", in.loadTaxRecords},
		{"gps_trail.csv", "trail_pings", in.loadTrail},
		{"wifi_events.csv", "wifi_events", in.loadWifiEvents},
		{"businesses.csv", "businesses", in.loadBusinesses},
		{"lpr_hits.csv", "lpr_hits", in.loadLprHits},
		{"crime_reports.csv", "crime_reports", in.loadCrimeReports},
	}

	for _, ds := range datasets {
		path := filepath.Join(in.dataDir, ds.file)
		if _, err := os.Stat(path); err != nil {
			logrus.WithFields(logrus.Fields{"file": ds.file, "table": ds.table}).
				Warn("dataset file not found, skipping")
			continue
		}

		f, err := readCSVFile(path)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", ds.file, err)
		}

		var n int
		err = Transaction(in.db, func(tx *sql.Tx) error {
			if _, err := tx.Exec("DELETE FROM " + ds.table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", ds.table, err)
			}
			n, err = ds.load(tx, f)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", ds.file, err)
		}
		logrus.WithFields(logrus.Fields{"table": ds.table, "rows": n}).Info("dataset ingested")
	}
	return nil
}

func (in *Ingestor) loadPeople(tx *sql.Tx, f *csvFile) (int, error) {
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO people
		(person_id, first_name, middle_name, last_name, license_id, address_line1)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare people insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, row := range f.rows {
		id := f.get(row, "id")
		if id == "" {
			continue
		}
		_, err := stmt.Exec(id,
			upperTrim(f.get(row, "firstname")),
			upperTrim(f.get(row, "middlename")),
			upperTrim(f.get(row, "lastname")),
			upperTrim(f.get(row, "driverslicense")),
			upperTrim(f.get(row, "address")))
		if err != nil {
			return n, fmt.Errorf("failed to insert person: %w", err)
		}
		n++
	}
	return n, nil
}

func (in *Ingestor) loadPhoneContracts(tx *sql.Tx, f *csvFile) (int, error) {
	stmt, err := tx.Prepare(`INSERT INTO phone_contracts
		(person_id, msisdn, msisdn_norm, contract_type, device_make, device_model, mac, imsi)
		VALUES (?, ?, ?, 'CONTRACT', ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare phone insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, row := range f.rows {
		id := f.get(row, "id")
		if id == "" {
			continue
		}
		msisdn := f.get(row, "msisdn")
		_, err := stmt.Exec(id, msisdn, digitsOnly(msisdn),
			upperTrim(f.get(row, "make")),
			upperTrim(f.get(row, "model")),
			hexUpper(f.get(row, "mac")),
			f.get(row, "imsi"))
		if err != nil {
			return n, fmt.Errorf("failed to insert phone contract: %w", err)
		}
		n++
	}
	return n, nil
}

func (in *Ingestor) loadVehicles(tx *sql.Tx, f *csvFile) (int, error) {
	stmt, err := tx.Prepare(`INSERT INTO vehicles
		(owner_license, owner_first, owner_middle, owner_last, vin, plate_norm, plate_raw,
		 make, model, year, color, state_registered)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare vehicle insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, row := range f.rows {
		var year interface{}
		if y, err := strconv.ParseInt(f.get(row, "vehicle year"), 10, 64); err == nil {
			year = y
		}
		_, err := stmt.Exec(
			upperTrim(f.get(row, "owner drivers license")),
			upperTrim(f.get(row, "owner first name")),
			upperTrim(f.get(row, "owner middle name")),
			upperTrim(f.get(row, "owner last name")),
			upperTrim(f.get(row, "vin")),
			alnumUpper(f.get(row, "license plate")),
			upperTrim(f.get(row, "license plate")),
			upperTrim(f.get(row, "vehicle make")),
			upperTrim(f.get(row, "vehicle model")),
			year,
			upperTrim(f.get(row, "vehicle color")),
			upperTrim(f.get(row, "state registered")))
		if err != nil {
			return n, fmt.Errorf("failed to insert vehicle: %w", err)
		}
		n++
	}
	return n, nil
}

func (in *Ingestor) loadTaxRecords(tx *sql.Tx, f *csvFile) (int, error) {
	stmt, err := tx.Prepare(`INSERT INTO tax_employers
		(person_id, employer_name, employer_address, employer_ein,
		 filer_address, filer_first, filer_middle, filer_last)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare tax insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, row := range f.rows {
		id := f.get(row, "id")
		if id == "" {
			continue
		}
		_, err := stmt.Exec(id,
			upperTrim(f.get(row, "employer")),
			upperTrim(f.get(row, "employer address")),
			f.get(row, "employer ein"),
			upperTrim(f.get(row, "address")),
			upperTrim(f.get(row, "first name")),
			upperTrim(f.get(row, "middle name")),
			upperTrim(f.get(row, "last name")))
		if err != nil {
			return n, fmt.Errorf("failed to insert tax record: %w", err)
		}
		n++
	}
	return n, nil
}

func (in *Ingestor) loadTrail(tx *sql.Tx, f *csvFile) (int, error) {
	stmt, err := tx.Prepare(`INSERT INTO trail_pings (person_id, ts, lat, lon) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare trail insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, row := range f.rows {
		id := f.get(row, "id")
		ts, tsOK := f.getTime(row, "datetime")
		lat, latOK := f.getFloat(row, "location_y")
		lon, lonOK := f.getFloat(row, "location_x")
		if id == "" || !tsOK || !latOK || !lonOK {
			continue
		}
		if _, err := stmt.Exec(id, ts.Unix(), lat, lon); err != nil {
			return n, fmt.Errorf("failed to insert trail ping: %w", err)
		}
		n++
	}
	return n, nil
}

func (in *Ingestor) loadWifiEvents(tx *sql.Tx, f *csvFile) (int, error) {
	stmt, err := tx.Prepare(`INSERT INTO wifi_events
		(ts, lat, lon, device_mac,
		 ssid_1, ssid_2, ssid_3, ssid_4, ssid_5, ssid_6, ssid_7, ssid_8, ssid_9, ssid_10)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare wifi insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, row := range f.rows {
		ts, tsOK := f.getTime(row, "datetime")
		lat, latOK := f.getFloat(row, "sensor_latitude")
		lon, lonOK := f.getFloat(row, "sensor_longitude")
		if !tsOK || !latOK || !lonOK {
			continue
		}
		args := []interface{}{ts.Unix(), lat, lon, hexUpper(f.get(row, "mac"))}
		for i := 1; i <= 10; i++ {
			args = append(args, f.get(row, "ssid_"+strconv.Itoa(i)))
		}
		if _, err := stmt.Exec(args...); err != nil {
			return n, fmt.Errorf("failed to insert wifi event: %w", err)
		}
		n++
	}
	return n, nil
}

func (in *Ingestor) loadBusinesses(tx *sql.Tx, f *csvFile) (int, error) {
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO businesses
		(biz_id, name, address_line1, lat, lon, naics, owner_first, owner_last)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare business insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, row := range f.rows {
		latRaw, lonRaw := f.get(row, "lat"), f.get(row, "lon")
		var lat, lon interface{}
		if v, ok := f.getFloat(row, "lat"); ok {
			lat = v
		}
		if v, ok := f.getFloat(row, "lon"); ok {
			lon = v
		}
		name := f.get(row, "name")
		_, err := stmt.Exec(
			businessID(name, latRaw, lonRaw),
			upperTrim(name),
			upperTrim(f.get(row, "address")),
			lat, lon,
			upperTrim(f.get(row, "naics")),
			upperTrim(f.get(row, "owner_first")),
			upperTrim(f.get(row, "owner_last")))
		if err != nil {
			return n, fmt.Errorf("failed to insert business: %w", err)
		}
		n++
	}
	return n, nil
}

func (in *Ingestor) loadLprHits(tx *sql.Tx, f *csvFile) (int, error) {
	stmt, err := tx.Prepare(`INSERT INTO lpr_hits
		(ts, lat, lon, sensor_id, direction, plate_state, plate_raw, plate_norm)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare lpr insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, row := range f.rows {
		ts, tsOK := f.getTime(row, "datetime")
		lat, latOK := f.getFloat(row, "lpr_latitude")
		lon, lonOK := f.getFloat(row, "lpr_longitude")
		if !tsOK || !latOK || !lonOK {
			continue
		}
		plate := f.get(row, "licenseplate")
		_, err := stmt.Exec(ts.Unix(), lat, lon,
			upperTrim(f.get(row, "lpr_id")),
			upperTrim(f.get(row, "lpr_direction")),
			upperTrim(f.get(row, "state")),
			upperTrim(plate),
			alnumUpper(plate))
		if err != nil {
			return n, fmt.Errorf("failed to insert lpr hit: %w", err)
		}
		n++
	}
	return n, nil
}

func (in *Ingestor) loadCrimeReports(tx *sql.Tx, f *csvFile) (int, error) {
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO crime_reports
		(report_id, lat, lon, pre_text, post_text, file_path)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare crime insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, row := range f.rows {
		id := f.get(row, "report_id")
		lat, latOK := f.getFloat(row, "lat")
		lon, lonOK := f.getFloat(row, "lon")
		if id == "" || !latOK || !lonOK {
			continue
		}
		_, err := stmt.Exec(id, lat, lon,
			f.get(row, "pre-text"),
			f.get(row, "post-text"),
			f.get(row, "file_path"))
		if err != nil {
			return n, fmt.Errorf("failed to insert crime report: %w", err)
		}
		n++
	}
	return n, nil
}
