package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/poinet/profiler-backend-go/internal/models"
)

// EventRepository handles the windowed sensor-event loads: Wi-Fi
// sightings and license-plate-reader hits. Both loaders take a time
// range, a bounding box, and an optional identifier filter.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// GetWifiEventsInBox returns the Wi-Fi events inside the time range and
// bounding box. When macs is non-empty only those device MACs are
// returned; MACs must already be normalized.
func (r *EventRepository) GetWifiEventsInBox(minTS, maxTS time.Time, box models.Bounds, macs []string) ([]models.WifiEvent, error) {
	query := `SELECT ts, lat, lon, device_mac,
		ssid_1, ssid_2, ssid_3, ssid_4, ssid_5, ssid_6, ssid_7, ssid_8, ssid_9, ssid_10
		FROM wifi_events
		WHERE ts BETWEEN ? AND ?
		  AND lat BETWEEN ? AND ?
		  AND lon BETWEEN ? AND ?`
	args := []interface{}{minTS.Unix(), maxTS.Unix(), box.MinLat, box.MaxLat, box.MinLon, box.MaxLon}

	if len(macs) > 0 {
		query += ` AND device_mac IN (` + placeholders(len(macs)) + `)`
		for _, m := range macs {
			args = append(args, m)
		}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wifi events: %w", err)
	}
	defer rows.Close()

	events := []models.WifiEvent{}
	for rows.Next() {
		var ts int64
		var e models.WifiEvent
		ssids := make([]sql.NullString, 10)
		dest := []interface{}{&ts, &e.Lat, &e.Lon, &e.DeviceMAC}
		for i := range ssids {
			dest = append(dest, &ssids[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan wifi event: %w", err)
		}
		e.TS = time.Unix(ts, 0).UTC()
		for _, s := range ssids {
			if s.Valid && s.String != "" {
				e.SSIDs = append(e.SSIDs, s.String)
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetLprHitsInBox returns the reader hits inside the time range and
// bounding box. When plates is non-empty only those normalized plates
// are returned.
func (r *EventRepository) GetLprHitsInBox(minTS, maxTS time.Time, box models.Bounds, plates []string) ([]models.LprHit, error) {
	query := `SELECT ts, lat, lon, sensor_id, direction, plate_state, plate_raw, plate_norm
		FROM lpr_hits
		WHERE ts BETWEEN ? AND ?
		  AND lat BETWEEN ? AND ?
		  AND lon BETWEEN ? AND ?`
	args := []interface{}{minTS.Unix(), maxTS.Unix(), box.MinLat, box.MaxLat, box.MinLon, box.MaxLon}

	if len(plates) > 0 {
		query += ` AND plate_norm IN (` + placeholders(len(plates)) + `)`
		for _, p := range plates {
			args = append(args, p)
		}
	}
	query += ` ORDER BY ts`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lpr hits: %w", err)
	}
	defer rows.Close()

	hits := []models.LprHit{}
	for rows.Next() {
		var ts int64
		var h models.LprHit
		if err := rows.Scan(&ts, &h.Lat, &h.Lon, &h.SensorID, &h.Direction, &h.PlateState, &h.PlateRaw, &h.PlateNorm); err != nil {
			return nil, fmt.Errorf("failed to scan lpr hit: %w", err)
		}
		h.TS = time.Unix(ts, 0).UTC()
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
