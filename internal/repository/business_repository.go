package repository

import (
	"database/sql"
	"fmt"

	"github.com/poinet/profiler-backend-go/internal/models"
)

// BusinessRepository handles business registry lookups.
type BusinessRepository struct {
	db *sql.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *sql.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

const businessColumns = `biz_id, name, address_line1, lat, lon, owner_first, owner_last`

func scanBusinesses(rows *sql.Rows) ([]models.Business, error) {
	out := []models.Business{}
	for rows.Next() {
		var b models.Business
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &lat, &lon, &b.OwnerFirst, &b.OwnerLast); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		b.Lat = lat.Float64
		b.Lon = lon.Float64
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetAll returns the full business registry.
func (r *BusinessRepository) GetAll() ([]models.Business, error) {
	rows, err := r.db.Query(`SELECT ` + businessColumns + ` FROM businesses`)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()
	return scanBusinesses(rows)
}

// GetInBox returns the businesses with coordinates inside a bounding box.
func (r *BusinessRepository) GetInBox(box models.Bounds) ([]models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses
		WHERE lat IS NOT NULL AND lon IS NOT NULL
		  AND lat BETWEEN ? AND ?
		  AND lon BETWEEN ? AND ?`

	rows, err := r.db.Query(query, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses in box: %w", err)
	}
	defer rows.Close()
	return scanBusinesses(rows)
}
