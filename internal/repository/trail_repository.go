package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/poinet/profiler-backend-go/internal/models"
)

// TrailRepository handles GPS trail lookups.
type TrailRepository struct {
	db *sql.DB
}

// NewTrailRepository creates a new trail repository
func NewTrailRepository(db *sql.DB) *TrailRepository {
	return &TrailRepository{db: db}
}

// GetTrail returns a person's pings ordered by timestamp ascending.
func (r *TrailRepository) GetTrail(personID string) ([]models.TrailPing, error) {
	query := `SELECT ts, lat, lon FROM trail_pings WHERE person_id = ? ORDER BY ts`

	rows, err := r.db.Query(query, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trail: %w", err)
	}
	defer rows.Close()

	trail := []models.TrailPing{}
	for rows.Next() {
		var ts int64
		var p models.TrailPing
		if err := rows.Scan(&ts, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan trail ping: %w", err)
		}
		p.TS = time.Unix(ts, 0).UTC()
		trail = append(trail, p)
	}
	return trail, rows.Err()
}
