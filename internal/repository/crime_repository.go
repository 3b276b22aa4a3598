package repository

import (
	"database/sql"
	"fmt"

	"github.com/poinet/profiler-backend-go/internal/models"
)

// CrimeRepository handles crime report lookups.
type CrimeRepository struct {
	db *sql.DB
}

// NewCrimeRepository creates a new crime repository
func NewCrimeRepository(db *sql.DB) *CrimeRepository {
	return &CrimeRepository{db: db}
}

// GetAll returns every crime report.
func (r *CrimeRepository) GetAll() ([]models.Crime, error) {
	query := `SELECT report_id, lat, lon, pre_text, post_text, file_path FROM crime_reports`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query crime reports: %w", err)
	}
	defer rows.Close()

	crimes := []models.Crime{}
	for rows.Next() {
		var c models.Crime
		if err := rows.Scan(&c.ReportID, &c.Lat, &c.Lon, &c.PreText, &c.PostText, &c.FilePath); err != nil {
			return nil, fmt.Errorf("failed to scan crime report: %w", err)
		}
		crimes = append(crimes, c)
	}
	return crimes, rows.Err()
}
