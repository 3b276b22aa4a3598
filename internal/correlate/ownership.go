package correlate

import (
	"github.com/poinet/profiler-backend-go/internal/models"
)

// OwnedBusinesses returns every business whose registered owner matches
// the given first and last name exactly, case-insensitive and trimmed.
// A blank first or last name yields no matches.
func OwnedBusinesses(first, last string, businesses []models.Business) []models.OwnedBusiness {
	f := upperTrim(first)
	l := upperTrim(last)
	out := []models.OwnedBusiness{}
	if f == "" || l == "" {
		return out
	}

	for _, b := range businesses {
		if f != upperTrim(b.OwnerFirst) || l != upperTrim(b.OwnerLast) {
			continue
		}
		out = append(out, models.OwnedBusiness{
			ID:      b.ID,
			Name:    b.Name,
			Address: b.Address,
			Lat:     b.Lat,
			Lon:     b.Lon,
			Via:     ViaOwnerName,
		})
	}
	return out
}
