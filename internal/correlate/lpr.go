package correlate

import (
	"sort"
	"time"

	"github.com/poinet/profiler-backend-go/internal/models"
	"github.com/poinet/profiler-backend-go/internal/spatial"
)

// bestPingInWindow finds the trail ping within the time window around ts
// that is spatially closest to (lat, lon). Pings outside the window are
// never candidates. Returns nil when nothing qualifies.
func bestPingInWindow(ts time.Time, lat, lon float64, trail []models.TrailPing, window time.Duration) (*models.TrailPing, float64) {
	var best *models.TrailPing
	bestDist := 0.0
	for i := range trail {
		p := &trail[i]
		dt := ts.Sub(p.TS)
		if dt < 0 {
			dt = -dt
		}
		if dt > window {
			continue
		}
		d := spatial.DistanceMeters(lat, lon, p.Lat, p.Lon)
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best, bestDist
}

// LprSightings correlates reader hits against the trail with a two-tier,
// mutually exclusive strategy. Tier 1 keeps only hits whose normalized
// plate belongs to one of the POI's vehicles; each is confirmed when its
// best in-window trail ping lies inside the radius, and emitted
// unconfirmed otherwise. Tier 2 runs only when Tier 1 produced nothing:
// every hit is checked against the trail and only confirmed matches are
// emitted. Output is sorted ascending by hit timestamp.
func LprSightings(cfg Config, trail []models.TrailPing, vehicles []models.Vehicle, hits []models.LprHit) []models.LprSighting {
	window := time.Duration(cfg.LprWindowMin) * time.Minute

	plates := make(map[string]struct{})
	for _, v := range vehicles {
		if p := upperTrim(v.Plate); p != "" {
			plates[p] = struct{}{}
		}
	}

	out := []models.LprSighting{}
	if len(plates) > 0 {
		plateHits := make([]models.LprHit, 0)
		for _, h := range hits {
			p := upperTrim(h.PlateNorm)
			if p == "" {
				continue
			}
			if _, ok := plates[p]; ok {
				plateHits = append(plateHits, h)
			}
		}
		if len(plateHits) > 0 {
			out = make([]models.LprSighting, len(plateHits))
			forEachIndex(len(plateHits), cfg.Workers, func(i int) {
				h := plateHits[i]
				s := models.LprSighting{
					TS:         h.TS,
					Lat:        h.Lat,
					Lon:        h.Lon,
					SensorID:   h.SensorID,
					Direction:  h.Direction,
					PlateState: h.PlateState,
					PlateRaw:   h.PlateRaw,
					Method:     MethodPlate,
				}
				if best, d := bestPingInWindow(h.TS, h.Lat, h.Lon, trail, window); best != nil && d <= cfg.LprRadiusM {
					ts := best.TS
					dist := d
					s.TrailTS = &ts
					s.DistanceM = &dist
					s.Confirmed = true
				}
				out[i] = s
			})
		}
	}

	if len(out) == 0 {
		slots := make([]*models.LprSighting, len(hits))
		forEachIndex(len(hits), cfg.Workers, func(i int) {
			h := hits[i]
			best, d := bestPingInWindow(h.TS, h.Lat, h.Lon, trail, window)
			if best == nil || d > cfg.LprRadiusM {
				return
			}
			ts := best.TS
			dist := d
			slots[i] = &models.LprSighting{
				TS:         h.TS,
				TrailTS:    &ts,
				DistanceM:  &dist,
				Lat:        h.Lat,
				Lon:        h.Lon,
				SensorID:   h.SensorID,
				Direction:  h.Direction,
				PlateState: h.PlateState,
				PlateRaw:   h.PlateRaw,
				Method:     MethodTrailProx,
				Confirmed:  true,
			}
		})
		for _, s := range slots {
			if s != nil {
				out = append(out, *s)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].TS.Equal(out[j].TS) {
			return out[i].TS.Before(out[j].TS)
		}
		if out[i].SensorID != out[j].SensorID {
			return out[i].SensorID < out[j].SensorID
		}
		return out[i].PlateRaw < out[j].PlateRaw
	})
	if len(out) > cfg.LprLimit {
		out = out[:cfg.LprLimit]
	}
	return out
}
