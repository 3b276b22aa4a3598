package correlate

import (
	"sort"
	"sync"
	"time"

	"github.com/poinet/profiler-backend-go/internal/models"
	"github.com/poinet/profiler-backend-go/internal/spatial"
)

type visitAgg struct {
	biz     models.Business
	pings   int
	firstTS time.Time
	lastTS  time.Time
	hours   map[time.Time]struct{}
}

// BusinessVisits correlates trail pings against businesses by proximity.
// Every (ping, business) pair within the visit radius is bucketed by the
// ping's hour; only businesses seen across at least MinVisitHours distinct
// hour buckets qualify, so repeated pings within a single hour never make
// a visit on their own. Ordering is hour buckets desc, pings desc,
// business id asc.
func BusinessVisits(cfg Config, trail []models.TrailPing, businesses []models.Business) []models.BusinessVisit {
	agg := make(map[string]*visitAgg)
	var mu sync.Mutex

	forEachIndex(len(trail), cfg.Workers, func(i int) {
		p := trail[i]
		hour := p.TS.Truncate(time.Hour)
		for _, b := range businesses {
			if spatial.DistanceMeters(p.Lat, p.Lon, b.Lat, b.Lon) > cfg.VisitRadiusM {
				continue
			}
			mu.Lock()
			a := agg[b.ID]
			if a == nil {
				a = &visitAgg{biz: b, hours: make(map[time.Time]struct{})}
				agg[b.ID] = a
			}
			a.pings++
			a.hours[hour] = struct{}{}
			if a.firstTS.IsZero() || p.TS.Before(a.firstTS) {
				a.firstTS = p.TS
			}
			if a.lastTS.IsZero() || p.TS.After(a.lastTS) {
				a.lastTS = p.TS
			}
			mu.Unlock()
		}
	})

	kept := make([]*visitAgg, 0, len(agg))
	for _, a := range agg {
		if len(a.hours) >= cfg.MinVisitHours {
			kept = append(kept, a)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if len(kept[i].hours) != len(kept[j].hours) {
			return len(kept[i].hours) > len(kept[j].hours)
		}
		if kept[i].pings != kept[j].pings {
			return kept[i].pings > kept[j].pings
		}
		return kept[i].biz.ID < kept[j].biz.ID
	})
	if len(kept) > cfg.VisitLimit {
		kept = kept[:cfg.VisitLimit]
	}

	out := make([]models.BusinessVisit, 0, len(kept))
	for _, a := range kept {
		out = append(out, models.BusinessVisit{
			ID:         a.biz.ID,
			Name:       a.biz.Name,
			Address:    a.biz.Address,
			Lat:        a.biz.Lat,
			Lon:        a.biz.Lon,
			FirstTS:    a.firstTS,
			LastTS:     a.lastTS,
			Pings:      a.pings,
			VisitHours: len(a.hours),
			Via:        ViaTrailProx,
		})
	}
	return out
}
