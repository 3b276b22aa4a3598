package correlate

import (
	"sort"
	"strings"
	"time"

	"github.com/poinet/profiler-backend-go/internal/models"
	"github.com/poinet/profiler-backend-go/internal/spatial"
)

// mergeLimit caps the merged crime result.
const mergeLimit = 50

func crimeMatch(c models.Crime, trailTS *time.Time, dist float64, via string) *models.CrimeMatch {
	d := dist
	return &models.CrimeMatch{
		ReportID:  c.ReportID,
		Lat:       c.Lat,
		Lon:       c.Lon,
		TrailTS:   trailTS,
		DistanceM: &d,
		Via:       via,
		PreText:   c.PreText,
		PostText:  c.PostText,
		FilePath:  c.FilePath,
	}
}

// sortAndCap orders matches ascending by distance (report id breaks ties)
// and applies the per-matcher cap. Compaction of the parallel slots
// happens here, single-threaded, which keeps the output deterministic.
func sortAndCap(slots []*models.CrimeMatch, limit int) []models.CrimeMatch {
	out := make([]models.CrimeMatch, 0, len(slots))
	for _, m := range slots {
		if m != nil {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if *out[i].DistanceM != *out[j].DistanceM {
			return *out[i].DistanceM < *out[j].DistanceM
		}
		return out[i].ReportID < out[j].ReportID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MatchCrimesByTrail confirms a crime when its globally nearest trail ping
// lies within the crime radius.
func MatchCrimesByTrail(cfg Config, trail []models.TrailPing, crimes []models.Crime) []models.CrimeMatch {
	slots := make([]*models.CrimeMatch, len(crimes))
	forEachIndex(len(crimes), cfg.Workers, func(i int) {
		c := crimes[i]
		var best *models.TrailPing
		bestD := 0.0
		for j := range trail {
			d := spatial.DistanceMeters(trail[j].Lat, trail[j].Lon, c.Lat, c.Lon)
			if best == nil || d < bestD {
				best = &trail[j]
				bestD = d
			}
		}
		if best != nil && bestD <= cfg.CrimeRadiusM {
			ts := best.TS
			slots[i] = crimeMatch(c, &ts, bestD, ViaTrailProx)
		}
	})
	return sortAndCap(slots, cfg.CrimeLimit)
}

// MatchCrimesByLpr confirms a crime when its nearest confirmed LPR
// sighting lies within the crime radius. Unconfirmed sightings carry no
// trail evidence and are not candidates.
func MatchCrimesByLpr(cfg Config, sightings []models.LprSighting, crimes []models.Crime) []models.CrimeMatch {
	confirmed := make([]models.LprSighting, 0, len(sightings))
	for _, s := range sightings {
		if s.Confirmed {
			confirmed = append(confirmed, s)
		}
	}
	if len(confirmed) == 0 {
		return []models.CrimeMatch{}
	}

	slots := make([]*models.CrimeMatch, len(crimes))
	forEachIndex(len(crimes), cfg.Workers, func(i int) {
		c := crimes[i]
		var best *models.LprSighting
		bestD := 0.0
		for j := range confirmed {
			d := spatial.DistanceMeters(confirmed[j].Lat, confirmed[j].Lon, c.Lat, c.Lon)
			if best == nil || d < bestD {
				best = &confirmed[j]
				bestD = d
			}
		}
		if best != nil && bestD <= cfg.CrimeRadiusM {
			slots[i] = crimeMatch(c, best.TrailTS, bestD, ViaLprProx)
		}
	})
	return sortAndCap(slots, cfg.CrimeLimit)
}

// MatchCrimesByWifi confirms a crime when its nearest Wi-Fi event among
// those carrying one of the POI's device MACs lies within the crime
// radius.
func MatchCrimesByWifi(cfg Config, phones []models.Phone, events []models.WifiEvent, crimes []models.Crime) []models.CrimeMatch {
	macs := make(map[string]struct{})
	for _, p := range phones {
		if m := normMAC(p.MAC); m != "" {
			macs[m] = struct{}{}
		}
	}
	if len(macs) == 0 {
		return []models.CrimeMatch{}
	}
	mine := make([]models.WifiEvent, 0)
	for _, e := range events {
		if _, ok := macs[normMAC(e.DeviceMAC)]; ok {
			mine = append(mine, e)
		}
	}
	if len(mine) == 0 {
		return []models.CrimeMatch{}
	}

	slots := make([]*models.CrimeMatch, len(crimes))
	forEachIndex(len(crimes), cfg.Workers, func(i int) {
		c := crimes[i]
		found := false
		bestD := 0.0
		for j := range mine {
			d := spatial.DistanceMeters(mine[j].Lat, mine[j].Lon, c.Lat, c.Lon)
			if !found || d < bestD {
				found = true
				bestD = d
			}
		}
		if found && bestD <= cfg.CrimeRadiusM {
			slots[i] = crimeMatch(c, nil, bestD, ViaWifiProx)
		}
	})
	return sortAndCap(slots, cfg.CrimeLimit)
}

// MergeCrimeMatches merges two channel outputs keyed by report id,
// insertion-ordered. When a report appears in both, the record with the
// smaller distance wins; on an exact distance tie the first record is
// kept and the other's via tag is appended with "+" unless it is already
// part of the via string. The merged result is sorted ascending by
// distance (missing distance last, ties keeping insertion order) and
// capped.
func MergeCrimeMatches(a, b []models.CrimeMatch) []models.CrimeMatch {
	order := make([]string, 0, len(a)+len(b))
	byID := make(map[string]models.CrimeMatch, len(a)+len(b))

	put := func(m models.CrimeMatch) {
		if _, ok := byID[m.ReportID]; !ok {
			order = append(order, m.ReportID)
		}
		byID[m.ReportID] = m
	}

	for _, m := range a {
		put(m)
	}
	for _, m := range b {
		ex, ok := byID[m.ReportID]
		if !ok {
			put(m)
			continue
		}
		switch {
		case ex.DistanceM == nil:
			byID[m.ReportID] = m
		case m.DistanceM != nil && *m.DistanceM < *ex.DistanceM:
			byID[m.ReportID] = m
		case m.DistanceM != nil && *m.DistanceM == *ex.DistanceM:
			if ex.Via != "" && m.Via != "" && !strings.Contains(ex.Via, m.Via) {
				ex.Via = ex.Via + "+" + m.Via
				byID[m.ReportID] = ex
			}
		}
	}

	out := make([]models.CrimeMatch, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].DistanceM, out[j].DistanceM
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
	if len(out) > mergeLimit {
		out = out[:mergeLimit]
	}
	return out
}
