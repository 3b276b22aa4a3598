package correlate

import (
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/poinet/profiler-backend-go/internal/models"
	"github.com/poinet/profiler-backend-go/internal/spatial"
)

type wifiAgg struct {
	lat     float64
	lon     float64
	hits    int64
	firstTS time.Time
	lastTS  time.Time
	ssids   map[string]struct{}
	vias    []string // insertion-ordered, unique
}

func (a *wifiAgg) add(ts time.Time, ssids []string, via string) {
	a.hits++
	if a.firstTS.IsZero() || ts.Before(a.firstTS) {
		a.firstTS = ts
	}
	if a.lastTS.IsZero() || ts.After(a.lastTS) {
		a.lastTS = ts
	}
	for _, s := range ssids {
		a.ssids[s] = struct{}{}
	}
	for _, v := range a.vias {
		if v == via {
			return
		}
	}
	a.vias = append(a.vias, via)
}

// round6 rounds a coordinate to 6 decimal places, the aggregation key
// resolution (about 0.1 m).
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func spotKey(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', 6, 64) + "|" + strconv.FormatFloat(lon, 'f', 6, 64)
}

// WifiSpots aggregates Wi-Fi sightings near the POI from two independent
// channels: events close to a trail ping in both time and space
// ("proximity"), and events whose device MAC matches one of the POI's
// phones ("device_mac", no time or distance constraint). Both channels
// feed one aggregate keyed by the event coordinates rounded to 6 decimals,
// so a location reached through both channels is a single spot with both
// via tags.
func WifiSpots(cfg Config, trail []models.TrailPing, phones []models.Phone, events []models.WifiEvent) []models.WifiSpot {
	agg := make(map[string]*wifiAgg)
	var mu sync.Mutex

	hit := func(e models.WifiEvent, via string) {
		lat, lon := round6(e.Lat), round6(e.Lon)
		key := spotKey(lat, lon)
		mu.Lock()
		a := agg[key]
		if a == nil {
			a = &wifiAgg{lat: lat, lon: lon, ssids: make(map[string]struct{})}
			agg[key] = a
		}
		a.add(e.TS, e.SSIDs, via)
		mu.Unlock()
	}

	window := time.Duration(cfg.WifiWindowMin) * time.Minute
	forEachIndex(len(trail), cfg.Workers, func(i int) {
		p := trail[i]
		for _, e := range events {
			dt := p.TS.Sub(e.TS)
			if dt < 0 {
				dt = -dt
			}
			if dt > window {
				continue
			}
			if spatial.DistanceMeters(p.Lat, p.Lon, e.Lat, e.Lon) > cfg.WifiRadiusM {
				continue
			}
			hit(e, ViaProximity)
		}
	})

	macs := make(map[string]struct{})
	for _, p := range phones {
		if m := normMAC(p.MAC); m != "" {
			macs[m] = struct{}{}
		}
	}
	if len(macs) > 0 {
		forEachIndex(len(events), cfg.Workers, func(i int) {
			e := events[i]
			m := normMAC(e.DeviceMAC)
			if m == "" {
				return
			}
			if _, ok := macs[m]; ok {
				hit(e, ViaDeviceMAC)
			}
		})
	}

	keys := make([]string, 0, len(agg))
	for k := range agg {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := agg[keys[i]], agg[keys[j]]
		if a.hits != b.hits {
			return a.hits > b.hits
		}
		return keys[i] < keys[j]
	})
	if len(keys) > cfg.WifiLimit {
		keys = keys[:cfg.WifiLimit]
	}

	out := make([]models.WifiSpot, 0, len(keys))
	for _, k := range keys {
		a := agg[k]
		ssids := make([]string, 0, len(a.ssids))
		seen := make(map[string]struct{}, len(a.ssids))
		for s := range a.ssids {
			n := upperTrim(s)
			if n == "" {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			ssids = append(ssids, n)
		}
		sort.Strings(ssids)
		out = append(out, models.WifiSpot{
			Lat:     a.lat,
			Lon:     a.lon,
			SSIDs:   ssids,
			FirstTS: a.firstTS,
			LastTS:  a.lastTS,
			Hits:    a.hits,
			Via:     joinVias(a.vias),
		})
	}
	return out
}

func joinVias(vias []string) string {
	out := ""
	for i, v := range vias {
		if i > 0 {
			out += "+"
		}
		out += v
	}
	return out
}
