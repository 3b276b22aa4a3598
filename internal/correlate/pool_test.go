package correlate

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poinet/profiler-backend-go/internal/models"
)

func TestForEachIndexCoversAllIndices(t *testing.T) {
	var calls int64
	seen := make([]int32, 1000)
	forEachIndex(1000, 8, func(i int) {
		atomic.AddInt64(&calls, 1)
		atomic.AddInt32(&seen[i], 1)
	})
	assert.Equal(t, int64(1000), calls)
	for i, c := range seen {
		require.Equal(t, int32(1), c, "index %d", i)
	}
}

func TestForEachIndexZeroItems(t *testing.T) {
	ran := false
	forEachIndex(0, 4, func(i int) { ran = true })
	assert.False(t, ran)
}

func TestForEachIndexDefaultsWorkers(t *testing.T) {
	var mu sync.Mutex
	total := 0
	forEachIndex(10, 0, func(i int) {
		mu.Lock()
		total += i
		mu.Unlock()
	})
	assert.Equal(t, 45, total)
}

// The keyed reduction must yield the same aggregate no matter how the
// scheduler interleaves workers.
func TestBusinessVisitsDeterministicAcrossWorkerCounts(t *testing.T) {
	biz := []models.Business{
		{ID: "a", Lat: 39.29, Lon: -76.61},
		{ID: "b", Lat: 39.30, Lon: -76.60},
	}
	trail := make([]models.TrailPing, 0, 200)
	for h := 0; h < 10; h++ {
		for m := 0; m < 20; m++ {
			lat, lon := 39.29, -76.61
			if m%2 == 0 {
				lat, lon = 39.30, -76.60
			}
			trail = append(trail, models.TrailPing{TS: at(h, m), Lat: lat, Lon: lon})
		}
	}

	cfg := DefaultConfig()
	cfg.Workers = 1
	base := BusinessVisits(cfg, trail, biz)
	for _, w := range []int{2, 4, 16} {
		cfg.Workers = w
		assert.Equal(t, base, BusinessVisits(cfg, trail, biz), "workers=%d", w)
	}
}

func TestNormMAC(t *testing.T) {
	assert.Equal(t, "AABBCCDDEEFF", normMAC("aa:bb:cc:dd:ee:ff"))
	assert.Equal(t, "AABBCCDDEEFF", normMAC("AA-BB-CC-DD-EE-FF"))
	assert.Equal(t, "", normMAC(""))
	assert.Equal(t, "", normMAC("zz:zz"))
}

func TestUpperTrim(t *testing.T) {
	assert.Equal(t, "MAIN ST", upperTrim("  main st "))
	assert.Equal(t, "", upperTrim("   "))
}
