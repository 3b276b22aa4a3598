package correlate

import (
	"regexp"
	"runtime"
	"strings"
	"sync"
)

// forEachIndex fans the indices [0, n) out to a fixed pool of workers and
// blocks until every fn call returns. Callers that aggregate into shared
// state must synchronize inside fn; callers that write disjoint slice
// slots need no locking.
func forEachIndex(n, workers int, fn func(i int)) {
	if n == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		idx <- i
	}
	close(idx)
	wg.Wait()
}

var nonHex = regexp.MustCompile(`[^A-F0-9]`)

// normMAC uppercases a MAC and strips everything that is not a hex digit,
// so "aa:bb:cc" and "AA-BB-CC" compare equal.
func normMAC(mac string) string {
	return nonHex.ReplaceAllString(strings.ToUpper(mac), "")
}

// upperTrim is the exact-match normalization used everywhere names and
// addresses are compared.
func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
