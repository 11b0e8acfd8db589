package geometry

import (
	"runtime"
	"sync"
)

// parallelMinPoints is the scene size below which curves are sampled on
// the calling goroutine.
const parallelMinPoints = 8192

// parallelFor runs fn over [0, n) split into contiguous chunks of at least
// minChunk indices, one goroutine per chunk.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	workers = max(min(workers, n/minChunk), 1)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
