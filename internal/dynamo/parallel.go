package dynamo

import "sync"

// ParallelFor executes fn over disjoint chunks of [0, n) on up to four
// goroutines, falling back to a single synchronous call when n is too
// small to be worth splitting.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := 4 // Default
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
