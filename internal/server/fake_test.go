package server

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/starford/sift/internal/index"
)

// fakeSearcher records every query and returns canned data.
type fakeSearcher struct {
	mu       sync.Mutex
	queries  []string
	results  []index.Result
	stats    index.Stats
	err      error
	panicOn  string
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeSearcher) enter() func() {
	n := f.inFlight.Add(1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeSearcher) Search(query string) ([]index.Result, error) {
	defer f.enter()()
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.panicOn != "" && query == f.panicOn {
		panic("index exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeSearcher) Stats() (index.Stats, error) {
	defer f.enter()()
	if f.err != nil {
		return index.Stats{}, f.err
	}
	return f.stats, nil
}

func (f *fakeSearcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// ranked returns n results with strictly descending scores.
func ranked(n int) []index.Result {
	out := make([]index.Result, n)
	for i := range out {
		out[i] = index.Result{Location: fmt.Sprintf("doc-%02d.txt", i), Score: float64(n - i)}
	}
	return out
}
