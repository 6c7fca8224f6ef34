package app

import (
	"context"
	"sync"
	"time"

	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/domain/facet"
	"github.com/volleykit/drillboard/pkg/logger"
	"github.com/volleykit/drillboard/pkg/metrics"
)

// fetchFunc issues one read against the remote catalog.
type fetchFunc func(ctx context.Context, p facet.Params) ([]drill.Drill, error)

// fetcher runs the catalog fetch cycle: a single worker goroutine fed
// by a latest-wins request slot. Each request captures a generation
// number at start; completions whose generation is no longer current
// are dropped so a stale response never overwrites newer state.
type fetcher struct {
	mu     sync.Mutex
	gen    uint64
	params facet.Params

	wake     chan struct{}
	fetch    fetchFunc
	onResult func(gen uint64, drills []drill.Drill, err error)
	log      logger.Logger

	started bool
	stopCh  chan struct{}
	done    chan struct{}
}

func newFetcher(fetch fetchFunc, onResult func(uint64, []drill.Drill, error), log logger.Logger) *fetcher {
	return &fetcher{
		wake:     make(chan struct{}, 1),
		fetch:    fetch,
		onResult: onResult,
		log:      log,
	}
}

// Start launches the worker goroutine.
func (f *fetcher) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started {
		return
	}
	f.started = true
	f.stopCh = make(chan struct{})
	f.done = make(chan struct{})
	go f.run(ctx)
}

// Stop tears the worker down and waits for it to exit.
func (f *fetcher) Stop() {
	f.mu.Lock()
	if !f.started {
		f.mu.Unlock()
		return
	}
	f.started = false
	close(f.stopCh)
	done := f.done
	f.mu.Unlock()
	<-done
}

// Request replaces any pending request with p. The newest request
// always wins; intermediate filter states that were never fetched are
// simply skipped.
func (f *fetcher) Request(p facet.Params) uint64 {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.params = p
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default: // a wakeup is already pending; the worker will pick up the latest state
	}
	return gen
}

// Invalidate bumps the generation without scheduling a fetch, so any
// in-flight response is discarded on arrival. Returns the new
// generation.
func (f *fetcher) Invalidate() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	return f.gen
}

// current returns the latest issued generation.
func (f *fetcher) current() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

func (f *fetcher) run(ctx context.Context) {
	defer close(f.done)
	for {
		select {
		case <-f.stopCh:
			return
		case <-ctx.Done():
			return
		case <-f.wake:
		}

		f.mu.Lock()
		gen := f.gen
		params := f.params
		f.mu.Unlock()

		start := time.Now()
		metrics.RecordFetch()
		drills, err := f.fetch(ctx, params)
		metrics.RecordFetchLatency(float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.RecordFetchError()
		}

		f.mu.Lock()
		stale := gen != f.gen
		f.mu.Unlock()
		if stale {
			metrics.RecordStaleDropped()
			f.log.Debug(ctx, "dropping stale fetch result", logger.Int("gen", int(gen)))
			continue
		}
		f.onResult(gen, drills, err)
	}
}
