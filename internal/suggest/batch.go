package suggest

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 4

// Aggregator evaluates a batch of plants, optionally in parallel.
//
// Output order always equals input order: each worker writes its result into
// the slot of its input index, and filtering happens after every plant has
// been evaluated.
type Aggregator struct {
	engine  *Engine
	workers int
}

// NewAggregator returns an aggregator running engine on at most workers
// goroutines. workers <= 1 evaluates sequentially.
func NewAggregator(engine *Engine, workers int) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{engine: engine, workers: workers}
}

// Workers returns the configured pool size.
func (a *Aggregator) Workers() int {
	return a.workers
}

// EvaluateAll evaluates every plant at now and returns the entries with at
// least one suggestion, in input order.
func (a *Aggregator) EvaluateAll(plants []garden.Plant, now time.Time) []PlantSuggestions {
	if a.workers == 1 || len(plants) < 2 {
		return a.engine.EvaluateAll(plants, now)
	}

	results := make([]PlantSuggestions, len(plants))

	var g errgroup.Group
	g.SetLimit(a.workers)
	for i := range plants {
		g.Go(func() error {
			results[i] = a.engine.Evaluate(plants[i], now)
			return nil
		})
	}
	// Evaluate cannot fail; Wait only joins the workers.
	_ = g.Wait()

	out := []PlantSuggestions{}
	for _, ps := range results {
		if !ps.IsEmpty() {
			out = append(out, ps)
		}
	}
	return out
}
