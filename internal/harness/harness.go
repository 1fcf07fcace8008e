package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Wassimkraiem/plant-tracker/internal/catalog"
	"github.com/Wassimkraiem/plant-tracker/internal/store"
	"github.com/Wassimkraiem/plant-tracker/internal/suggest"
)

// ScenarioOwner is the user id every scenario plant is stored under.
const ScenarioOwner int64 = 1

// Harness holds the per-run collaborators for one scenario.
type Harness struct {
	store      *store.Store
	aggregator *suggest.Aggregator
	now        time.Time
	logger     *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database:
// 1. Insert every plant for ScenarioOwner
// 2. Read the garden back by owner, in id order
// 3. Run the aggregator at scenario.Now
// 4. Evaluate assertions against the output
//
// The returned error covers setup problems (bad catalog, store failure).
// Assertion failures are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	cat := catalog.Default()
	if scenario.Catalog != "" {
		loaded, err := catalog.LoadFile(scenario.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = loaded
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(store.MemoryPath,
		store.WithLogger(logger),
		store.WithNow(func() time.Time { return scenario.Now }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	workers := scenario.Workers
	if workers == 0 {
		workers = 1
	}

	h := &Harness{
		store:      st,
		aggregator: suggest.NewAggregator(suggest.New(suggest.WithCatalog(cat)), workers),
		now:        scenario.Now,
		logger:     logger,
	}

	ctx := context.Background()
	if err := h.seed(ctx, scenario); err != nil {
		return nil, err
	}

	result := NewResult()
	output, err := h.evaluate(ctx)
	if err != nil {
		return nil, err
	}
	result.Output = output

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// seed stores the scenario garden.
func (h *Harness) seed(ctx context.Context, scenario *Scenario) error {
	for i, rec := range scenario.Plants {
		if _, err := h.store.CreatePlant(ctx, rec.ToPlant(ScenarioOwner)); err != nil {
			return fmt.Errorf("plants[%d]: %w", i, err)
		}
	}
	h.logger.Debug("scenario garden stored", "plants", len(scenario.Plants))
	return nil
}

// evaluate reads the garden back and runs the aggregator over it.
func (h *Harness) evaluate(ctx context.Context) ([]suggest.PlantSuggestions, error) {
	plants, err := h.store.ListPlants(ctx, ScenarioOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	return h.aggregator.EvaluateAll(plants, h.now), nil
}
