package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Wassimkraiem/plant-tracker/internal/catalog"
	"github.com/Wassimkraiem/plant-tracker/internal/garden"
	"github.com/Wassimkraiem/plant-tracker/internal/suggest"
)

// SuggestOptions holds flags for the suggest command.
type SuggestOptions struct {
	*RootOptions
	Now     string
	Workers int
	Catalog string
}

// SuggestReport is the result of the suggest command.
type SuggestReport struct {
	Now         time.Time                  `json:"now"`
	Fingerprint string                     `json:"fingerprint"`
	Plants      []suggest.PlantSuggestions `json:"plants"`
}

func (r SuggestReport) String() string {
	if len(r.Plants) == 0 {
		return "No suggestions. Your plants are in good shape."
	}
	var b strings.Builder
	for i, ps := range r.Plants {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (#%d)", ps.PlantName, ps.PlantID)
		if len(ps.Suggestions) == 0 {
			b.WriteString("\n  nothing to do")
		}
		for _, s := range ps.Suggestions {
			fmt.Fprintf(&b, "\n  [%2d] %s %s: %s", s.Priority, s.Icon, s.Title, s.Message)
		}
	}
	return b.String()
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SuggestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "suggest [plant-id]",
		Short: "Show care suggestions",
		Long: `Show prioritized care suggestions.

With a plant id, prints that plant's suggestions (possibly none). Without
one, evaluates every plant of the user and lists only plants that have
suggestions.

JSON output carries a trace id for the run and a fingerprint of the
suggestions: identical gardens evaluated at the same instant produce the
same fingerprint.

Examples:
  plantcare suggest
  plantcare suggest 3 --now 2024-07-10
  plantcare suggest --workers 8 --catalog herbs.cue --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Now, "now", "", "evaluation time (default current time)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel workers for all-plant evaluation (default from PLANTCARE_WORKERS)")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "CUE catalog overlay file")

	return cmd
}

func runSuggest(opts *SuggestOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	f.TraceID = opts.TraceIDs.Generate()
	log := opts.logger().With("trace_id", f.TraceID)

	now := opts.now()
	if opts.Now != "" {
		var err error
		if now, err = parseDate("now", opts.Now); err != nil {
			return err
		}
	}

	var plantID int64
	if len(args) == 1 {
		var err error
		if plantID, err = parseID("plant", args[0]); err != nil {
			return err
		}
	}

	workers := opts.Workers
	if workers == 0 {
		workers = opts.RootOptions.Workers
	}
	if workers < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --workers %d: must be positive", workers))
	}

	cat, err := opts.loadCatalog(opts.Catalog)
	if err != nil {
		return reportCatalogError(f, err)
	}
	engine := suggest.New(suggest.WithCatalog(cat))

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	var results []suggest.PlantSuggestions
	if plantID != 0 {
		p, err := st.GetPlant(cmd.Context(), opts.UserID, plantID)
		if err != nil {
			return reportStoreError(f, "failed to load plant", err)
		}
		results = []suggest.PlantSuggestions{engine.Evaluate(p, now)}
	} else {
		var plants []garden.Plant
		if plants, err = st.ListPlants(cmd.Context(), opts.UserID); err != nil {
			return reportStoreError(f, "failed to list plants", err)
		}
		agg := suggest.NewAggregator(engine, workers)
		log.Debug("evaluating garden", "plants", len(plants), "workers", agg.Workers())
		results = agg.EvaluateAll(plants, now)
	}

	fingerprint, err := suggest.Fingerprint(results)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to fingerprint suggestions", err)
	}

	log.Info("suggestions evaluated",
		"now", now.Format(time.RFC3339),
		"reported", len(results),
		"fingerprint", fingerprint)

	return f.Success(SuggestReport{Now: now, Fingerprint: fingerprint, Plants: results})
}

// reportCatalogError prints a catalog load failure as a command error.
func reportCatalogError(f *OutputFormatter, err error) error {
	var details any
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		details = map[string]string{"code": loadErr.Code, "field": loadErr.Field}
	}
	if outErr := f.Error(ErrCodeCatalog, err.Error(), details); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "failed to load catalog", err)
}
