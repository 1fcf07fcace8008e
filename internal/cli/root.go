package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Wassimkraiem/plant-tracker/internal/catalog"
	"github.com/Wassimkraiem/plant-tracker/internal/config"
	"github.com/Wassimkraiem/plant-tracker/internal/store"
	"github.com/Wassimkraiem/plant-tracker/internal/suggest"
)

// RootOptions holds global flags and shared collaborators for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string
	UserID   int64
	Workers  int
	Catalog  string
	LogLevel string // debug | info | warn | error

	// Clock supplies the current time. Defaults to suggest.SystemClock.
	Clock suggest.Clock

	// TraceIDs generates run correlation ids. Defaults to UUIDv7Generator.
	TraceIDs TraceIDGenerator

	// Logger is built in PersistentPreRunE and writes to the command's
	// stderr.
	Logger *slog.Logger
}

// NewRootCommand creates the root command with defaults taken from cfg.
func NewRootCommand(cfg config.Config) *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{
		Format:   cfg.Format,
		Database: cfg.DBPath,
		UserID:   cfg.UserID,
		Workers:  cfg.Workers,
		Catalog:  cfg.Catalog,
		LogLevel: cfg.LogLevel,
	})
}

// NewRootCommandWithOptions creates the root command around opts. Flag
// defaults are the current field values.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	if opts.Clock == nil {
		opts.Clock = suggest.SystemClock{}
	}
	if opts.TraceIDs == nil {
		opts.TraceIDs = UUIDv7Generator{}
	}

	cmd := &cobra.Command{
		Use:   "plantcare",
		Short: "plantcare - track plants and get care suggestions",
		Long: `Track plants, watering and care tasks, and get prioritized care
suggestions computed from each plant's state, the date and its type.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings := opts.settings()
			if err := settings.Validate(); err != nil {
				return err
			}

			level := settings.Level()
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaultString(opts.Format, "text"), "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", defaultString(opts.Database, "plantcare.db"), "path to SQLite database")
	cmd.PersistentFlags().Int64Var(&opts.UserID, "user", defaultInt64(opts.UserID, 1), "owner user id")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", defaultString(opts.LogLevel, "info"), "log level (debug|info|warn|error)")

	cmd.AddCommand(NewPlantCommand(opts))
	cmd.AddCommand(NewWaterCommand(opts))
	cmd.AddCommand(NewTaskCommand(opts))
	cmd.AddCommand(NewSuggestCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

// settings returns the effective configuration after flags are applied.
// Environment values are only checked here, so a flag can replace a bad one.
func (o *RootOptions) settings() config.Config {
	return config.Config{
		DBPath:   o.Database,
		UserID:   o.UserID,
		Workers:  o.Workers,
		Catalog:  o.Catalog,
		Format:   o.Format,
		LogLevel: o.LogLevel,
	}
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o *RootOptions) now() time.Time {
	return o.Clock.Now().UTC()
}

// openStore opens the configured database.
func (o *RootOptions) openStore() (*store.Store, error) {
	st, err := store.Open(o.Database,
		store.WithLogger(o.logger()),
		store.WithNow(o.now),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func (o *RootOptions) closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		o.logger().Error("error closing database", "error", err)
	}
}

// loadCatalog returns the built-in catalog, or the built-in catalog with
// the CUE file at path laid over it.
func (o *RootOptions) loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		path = o.Catalog
	}
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	o.logger().Debug("catalog loaded", "path", path, "types", len(cat.Types()))
	return cat, nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt64(v, def int64) int64 {
	if v == 0 {
		return def
	}
	return v
}
