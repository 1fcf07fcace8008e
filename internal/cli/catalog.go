package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Wassimkraiem/plant-tracker/internal/catalog"
)

// CatalogView is the printable form of a catalog.
type CatalogView struct {
	Tips     map[string][]catalog.Tip               `json:"tips"`
	Seasonal map[catalog.Season]catalog.SeasonalTip `json:"seasonal"`
}

func newCatalogView(c *catalog.Catalog) CatalogView {
	v := CatalogView{
		Tips:     make(map[string][]catalog.Tip),
		Seasonal: make(map[catalog.Season]catalog.SeasonalTip),
	}
	for _, typ := range c.Types() {
		v.Tips[typ] = c.TipsFor(typ)
	}
	for _, s := range catalog.Seasons {
		if tip, ok := c.Seasonal(s); ok {
			v.Seasonal[s] = tip
		}
	}
	return v
}

func (v CatalogView) String() string {
	var b strings.Builder
	b.WriteString("Type tips:")
	for _, typ := range slices.Sorted(maps.Keys(v.Tips)) {
		fmt.Fprintf(&b, "\n  %s", typ)
		for _, tip := range v.Tips[typ] {
			fmt.Fprintf(&b, "\n    %s %s", tip.Icon, tip.Title)
		}
	}
	b.WriteString("\nSeasonal:")
	for _, s := range catalog.Seasons {
		tip, ok := v.Seasonal[s]
		if !ok {
			continue
		}
		scope := "all types"
		if tip.OnlyType != "" {
			scope = tip.OnlyType
		}
		fmt.Fprintf(&b, "\n  %-7s %s %s (priority %d, %s)", s, tip.Icon, tip.Title, tip.Priority, scope)
	}
	return b.String()
}

// CatalogValid is the result of catalog validate.
type CatalogValid struct {
	File  string   `json:"file"`
	Types []string `json:"types"`
}

func (c CatalogValid) String() string {
	return fmt.Sprintf("✓ %s is valid (%d plant types)", c.File, len(c.Types))
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate tip catalogs",
	}

	var overlay string
	show := &cobra.Command{
		Use:           "show",
		Short:         "Print the effective catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			cat, err := opts.loadCatalog(overlay)
			if err != nil {
				return reportCatalogError(f, err)
			}
			return f.Success(newCatalogView(cat))
		},
	}
	show.Flags().StringVar(&overlay, "catalog", "", "CUE catalog overlay file")

	validate := &cobra.Command{
		Use:   "validate <file.cue>",
		Short: "Validate a CUE catalog overlay",
		Long: `Validate a CUE catalog overlay file.

Exit codes:
  0 - Catalog is valid
  1 - Catalog has errors`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogValidate(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(show)
	cmd.AddCommand(validate)
	return cmd
}

func runCatalogValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cat, err := catalog.LoadFile(path)
	if err != nil {
		var loadErr *catalog.LoadError
		if !errors.As(err, &loadErr) || loadErr.Code == catalog.ErrCodeReadFailed {
			return reportCatalogError(f, err)
		}
		if outErr := f.Error(loadErr.Code, err.Error(), map[string]string{"field": loadErr.Field}); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "invalid catalog", err)
	}

	return f.Success(CatalogValid{File: path, Types: cat.Types()})
}
