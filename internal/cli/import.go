package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// ImportResult is the result of the import command.
type ImportResult struct {
	Created []int64 `json:"created"`
}

func (r ImportResult) String() string {
	return fmt.Sprintf("Imported %d plant(s)", len(r.Created))
}

// NewImportCommand creates the import command.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <garden.yaml>",
		Short: "Import plants from a YAML garden document",
		Long: `Import plants, with their watering logs and care tasks, from a YAML
garden document. Every plant is validated first and all plants are
written in one transaction: nothing is stored when any plant is invalid or
any write fails.

Example:
  plantcare import ./garden.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	now := opts.now()

	doc, err := garden.LoadDocument(path)
	if err != nil {
		if outErr := f.Error(ErrCodeGeneric, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "failed to load garden", err)
	}

	plants := doc.ToPlants(opts.UserID)
	if problems := garden.ValidateAll(plants, now); len(problems) > 0 {
		return reportValidation(f, "garden", problems)
	}
	f.VerboseLog("Validated %d plant(s) from %s", len(plants), path)

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	ids, err := st.CreatePlants(cmd.Context(), plants)
	if err != nil {
		return reportStoreError(f, "failed to import plants", err)
	}
	result := ImportResult{Created: ids}

	opts.logger().Info("garden imported", "path", path, "plants", len(result.Created))
	return f.Success(result)
}
