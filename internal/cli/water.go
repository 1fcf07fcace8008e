package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// WaterOptions holds flags for the water command.
type WaterOptions struct {
	*RootOptions
	At    string
	Notes string
}

// Watered is the result of the water command.
type Watered struct {
	LogID   int64  `json:"logId"`
	PlantID int64  `json:"plantId"`
	At      string `json:"at"`
}

func (w Watered) String() string {
	return fmt.Sprintf("Watered plant %d at %s", w.PlantID, w.At)
}

// NewWaterCommand creates the water command.
func NewWaterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WaterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "water <plant-id>",
		Short: "Record a watering",
		Long: `Record a watering for a plant. The plant's last watered date moves
forward when the new log is the most recent one.

Examples:
  plantcare water 3
  plantcare water 3 --at 2024-06-01T08:00:00Z --notes "deep soak"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWater(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "watering time (default now)")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")

	return cmd
}

func runWater(opts *WaterOptions, arg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	now := opts.now()

	plantID, err := parseID("plant", arg)
	if err != nil {
		return err
	}
	at := now
	if opts.At != "" {
		if at, err = parseDate("at", opts.At); err != nil {
			return err
		}
	}

	l := garden.WateringLog{PlantID: plantID, WateredDate: at, Notes: opts.Notes}
	if errs := garden.ValidateLog(l, now); len(errs) > 0 {
		return reportValidation(f, "watering log", errs)
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	id, err := st.AddWateringLog(cmd.Context(), opts.UserID, l)
	if err != nil {
		return reportStoreError(f, "failed to record watering", err)
	}

	opts.logger().Info("watering recorded", "plant_id", plantID, "log_id", id)
	return f.Success(Watered{LogID: id, PlantID: plantID, At: at.Format("2006-01-02T15:04:05Z07:00")})
}
