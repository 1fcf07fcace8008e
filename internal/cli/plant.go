package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// PlantAddOptions holds flags for the plant add command.
type PlantAddOptions struct {
	*RootOptions
	Name        string
	Type        string
	Description string
	Planted     string
	LastWatered string
	Frequency   int
}

// PlantCreated is the result of plant add.
type PlantCreated struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p PlantCreated) String() string {
	return fmt.Sprintf("Created plant %d (%s)", p.ID, p.Name)
}

// PlantList is the result of plant list.
type PlantList struct {
	Plants []garden.Plant `json:"plants"`
}

func (l PlantList) String() string {
	if len(l.Plants) == 0 {
		return "No plants."
	}
	var b strings.Builder
	for i, p := range l.Plants {
		if i > 0 {
			b.WriteByte('\n')
		}
		last := "never watered"
		if p.LastWateredDate != nil {
			last = "last watered " + p.LastWateredDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%-4d %-20s %-12s every %d days, %s, %d open task(s)",
			p.ID, p.Name, p.Type, p.WateringFrequencyDays, last, openTasks(p))
	}
	return b.String()
}

func openTasks(p garden.Plant) int {
	n := 0
	for _, t := range p.CareTasks.Items() {
		if !t.IsCompleted {
			n++
		}
	}
	return n
}

// PlantDetail is the result of plant show.
type PlantDetail struct {
	Plant           garden.Plant         `json:"plant"`
	WateringHistory []garden.WateringLog `json:"wateringHistory"`
}

func (d PlantDetail) String() string {
	var b strings.Builder
	p := d.Plant
	fmt.Fprintf(&b, "%s (#%d), %s, planted %s, water every %d days",
		p.Name, p.ID, p.Type, p.PlantedDate.Format(time.DateOnly), p.WateringFrequencyDays)
	if p.Description != "" {
		fmt.Fprintf(&b, "\n  %s", p.Description)
	}

	b.WriteString("\nWatering history:")
	if len(d.WateringHistory) == 0 {
		b.WriteString("\n  none")
	}
	for _, l := range d.WateringHistory {
		fmt.Fprintf(&b, "\n  %s", l.WateredDate.Format("2006-01-02 15:04"))
		if l.Notes != "" {
			fmt.Fprintf(&b, "  %s", l.Notes)
		}
	}

	b.WriteString("\nTasks:")
	if p.CareTasks.IsEmpty() {
		b.WriteString("\n  none")
	}
	for _, t := range p.CareTasks.Items() {
		mark := " "
		if t.IsCompleted {
			mark = "x"
		}
		fmt.Fprintf(&b, "\n  [%s] #%d %s", mark, t.ID, t.TaskName)
		if t.DueDate != nil {
			fmt.Fprintf(&b, " (due %s)", t.DueDate.Format(time.DateOnly))
		}
	}
	return b.String()
}

// PlantUpdateOptions holds flags for the plant update command. Only flags
// given on the command line change the plant.
type PlantUpdateOptions struct {
	PlantAddOptions
}

// plantFields are the flags plant update can change.
var plantFields = []string{"name", "type", "description", "planted", "last-watered", "frequency"}

// PlantUpdated is the result of plant update.
type PlantUpdated struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p PlantUpdated) String() string {
	return fmt.Sprintf("Updated plant %d (%s)", p.ID, p.Name)
}

// PlantRemoved is the result of plant remove.
type PlantRemoved struct {
	ID int64 `json:"id"`
}

func (p PlantRemoved) String() string {
	return fmt.Sprintf("Removed plant %d", p.ID)
}

// NewPlantCommand creates the plant command group.
func NewPlantCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plant",
		Short: "Manage plants",
	}

	cmd.AddCommand(newPlantAddCommand(rootOpts))
	cmd.AddCommand(newPlantListCommand(rootOpts))
	cmd.AddCommand(newPlantShowCommand(rootOpts))
	cmd.AddCommand(newPlantUpdateCommand(rootOpts))
	cmd.AddCommand(newPlantRemoveCommand(rootOpts))

	return cmd
}

func newPlantAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlantAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a plant",
		Long: `Add a plant for the current user.

Example:
  plantcare plant add --name Roma --type Tomato --planted 2024-05-01 --frequency 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlantAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "plant name (required)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "plant type, e.g. Tomato (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&opts.Planted, "planted", "", "planted date (default now)")
	cmd.Flags().StringVar(&opts.LastWatered, "last-watered", "", "last watered date")
	cmd.Flags().IntVar(&opts.Frequency, "frequency", 0, "watering frequency in days (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("frequency")

	return cmd
}

func runPlantAdd(opts *PlantAddOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	now := opts.now()

	planted := now
	if opts.Planted != "" {
		var err error
		if planted, err = parseDate("planted", opts.Planted); err != nil {
			return err
		}
	}
	lastWatered, err := parseOptionalDate("last-watered", opts.LastWatered)
	if err != nil {
		return err
	}

	p := garden.Plant{
		UserID:                opts.UserID,
		Name:                  opts.Name,
		Type:                  opts.Type,
		Description:           opts.Description,
		PlantedDate:           planted,
		WateringFrequencyDays: opts.Frequency,
		LastWateredDate:       lastWatered,
	}
	if errs := garden.Validate(p, now); len(errs) > 0 {
		return reportValidation(f, "plant", errs)
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	id, err := st.CreatePlant(cmd.Context(), p)
	if err != nil {
		return reportStoreError(f, "failed to create plant", err)
	}

	opts.logger().Info("plant added", "plant_id", id, "user_id", opts.UserID)
	return f.Success(PlantCreated{ID: id, Name: p.Name})
}

func newPlantListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List plants",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)

			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer opts.closeStore(st)

			plants, err := st.ListPlants(cmd.Context(), opts.UserID)
			if err != nil {
				return reportStoreError(f, "failed to list plants", err)
			}
			return f.Success(PlantList{Plants: plants})
		},
	}
}

func newPlantShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <plant-id>",
		Short:         "Show a plant with its watering history and care tasks",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			id, err := parseID("plant", args[0])
			if err != nil {
				return err
			}

			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer opts.closeStore(st)

			p, err := st.GetPlant(cmd.Context(), opts.UserID, id)
			if err != nil {
				return reportStoreError(f, "failed to load plant", err)
			}
			history, err := st.ListWateringLogs(cmd.Context(), opts.UserID, id)
			if err != nil {
				return reportStoreError(f, "failed to load watering history", err)
			}
			return f.Success(PlantDetail{Plant: p, WateringHistory: history})
		},
	}
}

func newPlantUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlantUpdateOptions{PlantAddOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "update <plant-id>",
		Short: "Change a plant's details",
		Long: `Change a plant's details. Only the flags given are changed; watering
logs and care tasks are kept.

Example:
  plantcare plant update 3 --name "San Marzano" --frequency 2`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlantUpdate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "plant name")
	cmd.Flags().StringVar(&opts.Type, "type", "", "plant type")
	cmd.Flags().StringVar(&opts.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&opts.Planted, "planted", "", "planted date")
	cmd.Flags().StringVar(&opts.LastWatered, "last-watered", "", "last watered date")
	cmd.Flags().IntVar(&opts.Frequency, "frequency", 0, "watering frequency in days")

	return cmd
}

func runPlantUpdate(opts *PlantUpdateOptions, arg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	now := opts.now()
	flags := cmd.Flags()

	id, err := parseID("plant", arg)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(plantFields, flags.Changed) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("nothing to update: pass at least one of --%s", strings.Join(plantFields, ", --")))
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	p, err := st.GetPlant(cmd.Context(), opts.UserID, id)
	if err != nil {
		return reportStoreError(f, "failed to load plant", err)
	}

	if flags.Changed("name") {
		p.Name = opts.Name
	}
	if flags.Changed("type") {
		p.Type = opts.Type
	}
	if flags.Changed("description") {
		p.Description = opts.Description
	}
	if flags.Changed("frequency") {
		p.WateringFrequencyDays = opts.Frequency
	}
	if flags.Changed("planted") {
		if p.PlantedDate, err = parseDate("planted", opts.Planted); err != nil {
			return err
		}
	}
	if flags.Changed("last-watered") {
		if p.LastWateredDate, err = parseOptionalDate("last-watered", opts.LastWatered); err != nil {
			return err
		}
	}

	if errs := garden.Validate(p, now); len(errs) > 0 {
		return reportValidation(f, "plant", errs)
	}
	if err := st.UpdatePlant(cmd.Context(), p); err != nil {
		return reportStoreError(f, "failed to update plant", err)
	}

	opts.logger().Info("plant updated", "plant_id", id, "user_id", opts.UserID)
	return f.Success(PlantUpdated{ID: id, Name: p.Name})
}

func newPlantRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <plant-id>",
		Short:         "Remove a plant with its watering logs and care tasks",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			id, err := parseID("plant", args[0])
			if err != nil {
				return err
			}

			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer opts.closeStore(st)

			if err := st.DeletePlant(cmd.Context(), opts.UserID, id); err != nil {
				return reportStoreError(f, "failed to remove plant", err)
			}

			opts.logger().Info("plant removed", "plant_id", id, "user_id", opts.UserID)
			return f.Success(PlantRemoved{ID: id})
		},
	}
}
