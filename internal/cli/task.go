package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// TaskAddOptions holds flags for the task add command.
type TaskAddOptions struct {
	*RootOptions
	Name        string
	Description string
	Due         string
}

// TaskCreated is the result of task add.
type TaskCreated struct {
	ID      int64  `json:"id"`
	PlantID int64  `json:"plantId"`
	Name    string `json:"name"`
}

func (t TaskCreated) String() string {
	return fmt.Sprintf("Added task %d (%s) to plant %d", t.ID, t.Name, t.PlantID)
}

// TaskUpdated is the result of task done.
type TaskUpdated struct {
	ID        int64 `json:"id"`
	Completed bool  `json:"completed"`
}

func (t TaskUpdated) String() string {
	if t.Completed {
		return fmt.Sprintf("Task %d completed", t.ID)
	}
	return fmt.Sprintf("Task %d reopened", t.ID)
}

// TaskRemoved is the result of task remove.
type TaskRemoved struct {
	ID int64 `json:"id"`
}

func (t TaskRemoved) String() string {
	return fmt.Sprintf("Removed task %d", t.ID)
}

// NewTaskCommand creates the task command group.
func NewTaskCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage care tasks",
	}

	cmd.AddCommand(newTaskAddCommand(rootOpts))
	cmd.AddCommand(newTaskDoneCommand(rootOpts))
	cmd.AddCommand(newTaskRemoveCommand(rootOpts))

	return cmd
}

func newTaskAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TaskAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <plant-id>",
		Short: "Add a care task to a plant",
		Long: `Add a care task to a plant. Tasks without --due never count as
overdue or upcoming.

Example:
  plantcare task add 3 --name Fertilize --due 2024-06-03`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "task name (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "task description")
	cmd.Flags().StringVar(&opts.Due, "due", "", "due date")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runTaskAdd(opts *TaskAddOptions, arg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	plantID, err := parseID("plant", arg)
	if err != nil {
		return err
	}
	due, err := parseOptionalDate("due", opts.Due)
	if err != nil {
		return err
	}

	t := garden.CareTask{
		PlantID:     plantID,
		TaskName:    opts.Name,
		Description: opts.Description,
		DueDate:     due,
	}
	if errs := garden.ValidateTask(t); len(errs) > 0 {
		return reportValidation(f, "care task", errs)
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	id, err := st.AddCareTask(cmd.Context(), opts.UserID, t)
	if err != nil {
		return reportStoreError(f, "failed to add task", err)
	}

	opts.logger().Info("care task added", "plant_id", plantID, "task_id", id)
	return f.Success(TaskCreated{ID: id, PlantID: plantID, Name: t.TaskName})
}

func newTaskDoneCommand(opts *RootOptions) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:           "done <task-id>",
		Short:         "Mark a care task completed",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}

			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer opts.closeStore(st)

			if err := st.SetTaskCompleted(cmd.Context(), opts.UserID, id, !undo); err != nil {
				return reportStoreError(f, "failed to update task", err)
			}
			return f.Success(TaskUpdated{ID: id, Completed: !undo})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "reopen a completed task")

	return cmd
}

func newTaskRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <task-id>",
		Short:         "Delete a care task",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}

			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer opts.closeStore(st)

			if err := st.DeleteCareTask(cmd.Context(), opts.UserID, id); err != nil {
				return reportStoreError(f, "failed to remove task", err)
			}

			opts.logger().Info("care task removed", "task_id", id, "user_id", opts.UserID)
			return f.Success(TaskRemoved{ID: id})
		},
	}
}
