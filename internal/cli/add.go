package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/todolor/internal/task"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Name     string
	Desc     string
	Deadline string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add new task",
		Long: `Add a new pending task.

Example:
  todolor add --name "Buy milk" --desc "2 litres" --deadline "2024-05-01 18:00:00"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addTask(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "name of the task (required)")
	cmd.Flags().StringVarP(&opts.Desc, "desc", "d", "", "description of the task")
	cmd.Flags().StringVarP(&opts.Deadline, "deadline", "l", "", "deadline as YYYY-MM-DD HH:MM:SS")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func addTask(opts *AddOptions, cmd *cobra.Command) error {
	t := task.Task{
		Title:       normalizeText(opts.Name),
		Description: normalizeText(opts.Desc),
	}
	if opts.Deadline != "" {
		ms, err := parseDeadline(opts.Deadline, opts.location())
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --deadline", err)
		}
		t.Deadline = &ms
	}

	svc, err := openService(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	id, err := svc.Add(t)
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(fmt.Sprintf("Added new task with ID %d", id), map[string]int{"id": id})
}
