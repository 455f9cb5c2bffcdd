package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/todolor/internal/task"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Name     string
	Desc     string
	Deadline string
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit the name, description or deadline of a task.

At least one option is required. Completion cannot be edited; use
"todolor complete" instead.

Example:
  todolor edit 3 --deadline "2024-05-02 09:00:00"`,
		Args:          idArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return editTask(opts, id, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "name of the task")
	cmd.Flags().StringVarP(&opts.Desc, "desc", "d", "", "description of the task")
	cmd.Flags().StringVarP(&opts.Deadline, "deadline", "l", "", "deadline as YYYY-MM-DD HH:MM:SS")
	cmd.MarkFlagsOneRequired("name", "desc", "deadline")

	return cmd
}

func editTask(opts *EditOptions, id int, cmd *cobra.Command) error {
	changes := task.Changes{ID: id}
	flags := cmd.Flags()
	if flags.Changed("name") {
		name := normalizeText(opts.Name)
		changes.Title = &name
	}
	if flags.Changed("desc") {
		desc := normalizeText(opts.Desc)
		changes.Description = &desc
	}
	if flags.Changed("deadline") {
		ms, err := parseDeadline(opts.Deadline, opts.location())
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --deadline", err)
		}
		changes.Deadline = &ms
	}

	svc, err := openService(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	if _, err := svc.Edit(changes); err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(fmt.Sprintf("Edited task %d", id), map[string]int{"id": id})
}
