package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/todolor/internal/task"
)

// ListOptions holds flags for the ls command.
type ListOptions struct {
	*RootOptions
	Due       bool
	Overdue   bool
	Completed bool
}

// NewListCommand creates the ls command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Output the list of tasks",
		Long: `Output the list of tasks.

Without a filter, every task is listed in the order it was added.

Filters:
  --due        pending tasks, nearest deadline first (no deadline last)
  --overdue    pending tasks past their deadline, oldest first
  --completed  completed tasks, most recently completed first

Example:
  todolor ls --due`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTasks(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Due, "due", "d", false, "show only pending tasks")
	cmd.Flags().BoolVarP(&opts.Overdue, "overdue", "o", false, "show only overdue tasks")
	cmd.Flags().BoolVarP(&opts.Completed, "completed", "c", false, "show only completed tasks")
	cmd.MarkFlagsMutuallyExclusive("due", "overdue", "completed")

	return cmd
}

func listTasks(opts *ListOptions, cmd *cobra.Command) error {
	svc, err := openService(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	var tasks []task.Task
	switch {
	case opts.Due:
		tasks, err = svc.GetDue()
	case opts.Overdue:
		tasks, err = svc.GetOverdue()
	case opts.Completed:
		tasks, err = svc.GetCompleted()
	default:
		tasks, err = svc.GetAll()
	}
	if err != nil {
		return err
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	f.VerboseLog("%d task(s)", len(tasks))
	if opts.Format == "json" {
		if tasks == nil {
			tasks = []task.Task{}
		}
		return f.Success("", tasks)
	}

	renderTasks(cmd.OutOrStdout(), tasks, opts.now(), opts.location(), f.Paint)
	return nil
}
