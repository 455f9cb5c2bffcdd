package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCompleteCommand creates the complete command.
func NewCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete task",
		Long: `Mark a task as completed now. A task can only be completed once.

Example:
  todolor complete 3`,
		Args:          idArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := openService(rootOpts, cmd)
			if err != nil {
				return err
			}
			if _, err := svc.Complete(id); err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(fmt.Sprintf("Completed task %d", id), map[string]int{"id": id})
		},
	}

	return cmd
}
