package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete task",
		Long: `Delete a task permanently. Its id is never reused.

Example:
  todolor delete 3`,
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
			if err := svc.Delete(id); err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(fmt.Sprintf("Deleted task %d", id), map[string]int{"id": id})
		},
	}

	return cmd
}
