package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/todolor/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string
	Verify   bool
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to a SQLite database",
		Long: `Export every task to a SQLite database (creating it if it doesn't exist).

The "tasks" table is replaced on every export. With --verify the table is
read back and compared with the store afterwards.

Example:
  todolor export --db ./tasks.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportTasks(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "read the table back and check it matches")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func exportTasks(opts *ExportOptions, cmd *cobra.Command) error {
	svc, err := openService(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	tasks, err := svc.GetAll()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := export.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := db.WriteTasks(ctx, tasks); err != nil {
		return WrapExitError(ExitFailure, "failed to export tasks", err)
	}
	if opts.Verify {
		if err := db.Verify(ctx, tasks); err != nil {
			return WrapExitError(ExitFailure, "export verification failed", err)
		}
		slog.Debug("export verified", "count", len(tasks), "db", opts.Database)
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(
		fmt.Sprintf("Exported %d task(s) to %s", len(tasks), opts.Database),
		map[string]any{"count": len(tasks), "db": opts.Database},
	)
}
