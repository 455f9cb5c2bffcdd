package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/todolor/internal/task"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Dir        string
	NoColor    bool

	// Clock overrides the wall clock (for testing). If nil, defaults to
	// task.SystemClock.
	Clock task.Clock

	// Location is used to parse and print deadlines. If nil, defaults to
	// time.Local.
	Location *time.Location
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the todolor CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todolor",
		Short: "todolor - a personal task tracker",
		Long: `A personal task tracker for the terminal.

Tasks are kept in a small obfuscated file inside the store directory
(~/.todolor by default, configured in ~/.todolor.yaml).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default ~/.todolor.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", "", "store directory (overrides config and $TODOLOR_DIR)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewCompleteCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// Run executes the CLI with args and returns the process exit code.
// Errors are reported on stderr (text) or stdout (json).
func Run(args []string, stdout, stderr io.Writer) int {
	return run(&RootOptions{}, args, stdout, stderr)
}

func run(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	reportError(opts, stdout, stderr, err)
	return GetExitCode(err)
}

// configureLogging installs the default slog handler.
func configureLogging(w io.Writer, debug bool) {
	logLevel := slog.LevelWarn
	if debug {
		logLevel = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
