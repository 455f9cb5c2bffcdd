package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/todolor/internal/config"
	"github.com/roach88/todolor/internal/store"
	"github.com/roach88/todolor/internal/task"
)

// DateLayout is the accepted and displayed deadline format.
const DateLayout = "2006-01-02 15:04:05"

// openService resolves the store directory and builds the task service.
//
// With --dir set, the configuration file is not read at all.
func openService(opts *RootOptions, cmd *cobra.Command) (*task.Service, error) {
	dir := opts.Dir
	if dir == "" {
		cfgPath := opts.ConfigPath
		if cfgPath == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return nil, WrapExitError(ExitCommandError, "failed to locate config", err)
			}
			cfgPath = p
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load config", err)
		}
		if cfg.Debug && !opts.Verbose {
			configureLogging(cmd.ErrOrStderr(), true)
		}
		dir = config.ResolveDir("", cfg)
	} else {
		dir = config.ResolveDir(dir, nil)
	}

	if err := config.EnsureStoreDir(dir); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to prepare store", err)
	}

	slog.Debug("opening store", "dir", dir)
	st, err := store.Open(dir, store.WithLogger(slog.Default()))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}

	return task.New(st, opts.Clock), nil
}

// location returns the configured time zone.
func (o *RootOptions) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return time.Local
}

// now returns the current time from the configured clock.
func (o *RootOptions) now() time.Time {
	if o.Clock != nil {
		return o.Clock.Now()
	}
	return time.Now()
}

// parseID validates a task id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 0 || id > store.MaxID {
		return 0, fmt.Errorf("ID must be in the range from 0 to %d, got %q", store.MaxID, arg)
	}
	return id, nil
}

// idArg is a cobra argument validator for commands taking a single id.
func idArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	_, err := parseID(args[0])
	return err
}

// parseDeadline converts a DateLayout string into epoch milliseconds.
func parseDeadline(s string, loc *time.Location) (int64, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: provide a date in the YYYY-MM-DD HH:MM:SS format", s)
	}
	return t.UnixMilli(), nil
}

// formatMillis renders epoch milliseconds with DateLayout.
func formatMillis(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format(DateLayout)
}

// normalizeText NFC-normalizes and trims user-supplied text.
func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
