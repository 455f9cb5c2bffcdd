package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/todolor/internal/config"
	"github.com/roach88/todolor/internal/store"
	"github.com/roach88/todolor/internal/task"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected operation (unknown id, already completed, invalid task, etc.)
	ExitCommandError = 2 // Command error (bad arguments, missing store, corrupted files, etc.)
)

// Error codes reported for failures that do not come from the store or the
// task layer.
const (
	ErrCodeCommand = "COMMAND_ERROR"
	ErrCodeConfig  = "CONFIG_ERROR"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// ExitError carries its own code. Store and task errors map to ExitFailure,
// except unreadable or missing stores which are ExitCommandError.
// Anything else (cobra argument errors) is ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var te *task.Error
	if errors.As(err, &te) {
		return ExitFailure
	}
	var se *store.Error
	if errors.As(err, &se) {
		if se.Code == store.ErrCodePath || se.Code == store.ErrCodeFormat {
			return ExitCommandError
		}
		return ExitFailure
	}
	return ExitCommandError
}

// ErrorCode returns the machine-readable code reported for err.
func ErrorCode(err error) string {
	var te *task.Error
	if errors.As(err, &te) {
		return string(te.Code)
	}
	var se *store.Error
	if errors.As(err, &se) {
		return string(se.Code)
	}
	if errors.Is(err, config.ErrCorrupted) || errors.Is(err, config.ErrNoPath) {
		return ErrCodeConfig
	}
	return ErrCodeCommand
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
	Paint     Painter
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "NOT_FOUND", "VALIDATION_ERROR", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
// In text mode, message is printed; in json mode, data is encoded.
func (f *OutputFormatter) Success(message string, data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, f.Paint.Success(message))
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	w := f.GetErrWriter()
	fmt.Fprintln(w, f.Paint.Error(fmt.Sprintf("Error [%s]: %s", code, message)))
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// newFormatter builds a formatter from root options.
func newFormatter(opts *RootOptions, stdout, stderr io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    stdout,
		ErrWriter: stderr,
		Verbose:   opts.Verbose,
		Paint:     NewPainter(!opts.NoColor && opts.Format != "json"),
	}
}

// reportError renders a command failure. JSON errors go to stdout so the
// response stays machine-readable; text errors go to stderr.
func reportError(opts *RootOptions, stdout, stderr io.Writer, err error) {
	format := opts.Format
	if !isValidFormat(format) {
		format = "text"
	}
	f := newFormatter(&RootOptions{Format: format, Verbose: opts.Verbose, NoColor: opts.NoColor}, stdout, stderr)

	var details any
	var se *store.Error
	if errors.As(err, &se) && se.Type != "" {
		details = map[string]string{"type": se.Type}
	}
	_ = f.Error(ErrorCode(err), err.Error(), details)
}
