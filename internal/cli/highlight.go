package cli

import "os"

// ANSI escape sequences for foreground colors.
const (
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiDefault = "\x1b[39m"
)

// Painter wraps text in terminal colors when enabled.
type Painter struct {
	Enabled bool
}

// NewPainter creates a Painter. Color is also disabled when $NO_COLOR is set.
func NewPainter(enabled bool) Painter {
	if os.Getenv("NO_COLOR") != "" {
		enabled = false
	}
	return Painter{Enabled: enabled}
}

func (p Painter) paint(color, s string) string {
	if !p.Enabled {
		return s
	}
	return color + s + ansiDefault
}

// Error colors s red.
func (p Painter) Error(s string) string { return p.paint(ansiRed, s) }

// Warning colors s yellow.
func (p Painter) Warning(s string) string { return p.paint(ansiYellow, s) }

// Success colors s green.
func (p Painter) Success(s string) string { return p.paint(ansiGreen, s) }
