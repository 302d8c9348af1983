package printer

import (
	"os"

	"golang.org/x/term"

	"github.com/ewalker/mixcheck/internal/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Colors wraps text with ANSI codes when enabled.
type Colors struct {
	enabled bool
}

// NewColors creates a new Colors instance.
func NewColors(enabled bool) *Colors {
	return &Colors{enabled: enabled}
}

// Red returns red colored text
func (c *Colors) Red(s string) string {
	if !c.enabled {
		return s
	}
	return colorRed + s + colorReset
}

// Green returns green colored text
func (c *Colors) Green(s string) string {
	if !c.enabled {
		return s
	}
	return colorGreen + s + colorReset
}

// Yellow returns yellow colored text
func (c *Colors) Yellow(s string) string {
	if !c.enabled {
		return s
	}
	return colorYellow + s + colorReset
}

// Gray returns gray colored text
func (c *Colors) Gray(s string) string {
	if !c.enabled {
		return s
	}
	return colorGray + s + colorReset
}

// Bold returns bold text
func (c *Colors) Bold(s string) string {
	if !c.enabled {
		return s
	}
	return colorBold + s + colorReset
}

// StatusSymbol returns the glyph for a stage status.
func (c *Colors) StatusSymbol(status model.Status) string {
	switch status {
	case model.StatusOk:
		return c.Green("✓")
	case model.StatusError:
		return c.Red("✗")
	case model.StatusSkipped:
		return c.Yellow("⊘")
	default:
		return " "
	}
}

// ColorsEnabled reports whether color output should be on by default:
// stdout is a terminal and NO_COLOR is unset.
func ColorsEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
