package cmd

import (
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/psfit/internal/config"
	"github.com/oakwood-commons/psfit/internal/layout"
	"github.com/oakwood-commons/psfit/internal/limiter"
	"github.com/oakwood-commons/psfit/internal/render"
)

// detectTerminalWidth returns the best-effort terminal width by probing
// stdout, stderr, and stdin, then $COLUMNS, then fallback.
func detectTerminalWidth(fallback int) int {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, _, err := termGetSize(int(fd)); err == nil && w > 0 {
			return w
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w
		}
	}
	if fallback <= 0 {
		return layout.DefaultWidth
	}
	return fallback
}

// colorDisabled applies the NO_COLOR convention on top of flag and config.
func colorDisabled(flag bool, cfg config.Config) bool {
	if flag || config.BoolOr(cfg.Output.NoColor, false) {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// highlightStyle builds the configured row style, or nil for the classic
// bold red escape sequence.
func highlightStyle(cfg config.HighlightConfig) *lipgloss.Style {
	color := strings.TrimSpace(cfg.Color)
	if color == "" {
		return nil
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(config.BoolOr(cfg.Bold, true))
	return &style
}

func renderOptions(cfg config.Config, width int, noColor bool, rows limiter.Config) render.Options {
	return render.Options{
		Width:     width,
		NoColor:   noColor,
		Truncate:  render.TruncateMode(cfg.Output.Truncate),
		Highlight: highlightStyle(cfg.Highlight),
		Rows:      rows,
	}
}
