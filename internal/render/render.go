// Package render prints the ps table fitted to the target width, with
// matched processes highlighted.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/psfit/internal/layout"
	"github.com/oakwood-commons/psfit/internal/limiter"
	"github.com/oakwood-commons/psfit/internal/procs"
	"github.com/oakwood-commons/psfit/pkg/logger"
)

// Classic highlight escape sequences.
const (
	highlightStart = "\x1b[01;31m"
	highlightEnd   = "\x1b[0m"
)

// TruncateMode selects how over-long lines are cut.
type TruncateMode string

const (
	// TruncateChars cuts after Width characters. ps replaces anything that
	// would not fit one cell with "?", so characters approximate cells.
	TruncateChars TruncateMode = "chars"
	// TruncateCells cuts after Width terminal cells.
	TruncateCells TruncateMode = "cells"
)

// ErrNoOutput is returned when ps prints nothing, not even a header.
var ErrNoOutput = errors.New("ps produced no output")

// Options configures a Renderer.
type Options struct {
	// Width is the maximum line length.
	Width int
	// NoColor disables highlighting entirely.
	NoColor bool
	// Truncate defaults to TruncateChars.
	Truncate TruncateMode
	// Highlight, when non-nil, styles matched rows instead of the classic
	// bold red escape sequence.
	Highlight *lipgloss.Style
	// Rows limits which body rows are printed.
	Rows limiter.Config
}

// Renderer runs ps with a column plan and writes the fitted table.
type Renderer struct {
	runner procs.Runner
	out    io.Writer
	opts   Options
}

// New returns a Renderer writing to out.
func New(runner procs.Runner, out io.Writer, opts Options) *Renderer {
	if opts.Truncate == "" {
		opts.Truncate = TruncateChars
	}
	return &Renderer{runner: runner, out: out, opts: opts}
}

// Args returns the ps arguments that list every process in tree order
// using the plan's columns.
func Args(plan layout.Plan) []string {
	return []string{"-e", "-o", plan.Spec(), "-H"}
}

// Render runs ps once and writes the header, every body row, and the
// header again so it stays visible after scrolling.
func (r *Renderer) Render(ctx context.Context, plan layout.Plan, pids *procs.PIDSet) error {
	out, err := r.runner.Run(ctx, Args(plan)...)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return ErrNoOutput
	}
	header, body := lines[0], r.opts.Rows.Lines(lines[1:])

	logger.FromContext(ctx).V(1).Info("rendering", "rows", len(body), "total_rows", len(lines)-1, "width", r.opts.Width)

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, line := range body {
		line = r.truncate(line)
		if pids.Contains(leadingToken(line)) {
			line = r.highlight(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(header)
	b.WriteByte('\n')

	_, err = io.WriteString(r.out, b.String())
	return err
}

func (r *Renderer) truncate(line string) string {
	if r.opts.Truncate == TruncateCells {
		return runewidth.Truncate(line, r.opts.Width, "")
	}
	return TruncateRunes(line, r.opts.Width)
}

func (r *Renderer) highlight(line string) string {
	switch {
	case r.opts.NoColor:
		return line
	case r.opts.Highlight != nil:
		return r.opts.Highlight.Render(line)
	default:
		return highlightStart + line + highlightEnd
	}
}

// TruncateRunes returns s cut to at most n characters. It never splits a
// multi-byte character.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// leadingToken returns the first whitespace-delimited field, which is the
// PID column in every plan.
func leadingToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Summary writes the match count line printed after the table when at
// least one query was given.
func Summary(w io.Writer, pids *procs.PIDSet) error {
	list := pids.List()
	var err error
	switch len(list) {
	case 0:
		_, err = fmt.Fprintln(w, "No matching processes.")
	case 1:
		_, err = fmt.Fprintf(w, "One matching process: %s\n", list[0])
	default:
		_, err = fmt.Fprintf(w, "%d matching processes: %s\n", len(list), strings.Join(list, " "))
	}
	return err
}
