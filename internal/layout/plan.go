// Package layout decides which ps columns fit a given output width and how
// wide the expandable command-line column gets.
//
// Columns are admitted greedily in preference order, then emitted in display
// order. Keeping the two orderings separate lets the catalog grow without
// disturbing either the admission policy or the on-screen arrangement.
package layout

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultWidth is the width assumed when the terminal size is unknown.
const DefaultWidth = 80

// DefaultDetailReserve is the expandable column baseline for ModeDetail.
const DefaultDetailReserve = 44

// Mode selects how much of the line is reserved for the command line.
type Mode string

const (
	// ModeNormal reserves what an 80-column line leaves after the PID column,
	// or less on narrower lines so the PID column still fits.
	ModeNormal Mode = "normal"
	// ModeDetail reserves a small fixed amount so more columns fit.
	ModeDetail Mode = "detail"
	// ModeLong reserves nearly the whole line for the command line.
	ModeLong Mode = "long"
)

// Allocation is a column with its resolved width.
type Allocation struct {
	Name  string
	Width int
}

// Plan is the resolved list of columns in display order.
type Plan []Allocation

// Spec renders the plan in ps's column-spec syntax, e.g. "pid:5,args:74".
func (p Plan) Spec() string {
	parts := make([]string, 0, len(p))
	for _, a := range p {
		parts = append(parts, a.Name+":"+strconv.Itoa(a.Width))
	}
	return strings.Join(parts, ",")
}

// Names returns the column names in display order.
func (p Plan) Names() []string {
	names := make([]string, 0, len(p))
	for _, a := range p {
		names = append(names, a.Name)
	}
	return names
}

// Width returns the resolved width of the named column and whether the
// column was admitted.
func (p Plan) Width(name string) (int, bool) {
	for _, a := range p {
		if a.Name == name {
			return a.Width, true
		}
	}
	return 0, false
}

// LineWidth returns the cells the plan occupies with one separator between
// adjacent columns.
func (p Plan) LineWidth() int {
	if len(p) == 0 {
		return 0
	}
	total := len(p) - 1
	for _, a := range p {
		total += a.Width
	}
	return total
}

// ReserveFor returns the expandable column baseline for a mode.
// detailReserve overrides DefaultDetailReserve when positive.
func ReserveFor(mode Mode, totalWidth, detailReserve int) int {
	pid := ColumnWidth(PIDColumn)
	switch mode {
	case ModeDetail:
		if detailReserve > 0 {
			return detailReserve
		}
		return DefaultDetailReserve
	case ModeLong:
		return max(0, totalWidth-pid-1)
	default:
		return min(DefaultWidth-pid-1, max(0, totalWidth-pid-1))
	}
}

// Build plans the catalog for totalWidth cells, handing reserve cells to
// the expandable column before any leftover is added back to it.
//
// Every plan accounts for exactly totalWidth+1 cells when each column is
// counted with its trailing separator. The expandable column is always
// present; its width never drops below zero.
func Build(totalWidth, reserve int) Plan {
	return build(catalog, totalWidth, reserve)
}

func build(cols []Column, totalWidth, reserve int) Plan {
	totalWidth = max(0, totalWidth)
	reserve = max(0, reserve)

	// The +1 cancels the separator counted against the first column.
	available := totalWidth - reserve + 1

	chosen := make([]Column, 0, len(cols))
	expandable := -1
	for _, c := range cols {
		switch {
		case c.Expandable():
			if expandable >= 0 {
				continue
			}
			expandable = len(chosen)
		case c.Width < available:
		default:
			continue
		}
		available -= c.Width + 1
		chosen = append(chosen, c)
	}
	if expandable >= 0 {
		chosen[expandable].Width = max(0, reserve+available)
	}

	sort.SliceStable(chosen, func(i, j int) bool {
		return chosen[i].Display < chosen[j].Display
	})

	plan := make(Plan, 0, len(chosen))
	for _, c := range chosen {
		plan = append(plan, Allocation{Name: c.Name, Width: c.Width})
	}
	return plan
}
