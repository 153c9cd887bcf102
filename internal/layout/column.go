package layout

// Column describes one ps output column the planner may allocate space to.
type Column struct {
	// Name is the ps format keyword (e.g. "pid", "args").
	Name string

	// Width is the fixed cell width. 0 marks the expandable column, which
	// absorbs whatever space the fixed columns leave behind.
	Width int

	// Preference orders admission when space is scarce. Lower goes first.
	Preference int

	// Display orders columns left to right in the output.
	Display int
}

// Expandable reports whether the column grows to fill leftover space.
func (c Column) Expandable() bool {
	return c.Width == 0
}

// Column names used outside the catalog.
const (
	ArgsColumn = "args"
	PIDColumn  = "pid"
)

// catalog is listed in preference order. args must stay first so it is
// always admitted.
var catalog = []Column{
	{Name: ArgsColumn, Width: 0, Preference: 0, Display: 2},
	{Name: PIDColumn, Width: 5, Preference: 1, Display: 0},
	{Name: "stat", Width: 4, Preference: 2, Display: 4},
	{Name: "nice", Width: 3, Preference: 3, Display: 5},
	{Name: "%mem", Width: 4, Preference: 4, Display: 6},
	{Name: "euser", Width: 8, Preference: 5, Display: 10},
	{Name: "tname", Width: 6, Preference: 6, Display: 9},
	{Name: "start_time", Width: 5, Preference: 7, Display: 8},
	{Name: "psr", Width: 3, Preference: 8, Display: 3},
	{Name: "cputime", Width: 8, Preference: 9, Display: 7},
	{Name: "egroup", Width: 8, Preference: 10, Display: 11},
	{Name: "pgid", Width: 5, Preference: 11, Display: 1},
}

// Catalog returns a copy of the column catalog in preference order.
func Catalog() []Column {
	return append([]Column(nil), catalog...)
}

// ColumnWidth returns the fixed width of the named column, or 0 when the
// column is expandable or unknown.
func ColumnWidth(name string) int {
	for _, c := range catalog {
		if c.Name == name {
			return c.Width
		}
	}
	return 0
}
