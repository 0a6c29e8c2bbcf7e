package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gradstat/domain/core"
)

// Kind is the storage type of a column as ingested, before any semantic
// classification happens.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindText    Kind = "text"
)

// Column is one named column of a dataset. Storage is typed: numeric columns
// keep values in Floats with NaN marking missing cells, text columns keep
// values in Strings with a parallel missing mask. Columns are read-only once
// built.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Missing []bool
}

// Dataset is an ordered, immutable collection of named columns. Row count and
// column set are fixed for the duration of one analysis request; no detector
// mutates it.
type Dataset struct {
	ID      core.DatasetID
	Name    string
	columns []*Column
	byName  map[string]*Column
	rows    int
}

// New builds a dataset from columns. Column order is preserved; all columns
// must have the same length.
func New(name string, columns []*Column) *Dataset {
	ds := &Dataset{
		ID:      core.DatasetID(core.NewID()),
		Name:    name,
		columns: columns,
		byName:  make(map[string]*Column, len(columns)),
	}
	for _, col := range columns {
		ds.byName[col.Name] = col
		if n := col.Len(); n > ds.rows {
			ds.rows = n
		}
	}
	return ds
}

// NumericColumn builds a numeric column; NaN entries count as missing.
func NumericColumn(name string, values []float64) *Column {
	return &Column{Name: name, Kind: KindNumeric, Floats: values}
}

// TextColumn builds a text column with an optional missing mask. A nil mask
// means every cell is present; empty strings are treated as missing either way.
func TextColumn(name string, values []string, missing []bool) *Column {
	return &Column{Name: name, Kind: KindText, Strings: values, Missing: missing}
}

// Rows returns the dataset row count.
func (d *Dataset) Rows() int { return d.rows }

// Columns returns all columns in declaration order.
func (d *Dataset) Columns() []*Column { return d.columns }

// Column looks up a column by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	c, ok := d.byName[name]
	return c, ok
}

// ColumnNames returns names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns all numeric-storage columns in declaration order.
func (d *Dataset) NumericColumns() []*Column {
	var out []*Column
	for _, c := range d.columns {
		if c.Kind == KindNumeric {
			out = append(out, c)
		}
	}
	return out
}

// TextColumns returns all text-storage columns in declaration order.
func (d *Dataset) TextColumns() []*Column {
	var out []*Column
	for _, c := range d.columns {
		if c.Kind == KindText {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the column length including missing cells.
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// IsMissing reports whether the cell at index i is missing.
func (c *Column) IsMissing(i int) bool {
	if c.Kind == KindNumeric {
		return math.IsNaN(c.Floats[i])
	}
	if c.Missing != nil && c.Missing[i] {
		return true
	}
	return strings.TrimSpace(c.Strings[i]) == ""
}

// NonMissing returns the count of present cells.
func (c *Column) NonMissing() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if !c.IsMissing(i) {
			n++
		}
	}
	return n
}

// MissingFraction returns the fraction of missing cells.
func (c *Column) MissingFraction() float64 {
	if c.Len() == 0 {
		return 0
	}
	return float64(c.Len()-c.NonMissing()) / float64(c.Len())
}

// CleanFloats returns present numeric values in row order. Empty for text
// columns.
func (c *Column) CleanFloats() []float64 {
	if c.Kind != KindNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.Floats))
	for _, v := range c.Floats {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// CellString renders the cell at index i as a string; missing cells render
// empty. Numeric cells use a compact representation so 1.0 and 1 compare
// equal across storage kinds.
func (c *Column) CellString(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	if c.Kind == KindNumeric {
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	}
	return strings.TrimSpace(c.Strings[i])
}

// UniqueValues returns the distinct non-missing values rendered as strings,
// sorted for stable output.
func (c *Column) UniqueValues() []string {
	seen := make(map[string]struct{})
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		seen[c.CellString(i)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// UniqueCount returns the number of distinct non-missing values.
func (c *Column) UniqueCount() int {
	return len(c.UniqueValues())
}

// HasDuplicates reports whether any non-missing value occurs more than once.
func (c *Column) HasDuplicates() bool {
	seen := make(map[string]struct{})
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		v := c.CellString(i)
		if _, dup := seen[v]; dup {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// IsZeroOneCoded reports whether the column holds exactly the value pair
// {0,1} or {true,false}. Both values must come from the same coding pair; a
// mix like {"0","true"} does not count. Only these forms are eligible as a
// survival event indicator.
func (c *Column) IsZeroOneCoded() bool {
	vals := c.UniqueValues()
	if len(vals) != 2 {
		return false
	}
	a, b := strings.ToLower(vals[0]), strings.ToLower(vals[1])
	if a > b {
		a, b = b, a
	}
	return (a == "0" && b == "1") || (a == "false" && b == "true")
}

// CountEqualZero counts non-missing cells equal to the zero/false code. Used
// for the censoring percentage in survival detection.
func (c *Column) CountEqualZero() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		switch strings.ToLower(c.CellString(i)) {
		case "0", "false":
			n++
		}
	}
	return n
}

// CompleteRows returns the row indices where every listed column is present.
// Detectors drop rows with missing values independently of each other.
func (d *Dataset) CompleteRows(cols []*Column) []int {
	var rows []int
	for i := 0; i < d.rows; i++ {
		ok := true
		for _, c := range cols {
			if i >= c.Len() || c.IsMissing(i) {
				ok = false
				break
			}
		}
		if ok {
			rows = append(rows, i)
		}
	}
	return rows
}
