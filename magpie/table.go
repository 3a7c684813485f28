package magpie

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Table holds one property as a dense vector indexed by atomic number.
// Tables are immutable after parsing and safe for concurrent readers.
type Table struct {
	property string
	unit     string
	values   []float64
	coverage *roaring.Bitmap
}

// ParseTable reads the flat one-value-per-line format. Lines that do not
// parse as a finite float become undefined entries rather than errors, which
// is how the upstream tables encode missing elemental data.
func ParseTable(property, unit string, r io.Reader) (*Table, error) {
	t := &Table{
		property: property,
		unit:     unit,
		coverage: roaring.New(),
	}

	sc := bufio.NewScanner(r)

	for sc.Scan() {
		z := len(t.values) + 1

		v, err := strconv.ParseFloat(strings.TrimSpace(sc.Text()), 64)
		if err != nil || math.IsNaN(v) {
			t.values = append(t.values, math.NaN())
			continue
		}

		t.values = append(t.values, v)
		t.coverage.Add(uint32(z))
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// Property returns the property name.
func (t *Table) Property() string {
	return t.property
}

// Unit returns the declared unit string, empty for dimensionless tables.
func (t *Table) Unit() string {
	return t.unit
}

// Len returns the highest atomic number the table has a line for.
func (t *Table) Len() int {
	return len(t.values)
}

// Value returns the entry for atomic number z. ok is false when the entry is
// undefined or z is outside the table range; use Len to tell the two apart.
func (t *Table) Value(z int) (float64, bool) {
	if z < 1 || z > len(t.values) {
		return 0, false
	}

	v := t.values[z-1]
	if math.IsNaN(v) {
		return 0, false
	}

	return v, true
}

// Coverage returns the set of atomic numbers with defined entries.
func (t *Table) Coverage() *roaring.Bitmap {
	return t.coverage.Clone()
}

// Defined reports whether the table carries a defined entry for z.
func (t *Table) Defined(z int) bool {
	return z >= 1 && t.coverage.Contains(uint32(z))
}
