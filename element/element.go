package element

import "fmt"

// Attribute names understood by the built-in source.
const (
	AttrNumber              = "number"
	AttrZ                   = "Z"
	AttrX                   = "X"
	AttrAtomicMass          = "atomic_mass"
	AttrAtomicRadius        = "atomic_radius"
	AttrAverageIonicRadius  = "average_ionic_radius"
	AttrGroup               = "group"
	AttrRow                 = "row"
	AttrMendeleevNo         = "mendeleev_no"
	AttrMeltingPoint        = "melting_point"
	AttrBoilingPoint        = "boiling_point"
	AttrThermalConductivity = "thermal_conductivity"
	AttrThermalExpansion    = "coefficient_of_linear_thermal_expansion"
)

// Value is a single tabulated attribute of one element. Defined reports
// whether the table actually carries the attribute for that element; Float
// is meaningless when Defined is false.
type Value struct {
	Float   float64
	Unit    string
	Defined bool
}

// Source resolves periodic table attributes for element symbols.
type Source interface {
	// Attribute returns the named attribute for the given element symbol.
	// A missing-but-valid attribute yields Value{Defined: false} and a nil
	// error; unknown symbols and unknown attribute names yield an error.
	Attribute(symbol, attribute string) (Value, error)

	// AtomicNumber returns the atomic number for the given element symbol.
	AtomicNumber(symbol string) (int, error)
}

// ErrUnknownElement is returned when a symbol does not name a known element.
type ErrUnknownElement struct {
	Symbol string
}

func (e *ErrUnknownElement) Error() string {
	return fmt.Sprintf("unknown element symbol %q", e.Symbol)
}

// ErrInvalidAttribute is returned when an attribute name is not part of the
// periodic table catalog at all, for any element.
type ErrInvalidAttribute struct {
	Attribute string
}

func (e *ErrInvalidAttribute) Error() string {
	return fmt.Sprintf("invalid periodic table attribute %q", e.Attribute)
}

// attributeUnits maps attribute names to display units. Dimensionless
// attributes map to the empty string.
var attributeUnits = map[string]string{
	AttrNumber:              "",
	AttrZ:                   "",
	AttrX:                   "",
	AttrGroup:               "",
	AttrRow:                 "",
	AttrMendeleevNo:         "",
	AttrAverageIonicRadius:  "",
	AttrAtomicMass:          "amu",
	AttrAtomicRadius:        "ang",
	AttrMeltingPoint:        "K",
	AttrBoilingPoint:        "K",
	AttrThermalConductivity: "W K^-1 m^-1",
	AttrThermalExpansion:    "K^-1",
}

// UnitFor returns the display unit for an attribute name, or false if the
// attribute is not part of the catalog.
func UnitFor(attribute string) (string, bool) {
	u, ok := attributeUnits[attribute]
	return u, ok
}
