package element

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

//go:embed data/elements.json
var elementsJSON []byte

// entry mirrors one record of the embedded periodic table. Pointer fields
// distinguish "not tabulated" from zero.
type entry struct {
	Symbol              string   `json:"symbol"`
	Name                string   `json:"name"`
	Z                   int      `json:"z"`
	AtomicMass          *float64 `json:"atomic_mass"`
	X                   *float64 `json:"x"`
	Group               *float64 `json:"group"`
	Row                 *float64 `json:"row"`
	MendeleevNo         *float64 `json:"mendeleev_no"`
	AtomicRadius        *float64 `json:"atomic_radius"`
	AverageIonicRadius  *float64 `json:"average_ionic_radius"`
	MeltingPoint        *float64 `json:"melting_point"`
	BoilingPoint        *float64 `json:"boiling_point"`
	ThermalConductivity *float64 `json:"thermal_conductivity"`
	ThermalExpansion    *float64 `json:"coefficient_of_linear_thermal_expansion"`
}

func (e *entry) attribute(name string) (*float64, bool) {
	switch name {
	case AttrNumber, AttrZ:
		z := float64(e.Z)
		return &z, true
	case AttrX:
		return e.X, true
	case AttrAtomicMass:
		return e.AtomicMass, true
	case AttrAtomicRadius:
		return e.AtomicRadius, true
	case AttrAverageIonicRadius:
		return e.AverageIonicRadius, true
	case AttrGroup:
		return e.Group, true
	case AttrRow:
		return e.Row, true
	case AttrMendeleevNo:
		return e.MendeleevNo, true
	case AttrMeltingPoint:
		return e.MeltingPoint, true
	case AttrBoilingPoint:
		return e.BoilingPoint, true
	case AttrThermalConductivity:
		return e.ThermalConductivity, true
	case AttrThermalExpansion:
		return e.ThermalExpansion, true
	default:
		return nil, false
	}
}

type periodicTable struct {
	bySymbol map[string]*entry
	byNumber map[int]*entry
	symbols  []string
}

var (
	loadOnce sync.Once
	table    *periodicTable
)

func load() *periodicTable {
	loadOnce.Do(func() {
		var entries []*entry
		if err := json.Unmarshal(elementsJSON, &entries); err != nil {
			panic(fmt.Sprintf("element: corrupt embedded periodic table: %v", err))
		}

		t := &periodicTable{
			bySymbol: make(map[string]*entry, len(entries)),
			byNumber: make(map[int]*entry, len(entries)),
			symbols:  make([]string, 0, len(entries)),
		}
		for _, e := range entries {
			t.bySymbol[e.Symbol] = e
			t.byNumber[e.Z] = e
			t.symbols = append(t.symbols, e.Symbol)
		}

		table = t
	})

	return table
}

// IsValidSymbol reports whether symbol names a known element.
func IsValidSymbol(symbol string) bool {
	_, ok := load().bySymbol[symbol]
	return ok
}

// BuiltinSource serves attributes from the embedded periodic table. The zero
// value is ready to use and safe for concurrent access.
type BuiltinSource struct{}

// NewBuiltinSource creates a source backed by the embedded periodic table.
func NewBuiltinSource() *BuiltinSource {
	return &BuiltinSource{}
}

var defaultSource = NewBuiltinSource()

// Default returns the shared built-in source.
func Default() *BuiltinSource {
	return defaultSource
}

// Attribute implements the Source interface.
func (s *BuiltinSource) Attribute(symbol, attribute string) (Value, error) {
	e, ok := load().bySymbol[symbol]
	if !ok {
		return Value{}, &ErrUnknownElement{Symbol: symbol}
	}

	v, ok := e.attribute(attribute)
	if !ok {
		return Value{}, &ErrInvalidAttribute{Attribute: attribute}
	}

	unit := attributeUnits[attribute]
	if v == nil {
		return Value{Unit: unit}, nil
	}

	return Value{Float: *v, Unit: unit, Defined: true}, nil
}

// AtomicNumber implements the Source interface.
func (s *BuiltinSource) AtomicNumber(symbol string) (int, error) {
	e, ok := load().bySymbol[symbol]
	if !ok {
		return 0, &ErrUnknownElement{Symbol: symbol}
	}

	return e.Z, nil
}

// Name returns the English element name for a symbol.
func (s *BuiltinSource) Name(symbol string) (string, error) {
	e, ok := load().bySymbol[symbol]
	if !ok {
		return "", &ErrUnknownElement{Symbol: symbol}
	}

	return e.Name, nil
}

// Symbol returns the element symbol for an atomic number.
func (s *BuiltinSource) Symbol(z int) (string, error) {
	e, ok := load().byNumber[z]
	if !ok {
		return "", &ErrUnknownElement{Symbol: fmt.Sprintf("Z=%d", z)}
	}

	return e.Symbol, nil
}

// Symbols returns all known element symbols in atomic number order.
func (s *BuiltinSource) Symbols() []string {
	src := load().symbols
	out := make([]string, len(src))
	copy(out, src)

	return out
}

// Attributes returns the attribute names of the catalog in sorted order.
func (s *BuiltinSource) Attributes() []string {
	out := make([]string, 0, len(attributeUnits))
	for name := range attributeUnits {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
