package matgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/matgo/element"
	"github.com/hupe1980/matgo/magpie"
	"github.com/hupe1980/matgo/stats"
)

var (
	// ErrNoTableStore is returned by table-backed operations when the engine
	// was built without a property table store.
	ErrNoTableStore = errors.New("no table store configured")

	// ErrNoEnergyClient is returned by CohesiveEnergy when the engine was
	// built without a formation-energy client.
	ErrNoEnergyClient = errors.New("no energy client configured")

	// ErrNoValues is returned when an operation has an empty per-atom
	// expansion to aggregate.
	ErrNoValues = errors.New("no values")
)

// ErrUnknownProperty indicates a property outside the table store catalog.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownProperty struct {
	Property string
	cause    error
}

func (e *ErrUnknownProperty) Error() string {
	return fmt.Sprintf("unknown property %q", e.Property)
}

func (e *ErrUnknownProperty) Unwrap() error { return e.cause }

// ErrUnknownElement indicates a symbol that names no known element.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownElement struct {
	Symbol string
	cause  error
}

func (e *ErrUnknownElement) Error() string {
	return fmt.Sprintf("unknown element %q", e.Symbol)
}

func (e *ErrUnknownElement) Unwrap() error { return e.cause }

// ErrInvalidAttribute indicates an attribute name outside the periodic
// table catalog.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidAttribute struct {
	Attribute string
	cause     error
}

func (e *ErrInvalidAttribute) Error() string {
	return fmt.Sprintf("invalid attribute %q", e.Attribute)
}

func (e *ErrInvalidAttribute) Unwrap() error { return e.cause }

// ErrNoStructureFound indicates the formation-energy lookup knows no
// candidate structure for a composition.
type ErrNoStructureFound struct {
	Formula string
}

func (e *ErrNoStructureFound) Error() string {
	return fmt.Sprintf("no structure found for %q", e.Formula)
}

// ErrUndefinedRatio indicates a weighted-fraction computation with a zero
// denominator, e.g. valence orbital fractions over a composition with zero
// total valence.
type ErrUndefinedRatio struct {
	Op string
}

func (e *ErrUndefinedRatio) Error() string {
	return fmt.Sprintf("%s: zero denominator", e.Op)
}

// ErrUndefinedValue indicates an element without a defined value for a
// property that a descriptor cannot do without. Expansions tolerate
// undefined values; weighted and pairwise descriptors do not.
type ErrUndefinedValue struct {
	Element  string
	Property string
}

func (e *ErrUndefinedValue) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("no value for element %q", e.Element)
	}

	return fmt.Sprintf("property %q undefined for element %q", e.Property, e.Element)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Empty-aggregation unification.
	if errors.Is(err, stats.ErrNoValues) {
		return fmt.Errorf("%w: %w", ErrNoValues, err)
	}

	// Catalog normalization.
	var up *magpie.ErrUnknownProperty
	if errors.As(err, &up) {
		return &ErrUnknownProperty{Property: up.Property, cause: err}
	}
	var ue *element.ErrUnknownElement
	if errors.As(err, &ue) {
		return &ErrUnknownElement{Symbol: ue.Symbol, cause: err}
	}
	var ia *element.ErrInvalidAttribute
	if errors.As(err, &ia) {
		return &ErrInvalidAttribute{Attribute: ia.Attribute, cause: err}
	}

	return err
}
