package matgo

import (
	"context"
	"time"

	"github.com/hupe1980/matgo/composition"
	"github.com/hupe1980/matgo/magpie"
)

// Record describes how one element of a composition resolved against a
// property. Defined is false when the property carries no value for the
// element, which is a valid result, not an error.
type Record struct {
	Element  string
	Property string
	Value    float64
	Defined  bool
	Unit     string
	Amount   float64
}

// Expansion is the result of a per-atom expansion: each element's value
// repeated once per whole atom in the formula unit, in composition element
// order.
//
// Records always has one entry per element. Values skips elements with
// undefined values and elements whose amount truncates to zero, so
// len(Values) == sum of floor(amount) over the defined elements. Callers
// that need to tell the two apart inspect Records.
type Expansion struct {
	Property string
	Unit     string
	Values   []float64
	Records  []Record
}

// ExpandProperty expands a tabulated property per atom. Fractional amounts
// are truncated, not rounded: Li0.5CoO2 contributes no Li entries. An
// element beyond the table range is an error; an element with an undefined
// entry inside the range is recorded and skipped.
func (e *Engine) ExpandProperty(ctx context.Context, comp *composition.Composition, property string) (*Expansion, error) {
	start := time.Now()
	exp, err := e.expandProperty(ctx, comp, property)
	duration := time.Since(start)

	err = translateError(err)

	e.metrics.RecordExpand(duration, err)
	e.logger.LogExpand(ctx, property, comp.Formula(), expansionLen(exp), err)

	return exp, err
}

func (e *Engine) expandProperty(ctx context.Context, comp *composition.Composition, property string) (*Expansion, error) {
	t, err := e.loadTable(ctx, property)
	if err != nil {
		return nil, err
	}

	exp := &Expansion{Property: property, Unit: t.Unit()}

	for _, el := range comp.Elements() {
		z, err := e.elements.AtomicNumber(el)
		if err != nil {
			return nil, err
		}

		if z > t.Len() {
			return nil, &magpie.ErrAtomicNumber{Property: property, Z: z, Len: t.Len()}
		}

		amount := comp.Amount(el)
		record := Record{Element: el, Property: property, Unit: t.Unit(), Amount: amount}

		if v, ok := t.Value(z); ok {
			record.Value = v
			record.Defined = true

			for i := 0; i < int(amount); i++ {
				exp.Values = append(exp.Values, v)
			}
		}

		exp.Records = append(exp.Records, record)
	}

	return exp, nil
}

// ExpandAttribute expands a periodic-table attribute per atom, with the same
// replication and skip semantics as ExpandProperty. Only a wholly unknown
// attribute name is an error.
func (e *Engine) ExpandAttribute(ctx context.Context, comp *composition.Composition, attribute string) (*Expansion, error) {
	start := time.Now()
	exp, err := e.expandAttribute(comp, attribute)
	duration := time.Since(start)

	err = translateError(err)

	e.metrics.RecordExpand(duration, err)
	e.logger.LogExpand(ctx, attribute, comp.Formula(), expansionLen(exp), err)

	return exp, err
}

func (e *Engine) expandAttribute(comp *composition.Composition, attribute string) (*Expansion, error) {
	exp := &Expansion{Property: attribute}

	for _, el := range comp.Elements() {
		v, err := e.elements.Attribute(el, attribute)
		if err != nil {
			return nil, err
		}

		exp.Unit = v.Unit

		amount := comp.Amount(el)
		record := Record{Element: el, Property: attribute, Unit: v.Unit, Amount: amount}

		if v.Defined {
			record.Value = v.Float
			record.Defined = true

			for i := 0; i < int(amount); i++ {
				exp.Values = append(exp.Values, v.Float)
			}
		}

		exp.Records = append(exp.Records, record)
	}

	return exp, nil
}

// GetProperty returns just the per-atom values of one attribute, read
// straight from the attribute source. Retained as the ad hoc
// single-descriptor path; the composite builders go through the table store.
func (e *Engine) GetProperty(ctx context.Context, comp *composition.Composition, attribute string) ([]float64, error) {
	exp, err := e.ExpandAttribute(ctx, comp, attribute)
	if err != nil {
		return nil, err
	}

	return exp.Values, nil
}

func expansionLen(exp *Expansion) int {
	if exp == nil {
		return 0
	}

	return len(exp.Values)
}
