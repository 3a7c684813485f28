package matgo

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/matgo/composition"
	"github.com/hupe1980/matgo/stats"
	"golang.org/x/sync/errgroup"
)

// MagpieProperties is the fixed elemental-property catalog of the Ward
// descriptor set (npj Comput. Mater. 2, 16028, 2016), in dataset order.
// NValance keeps the dataset's spelling.
var MagpieProperties = []string{
	"Number",
	"MendeleevNumber",
	"AtomicWeight",
	"MeltingT",
	"Column",
	"Row",
	"CovalentRadius",
	"Electronegativity",
	"NsValence",
	"NpValence",
	"NdValence",
	"NfValence",
	"NValance",
	"NsUnfilled",
	"NpUnfilled",
	"NdUnfilled",
	"NfUnfilled",
	"NUnfilled",
	"GSvolume_pa",
	"GSbandgap",
	"GSmagmom",
	"SpaceGroupNumber",
}

// stoichPowers are the p-norm orders of the Ward descriptor set.
var stoichPowers = [...]float64{0, 2, 3, 5, 7, 10}

var statSuffixes = [...]string{"min", "max", "range", "mean", "std", "mode"}

// PropertyStats pairs a property name with the six-number summary of its
// per-atom expansion.
type PropertyStats struct {
	Property string
	Stats    stats.SummaryStats
}

// ElementalPropertyStats holds the summary statistics of every catalog
// property for one composition.
type ElementalPropertyStats struct {
	Formula string
	Stats   []PropertyStats
}

// Vector flattens the statistics to one row, six values per property in
// catalog order.
func (s *ElementalPropertyStats) Vector() []float64 {
	out := make([]float64, 0, len(s.Stats)*len(statSuffixes))
	for _, ps := range s.Stats {
		out = append(out, ps.Stats.Min, ps.Stats.Max, ps.Stats.Range, ps.Stats.Mean, ps.Stats.Std, ps.Stats.Mode)
	}

	return out
}

// Labels names the columns of Vector.
func (s *ElementalPropertyStats) Labels() []string {
	out := make([]string, 0, len(s.Stats)*len(statSuffixes))
	for _, ps := range s.Stats {
		for _, suffix := range statSuffixes {
			out = append(out, ps.Property+"_"+suffix)
		}
	}

	return out
}

// ElementalProperties computes summary statistics over the per-atom
// expansion of every property in MagpieProperties. A composition whose
// amounts all truncate to zero atoms has nothing to summarize and fails
// with ErrNoValues.
func (e *Engine) ElementalProperties(ctx context.Context, comp *composition.Composition) (*ElementalPropertyStats, error) {
	out := &ElementalPropertyStats{
		Formula: comp.Formula(),
		Stats:   make([]PropertyStats, 0, len(MagpieProperties)),
	}

	for _, property := range MagpieProperties {
		exp, err := e.ExpandProperty(ctx, comp, property)
		if err != nil {
			return nil, err
		}

		summary, err := stats.Summary(exp.Values)
		if err != nil {
			return nil, translateError(fmt.Errorf("property %q: %w", property, err))
		}

		out.Stats = append(out.Stats, PropertyStats{Property: property, Stats: summary})
	}

	return out, nil
}

// weightedTableMean computes sum(fraction(e) * table[e]) over the
// composition. Every element must have a defined entry.
func (e *Engine) weightedTableMean(ctx context.Context, comp *composition.Composition, property string) (float64, error) {
	t, err := e.loadTable(ctx, property)
	if err != nil {
		return 0, err
	}

	var acc float64

	for _, el := range comp.Elements() {
		z, err := e.elements.AtomicNumber(el)
		if err != nil {
			return 0, err
		}

		v, ok := t.Value(z)
		if !ok {
			return 0, &ErrUndefinedValue{Element: el, Property: property}
		}

		acc += comp.AtomicFraction(el) * v
	}

	return acc, nil
}

// ValenceFractions is the share of valence electrons per orbital, each a
// fraction-weighted orbital count divided by the fraction-weighted total.
type ValenceFractions struct {
	Fs float64
	Fp float64
	Fd float64
	Ff float64
}

// ValenceFractions computes the s/p/d/f valence-electron shares. A zero
// weighted total valence has no defined fractions and fails with
// ErrUndefinedRatio rather than returning NaN.
func (e *Engine) ValenceFractions(ctx context.Context, comp *composition.Composition) (ValenceFractions, error) {
	total, err := e.weightedTableMean(ctx, comp, "NValance")
	if err != nil {
		return ValenceFractions{}, translateError(err)
	}

	if total == 0 {
		return ValenceFractions{}, &ErrUndefinedRatio{Op: "valence fractions"}
	}

	var out ValenceFractions

	orbitals := []struct {
		property string
		dst      *float64
	}{
		{"NsValence", &out.Fs},
		{"NpValence", &out.Fp},
		{"NdValence", &out.Fd},
		{"NfValence", &out.Ff},
	}

	for _, orb := range orbitals {
		weighted, err := e.weightedTableMean(ctx, comp, orb.property)
		if err != nil {
			return ValenceFractions{}, translateError(err)
		}

		*orb.dst = weighted / total
	}

	return out, nil
}

// IonicStats summarizes the pairwise ionic character of a composition.
// Average accumulates fraction(A)*fraction(B)*ionic(A,B) over all unordered
// element pairs; Max is the largest pairwise ionic character.
type IonicStats struct {
	Pairs   int
	Average float64
	Max     float64
}

// IonicCharacter computes pairwise ionic character,
// ionic(A,B) = 1 - exp(-0.25*(X_A - X_B)^2), from tabulated
// electronegativities. A single-element composition has no pairs and
// returns zero stats, not an error; Pairs carries the distinction.
func (e *Engine) IonicCharacter(ctx context.Context, comp *composition.Composition) (IonicStats, error) {
	pairs := comp.Pairs()
	if len(pairs) == 0 {
		return IonicStats{}, nil
	}

	t, err := e.loadTable(ctx, "Electronegativity")
	if err != nil {
		return IonicStats{}, translateError(err)
	}

	x := make(map[string]float64, comp.Len())

	for _, el := range comp.Elements() {
		z, err := e.elements.AtomicNumber(el)
		if err != nil {
			return IonicStats{}, translateError(err)
		}

		v, ok := t.Value(z)
		if !ok {
			return IonicStats{}, &ErrUndefinedValue{Element: el, Property: "Electronegativity"}
		}

		x[el] = v
	}

	out := IonicStats{Pairs: len(pairs)}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]

		d := x[a] - x[b]
		ionic := 1 - math.Exp(-0.25*d*d)

		out.Average += comp.AtomicFraction(a) * comp.AtomicFraction(b) * ionic

		if ionic > out.Max {
			out.Max = ionic
		}
	}

	return out, nil
}

// FeatureVector is one composition's flat descriptor row with positional
// labels: stoichiometric p-norms, elemental property statistics, valence
// orbital fractions, and ionic character.
type FeatureVector struct {
	Formula string

	values []float64
	labels []string
}

// Values returns a copy of the feature values.
func (v *FeatureVector) Values() []float64 {
	return slices.Clone(v.values)
}

// Labels returns a copy of the column labels, aligned with Values.
func (v *FeatureVector) Labels() []string {
	return slices.Clone(v.labels)
}

// Len returns the number of features.
func (v *FeatureVector) Len() int {
	return len(v.values)
}

func (v *FeatureVector) append(label string, value float64) {
	v.labels = append(v.labels, label)
	v.values = append(v.values, value)
}

// Featurize parses a formula and assembles its full descriptor vector.
func (e *Engine) Featurize(ctx context.Context, formula string) (*FeatureVector, error) {
	start := time.Now()
	fv, err := e.featurize(ctx, formula)
	duration := time.Since(start)

	e.metrics.RecordFeaturize(duration, err)

	features := 0
	if fv != nil {
		features = fv.Len()
	}
	e.logger.LogFeaturize(ctx, formula, features, err)

	return fv, err
}

func (e *Engine) featurize(ctx context.Context, formula string) (*FeatureVector, error) {
	comp, err := composition.Parse(formula)
	if err != nil {
		return nil, err
	}

	fv := &FeatureVector{Formula: formula}

	for _, p := range stoichPowers {
		norm, err := e.StoichiometricPNorm(comp, p)
		if err != nil {
			return nil, err
		}

		fv.append(fmt.Sprintf("%g_norm", p), norm)
	}

	props, err := e.ElementalProperties(ctx, comp)
	if err != nil {
		return nil, err
	}

	labels := props.Labels()
	for i, v := range props.Vector() {
		fv.append(labels[i], v)
	}

	valence, err := e.ValenceFractions(ctx, comp)
	if err != nil {
		return nil, err
	}

	fv.append("frac_s_valence", valence.Fs)
	fv.append("frac_p_valence", valence.Fp)
	fv.append("frac_d_valence", valence.Fd)
	fv.append("frac_f_valence", valence.Ff)

	ionic, err := e.IonicCharacter(ctx, comp)
	if err != nil {
		return nil, err
	}

	fv.append("avg_ionic_char", ionic.Average)
	fv.append("max_ionic_char", ionic.Max)

	return fv, nil
}

// FeaturizeBatch featurizes many formulas with bounded concurrency. Results
// keep the input order; the first error cancels the remaining work.
func (e *Engine) FeaturizeBatch(ctx context.Context, formulas []string) ([]*FeatureVector, error) {
	out := make([]*FeatureVector, len(formulas))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, formula := range formulas {
		i, formula := i, formula

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fv, err := e.Featurize(ctx, formula)
			if err != nil {
				return fmt.Errorf("featurize %q: %w", formula, err)
			}

			out[i] = fv

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.LogFeaturizeBatch(ctx, len(formulas), err)
		return nil, err
	}

	e.logger.LogFeaturizeBatch(ctx, len(formulas), nil)

	return out, nil
}
