package matgo

import (
	"context"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/matgo/composition"
	"github.com/hupe1980/matgo/element"
	"github.com/hupe1980/matgo/energy"
	"github.com/hupe1980/matgo/magpie"
	"github.com/hupe1980/matgo/stats"
)

// Engine computes composition descriptors. It owns the collaborators
// (periodic-table attribute source, property table store, formation-energy
// client) and is safe for concurrent use.
type Engine struct {
	elements     element.Source
	store        *magpie.Store
	energyClient energy.Client
	reference    *energy.Reference
	metrics      MetricsCollector
	logger       *Logger
	concurrency  int
}

// New creates an engine. By default it uses the built-in periodic table and
// the embedded cohesive-energy reference; a table store and an energy client
// must be supplied explicitly for the operations that need them.
//
// Example:
//
//	store := magpie.NewStore(magpie.NewDirSource("./data/magpie"))
//	eng := matgo.New(
//	    matgo.WithTableStore(store),
//	    matgo.WithEnergyClient(energy.NewRESTClient(apiKey)),
//	)
func New(optFns ...Option) *Engine {
	opts := applyOptions(optFns)

	return &Engine{
		elements:     opts.elements,
		store:        opts.store,
		energyClient: opts.energyClient,
		reference:    opts.reference,
		metrics:      opts.metricsCollector,
		logger:       opts.logger,
		concurrency:  opts.concurrency,
	}
}

// Elements returns the periodic-table attribute source.
func (e *Engine) Elements() element.Source {
	return e.elements
}

// Store returns the property table store, nil when none is configured.
func (e *Engine) Store() *magpie.Store {
	return e.store
}

// loadTable fetches a property table through the store, instrumented.
// Cache hits are recorded too; they dominate once the engine is warm.
func (e *Engine) loadTable(ctx context.Context, property string) (*magpie.Table, error) {
	if e.store == nil {
		return nil, ErrNoTableStore
	}

	start := time.Now()
	t, err := e.store.Load(ctx, property)
	duration := time.Since(start)

	e.metrics.RecordTableLoad(duration, err)
	e.logger.LogTableLoad(ctx, property, err)

	return t, err
}

// StoichiometricPNorm computes the Lp norm of the atomic fractions,
// (sum f_i^p)^(1/p). It measures how evenly the stoichiometry is
// distributed: low values mean balanced compositions, high values mean one
// element dominates. p == 0 returns the total atom count instead.
func (e *Engine) StoichiometricPNorm(comp *composition.Composition, p float64) (float64, error) {
	if p == 0 {
		return comp.NumAtoms(), nil
	}

	elements := comp.Elements()

	fractions := make([]float64, len(elements))
	for i, el := range elements {
		fractions[i] = comp.AtomicFraction(el)
	}

	norm, err := stats.PNorm(fractions, p)

	return norm, translateError(err)
}

// FractionWeightedMean computes sum(fraction(e) * perElement[e]) over the
// composition. Every element must have a value.
func (e *Engine) FractionWeightedMean(comp *composition.Composition, perElement map[string]float64) (float64, error) {
	var acc float64

	for _, el := range comp.Elements() {
		v, ok := perElement[el]
		if !ok {
			return 0, &ErrUndefinedValue{Element: el}
		}

		acc += comp.AtomicFraction(el) * v
	}

	return acc, nil
}

// BandCenter estimates the absolute position of the band center as the
// negated geometric mean of the Pauling electronegativities,
// -(prod X_e^amount_e)^(1/sum amounts).
//
// Ref: Butler & Ginley, J. Electrochem. Soc. 125, 228 (1978).
func (e *Engine) BandCenter(ctx context.Context, comp *composition.Composition) (float64, error) {
	prod := 1.0

	for _, el := range comp.Elements() {
		v, err := e.elements.Attribute(el, element.AttrX)
		if err != nil {
			return 0, translateError(err)
		}

		if !v.Defined {
			return 0, &ErrUndefinedValue{Element: el, Property: element.AttrX}
		}

		prod *= math.Pow(v.Float, comp.Amount(el))
	}

	return -math.Pow(prod, 1/comp.NumAtoms()), nil
}

// Precheck reports whether every element of the composition has a defined
// entry in every named table. With no properties given it checks the full
// Magpie descriptor catalog. Use it to filter compositions before a batch
// run instead of sorting failures out afterwards.
func (e *Engine) Precheck(ctx context.Context, comp *composition.Composition, properties ...string) (bool, error) {
	if len(properties) == 0 {
		properties = MagpieProperties
	}

	zs := roaring.New()

	for _, el := range comp.Elements() {
		z, err := e.elements.AtomicNumber(el)
		if err != nil {
			return false, translateError(err)
		}

		zs.Add(uint32(z))
	}

	for _, property := range properties {
		t, err := e.loadTable(ctx, property)
		if err != nil {
			return false, translateError(err)
		}

		missing := zs.Clone()
		missing.AndNot(t.Coverage())

		if !missing.IsEmpty() {
			return false, nil
		}
	}

	return true, nil
}

// CohesiveEnergyRecord is the result of a cohesive-energy derivation.
// Energies are in eV/atom. Records are computed on demand and never cached.
type CohesiveEnergyRecord struct {
	Formula         string
	FormationEnergy float64
	CohesiveEnergy  float64
}

// CohesiveEnergy derives the cohesive energy of the composition by
// subtracting the elemental cohesive energies from the formation energy of
// the most stable known structure (lowest energy per atom).
func (e *Engine) CohesiveEnergy(ctx context.Context, comp *composition.Composition) (*CohesiveEnergyRecord, error) {
	if e.energyClient == nil {
		return nil, ErrNoEnergyClient
	}

	formula := comp.Formula()

	start := time.Now()
	candidates, err := e.energyClient.Lookup(ctx, formula)
	duration := time.Since(start)

	e.metrics.RecordEnergyLookup(duration, err)
	e.logger.LogEnergyLookup(ctx, formula, len(candidates), err)

	if err != nil {
		return nil, err
	}

	best, ok := energy.MostStable(candidates)
	if !ok {
		return nil, &ErrNoStructureFound{Formula: formula}
	}

	cohesive := best.FormationEnergyPerAtom

	for _, el := range comp.Elements() {
		ref, err := e.reference.Energy(el)
		if err != nil {
			return nil, err
		}

		cohesive -= comp.Amount(el) * ref
	}

	return &CohesiveEnergyRecord{
		Formula:         formula,
		FormationEnergy: best.FormationEnergyPerAtom,
		CohesiveEnergy:  cohesive,
	}, nil
}
