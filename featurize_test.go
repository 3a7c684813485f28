package matgo

import (
	"context"
	"math"
	"testing"

	"github.com/hupe1980/matgo/composition"
	"github.com/hupe1980/matgo/magpie"
	"github.com/hupe1980/matgo/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementalProperties(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	t.Run("CatalogOrder", func(t *testing.T) {
		props, err := eng.ElementalProperties(ctx, composition.MustParse("Fe2O3"))
		require.NoError(t, err)

		assert.Equal(t, "Fe2O3", props.Formula)
		require.Len(t, props.Stats, len(MagpieProperties))

		for i, ps := range props.Stats {
			assert.Equal(t, MagpieProperties[i], ps.Property)
		}
	})

	t.Run("PerAtomStatistics", func(t *testing.T) {
		props, err := eng.ElementalProperties(ctx, composition.MustParse("Fe2O3"))
		require.NoError(t, err)

		// AtomicWeight over [55.845 55.845 15.9994 15.9994 15.9994].
		aw := props.Stats[2]
		require.Equal(t, "AtomicWeight", aw.Property)

		assert.InDelta(t, 15.9994, aw.Stats.Min, 1e-9)
		assert.InDelta(t, 55.845, aw.Stats.Max, 1e-9)
		assert.InDelta(t, 39.8456, aw.Stats.Range, 1e-9)
		assert.InDelta(t, 31.93764, aw.Stats.Mean, 1e-9)
		assert.InDelta(t, 19.520277699008282, aw.Stats.Std, 1e-9)
		assert.InDelta(t, 15.9994, aw.Stats.Mode, 1e-9)
	})

	t.Run("VectorAndLabels", func(t *testing.T) {
		props, err := eng.ElementalProperties(ctx, composition.MustParse("NaCl"))
		require.NoError(t, err)

		vec := props.Vector()
		labels := props.Labels()

		require.Len(t, vec, len(MagpieProperties)*6)
		require.Len(t, labels, len(vec))

		assert.Equal(t, "Number_min", labels[0])
		assert.Equal(t, "Number_mode", labels[5])
		assert.Equal(t, "AtomicWeight_mean", labels[2*6+3])
		assert.InDelta(t, (22.98977+35.453)/2, vec[2*6+3], 1e-9)
	})

	t.Run("NoWholeAtoms", func(t *testing.T) {
		_, err := eng.ElementalProperties(ctx, composition.MustParse("Li0.5Na0.5"))

		require.ErrorIs(t, err, ErrNoValues)
		assert.ErrorIs(t, err, stats.ErrNoValues)
		assert.ErrorContains(t, err, `property "Number"`)
	})
}

func TestValenceFractions(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	t.Run("Fe2O3", func(t *testing.T) {
		vf, err := eng.ValenceFractions(ctx, composition.MustParse("Fe2O3"))
		require.NoError(t, err)

		// Fe: 2s+6d of 8, O: 2s+4p of 6, fractions 0.4/0.6.
		assert.InDelta(t, 0.29411764705882354, vf.Fs, 1e-12)
		assert.InDelta(t, 0.35294117647058826, vf.Fp, 1e-12)
		assert.InDelta(t, 0.35294117647058826, vf.Fd, 1e-12)
		assert.InDelta(t, 0.0, vf.Ff, 1e-12)

		assert.InDelta(t, 1.0, vf.Fs+vf.Fp+vf.Fd+vf.Ff, 1e-12)
	})

	t.Run("ZeroTotalValence", func(t *testing.T) {
		src := magpie.NewMemorySource()
		src.SetValues("NValance", []float64{math.NaN(), 0})

		eng := New(WithTableStore(magpie.NewStore(src)))

		_, err := eng.ValenceFractions(ctx, composition.MustParse("He"))

		var ratioErr *ErrUndefinedRatio
		require.ErrorAs(t, err, &ratioErr)
	})

	t.Run("UndefinedEntry", func(t *testing.T) {
		_, err := eng.ValenceFractions(ctx, composition.MustParse("Rb"))

		var undefErr *ErrUndefinedValue
		require.ErrorAs(t, err, &undefErr)
		assert.Equal(t, "Rb", undefErr.Element)
		assert.Equal(t, "NValance", undefErr.Property)
	})
}

func TestIonicCharacter(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	t.Run("NaCl", func(t *testing.T) {
		ionic, err := eng.IonicCharacter(ctx, composition.MustParse("NaCl"))
		require.NoError(t, err)

		assert.Equal(t, 1, ionic.Pairs)

		// 1 - exp(-0.25*(0.93-3.16)^2), weighted by 0.5*0.5.
		assert.InDelta(t, 0.7115475428918885, ionic.Max, 1e-12)
		assert.InDelta(t, 0.17788688572297212, ionic.Average, 1e-12)
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		forward, err := eng.IonicCharacter(ctx, composition.MustParse("NaCl"))
		require.NoError(t, err)

		reversed, err := eng.IonicCharacter(ctx, composition.MustParse("ClNa"))
		require.NoError(t, err)

		assert.InDelta(t, forward.Average, reversed.Average, 1e-12)
		assert.InDelta(t, forward.Max, reversed.Max, 1e-12)
	})

	t.Run("ThreeElements", func(t *testing.T) {
		ionic, err := eng.IonicCharacter(ctx, composition.MustParse("LiNaCl"))
		require.NoError(t, err)

		assert.Equal(t, 3, ionic.Pairs)
		assert.Greater(t, ionic.Max, ionic.Average)
	})

	t.Run("SingleElementHasNoPairs", func(t *testing.T) {
		ionic, err := eng.IonicCharacter(ctx, composition.MustParse("Fe2"))
		require.NoError(t, err)

		assert.Equal(t, IonicStats{}, ionic)
	})

	t.Run("UndefinedElectronegativity", func(t *testing.T) {
		_, err := eng.IonicCharacter(ctx, composition.MustParse("HeNa"))

		var undefErr *ErrUndefinedValue
		require.ErrorAs(t, err, &undefErr)
		assert.Equal(t, "He", undefErr.Element)
		assert.Equal(t, "Electronegativity", undefErr.Property)
	})
}

func TestFeaturize(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	t.Run("VectorLayout", func(t *testing.T) {
		fv, err := eng.Featurize(ctx, "NaCl")
		require.NoError(t, err)

		assert.Equal(t, "NaCl", fv.Formula)

		// 6 p-norms + 22 properties * 6 stats + 4 valence + 2 ionic.
		require.Equal(t, 144, fv.Len())

		labels := fv.Labels()
		values := fv.Values()

		assert.Equal(t, "0_norm", labels[0])
		assert.Equal(t, "2_norm", labels[1])
		assert.Equal(t, "10_norm", labels[5])
		assert.Equal(t, "Number_min", labels[6])
		assert.Equal(t, "frac_s_valence", labels[138])
		assert.Equal(t, "max_ionic_char", labels[143])

		assert.InDelta(t, 2.0, values[0], 1e-12)
		assert.InDelta(t, math.Sqrt(0.5), values[1], 1e-12)
		assert.InDelta(t, (22.98977+35.453)/2, values[6+2*6+3], 1e-9)

		// Na: 1s of 1, Cl: 2s+5p of 7, fractions 0.5/0.5.
		assert.InDelta(t, 0.375, values[138], 1e-12)
		assert.InDelta(t, 0.625, values[139], 1e-12)

		assert.InDelta(t, 0.17788688572297212, values[142], 1e-12)
		assert.InDelta(t, 0.7115475428918885, values[143], 1e-12)
	})

	t.Run("ValuesAreCopies", func(t *testing.T) {
		fv, err := eng.Featurize(ctx, "NaCl")
		require.NoError(t, err)

		fv.Values()[0] = math.Inf(1)
		fv.Labels()[0] = "clobbered"

		assert.InDelta(t, 2.0, fv.Values()[0], 1e-12)
		assert.Equal(t, "0_norm", fv.Labels()[0])
	})

	t.Run("InvalidFormula", func(t *testing.T) {
		_, err := eng.Featurize(ctx, "??")

		var formulaErr *composition.ErrInvalidFormula
		require.ErrorAs(t, err, &formulaErr)
	})

	t.Run("NoStore", func(t *testing.T) {
		_, err := New().Featurize(ctx, "NaCl")
		assert.ErrorIs(t, err, ErrNoTableStore)
	})
}

func TestFeaturizeBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("PreservesOrder", func(t *testing.T) {
		eng := newTestEngine(t, WithConcurrency(2))

		formulas := []string{"NaCl", "Fe2O3", "Li2O", "LiCoO2"}

		vectors, err := eng.FeaturizeBatch(ctx, formulas)
		require.NoError(t, err)
		require.Len(t, vectors, len(formulas))

		for i, fv := range vectors {
			require.NotNil(t, fv)
			assert.Equal(t, formulas[i], fv.Formula)
			assert.Equal(t, 144, fv.Len())
		}
	})

	t.Run("FirstErrorWins", func(t *testing.T) {
		eng := newTestEngine(t)

		_, err := eng.FeaturizeBatch(ctx, []string{"NaCl", "Qq", "Fe2O3"})

		require.Error(t, err)
		assert.ErrorContains(t, err, `featurize "Qq"`)

		var formulaErr *composition.ErrInvalidFormula
		assert.ErrorAs(t, err, &formulaErr)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		eng := newTestEngine(t)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := eng.FeaturizeBatch(canceled, []string{"NaCl", "Fe2O3"})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Empty", func(t *testing.T) {
		eng := newTestEngine(t)

		vectors, err := eng.FeaturizeBatch(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, vectors)
	})
}
