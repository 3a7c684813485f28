package magpie

import (
	"context"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSource(t *testing.T) *MemorySource {
	t.Helper()

	src := NewMemorySource()
	src.SetValues("Number", []float64{1, 2, 3, 4, 5})
	src.SetValues("Electronegativity", []float64{2.2, math.NaN(), 0.98, 1.57, 2.04})
	src.SetValues("MeltingT", []float64{14.01, 0.95, 453.69, 1560, 2349})
	src.SetUnit("MeltingT", "K")

	return src
}

func TestStoreCatalog(t *testing.T) {
	store := NewStore(fixtureSource(t))

	catalog, err := store.Catalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Electronegativity", "MeltingT", "Number"}, catalog)
}

func TestStoreLoad(t *testing.T) {
	store := NewStore(fixtureSource(t))
	ctx := context.Background()

	t.Run("ParsesAndCaches", func(t *testing.T) {
		table, err := store.Load(ctx, "Electronegativity")
		require.NoError(t, err)

		v, ok := table.Value(1)
		assert.True(t, ok)
		assert.InDelta(t, 2.2, v, 1e-12)

		_, ok = table.Value(2)
		assert.False(t, ok)

		assert.Equal(t, 1, store.Cached())
	})

	t.Run("SecondLoadReturnsSameTable", func(t *testing.T) {
		first, err := store.Load(ctx, "MeltingT")
		require.NoError(t, err)

		second, err := store.Load(ctx, "MeltingT")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, "K", first.Unit())
	})

	t.Run("UnknownProperty", func(t *testing.T) {
		_, err := store.Load(ctx, "Density")
		require.Error(t, err)

		var unknownErr *ErrUnknownProperty
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "Density", unknownErr.Property)
		assert.Equal(t, []string{"Electronegativity", "MeltingT", "Number"}, unknownErr.Available)
	})
}

func TestStoreHas(t *testing.T) {
	store := NewStore(fixtureSource(t))
	ctx := context.Background()

	ok, err := store.Has(ctx, "Number")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Has(ctx, "Density")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreUnits(t *testing.T) {
	store := NewStore(fixtureSource(t))

	units, err := store.Units(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "K", units["MeltingT"])
	assert.NotContains(t, units, "Number")
}

func TestStorePreload(t *testing.T) {
	t.Run("WholeCatalog", func(t *testing.T) {
		store := NewStore(fixtureSource(t))

		require.NoError(t, store.Preload(context.Background()))
		assert.Equal(t, 3, store.Cached())
	})

	t.Run("Subset", func(t *testing.T) {
		store := NewStore(fixtureSource(t))

		require.NoError(t, store.Preload(context.Background(), "Number"))
		assert.Equal(t, 1, store.Cached())
	})

	t.Run("UnknownProperty", func(t *testing.T) {
		store := NewStore(fixtureSource(t))

		err := store.Preload(context.Background(), "Number", "Density")
		require.Error(t, err)

		var unknownErr *ErrUnknownProperty
		assert.ErrorAs(t, err, &unknownErr)
	})
}

func TestStoreConcurrentLoad(t *testing.T) {
	store := NewStore(fixtureSource(t))
	ctx := context.Background()

	const goroutines = 16

	tables := make([]*Table, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			table, err := store.Load(ctx, "Number")
			assert.NoError(t, err)
			tables[i] = table
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, tables[0], tables[i])
	}

	assert.Equal(t, 1, store.Cached())
}

func TestStoreWithDirSource(t *testing.T) {
	store := NewStore(NewDirSource(filepath.Join("testdata", "magpie")))
	ctx := context.Background()

	catalog, err := store.Catalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 3)

	table, err := store.Load(ctx, "AtomicWeight")
	require.NoError(t, err)
	assert.Equal(t, "amu", table.Unit())

	v, ok := table.Value(11) // Na
	assert.True(t, ok)
	assert.InDelta(t, 22.98976928, v, 1e-9)
}
