package magpie

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

const defaultPreloadConcurrency = 4

// Store caches parsed property tables on top of a Source. The source
// catalog is scanned once and each table is parsed at most once; loading the
// same property again returns the identical *Table. All methods are safe
// for concurrent use.
type Store struct {
	source      Source
	concurrency int

	mu      sync.RWMutex
	catalog []string
	units   map[string]string
	tables  map[string]*Table
}

// NewStore creates a store on top of source.
func NewStore(source Source) *Store {
	return &Store{
		source:      source,
		concurrency: defaultPreloadConcurrency,
		tables:      make(map[string]*Table),
	}
}

// Catalog returns the sorted property names served by the source. The scan
// runs on first use and is cached for the lifetime of the store.
func (s *Store) Catalog(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	if s.catalog != nil {
		out := slices.Clone(s.catalog)
		s.mu.RUnlock()

		return out, nil
	}
	s.mu.RUnlock()

	names, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}

	units, err := s.source.Units(ctx)
	if err != nil {
		return nil, fmt.Errorf("read units: %w", err)
	}

	slices.Sort(names)

	s.mu.Lock()
	if s.catalog == nil {
		s.catalog = names
		s.units = units
	}

	out := slices.Clone(s.catalog)
	s.mu.Unlock()

	return out, nil
}

// Has reports whether the catalog carries the given property.
func (s *Store) Has(ctx context.Context, property string) (bool, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return false, err
	}

	_, found := slices.BinarySearch(catalog, property)

	return found, nil
}

// Units returns the declared unit strings by property name.
func (s *Store) Units(ctx context.Context) (map[string]string, error) {
	if _, err := s.Catalog(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.units))
	for property, unit := range s.units {
		out[property] = unit
	}

	return out, nil
}

// Load returns the parsed table for property, fetching and parsing it on
// first use. Unknown properties fail with ErrUnknownProperty carrying the
// full catalog.
func (s *Store) Load(ctx context.Context, property string) (*Table, error) {
	s.mu.RLock()
	t, ok := s.tables[property]
	s.mu.RUnlock()

	if ok {
		return t, nil
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	if _, found := slices.BinarySearch(catalog, property); !found {
		return nil, &ErrUnknownProperty{Property: property, Available: catalog}
	}

	rc, err := s.source.Open(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("open table %q: %w", property, err)
	}
	defer rc.Close()

	s.mu.RLock()
	unit := s.units[property]
	s.mu.RUnlock()

	parsed, err := ParseTable(property, unit, rc)
	if err != nil {
		return nil, fmt.Errorf("parse table %q: %w", property, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A concurrent load may have won the race; keep the first table so
	// callers always observe one identity per property.
	if existing, ok := s.tables[property]; ok {
		return existing, nil
	}

	s.tables[property] = parsed

	return parsed, nil
}

// Preload fetches the given properties, or the whole catalog when none are
// given, with bounded concurrency.
func (s *Store) Preload(ctx context.Context, properties ...string) error {
	if len(properties) == 0 {
		catalog, err := s.Catalog(ctx)
		if err != nil {
			return err
		}

		properties = catalog
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, property := range properties {
		property := property

		g.Go(func() error {
			_, err := s.Load(ctx, property)
			return err
		})
	}

	return g.Wait()
}

// Cached returns the number of tables parsed so far.
func (s *Store) Cached() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tables)
}
