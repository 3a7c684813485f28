package magpie

import (
	"bytes"
	"context"
	"io"
	"math"
	"sort"
	"strconv"
	"sync"
)

// MemorySource serves property tables from memory. It is primarily used for
// fixtures in tests and for programmatically assembled catalogs.
type MemorySource struct {
	mu     sync.RWMutex
	tables map[string][]byte
	units  map[string]string
}

// NewMemorySource creates an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		tables: make(map[string][]byte),
		units:  make(map[string]string),
	}
}

// SetTable stores raw table text for a property.
func (s *MemorySource) SetTable(property string, text []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[property] = bytes.Clone(text)
}

// SetValues stores a property from a value slice, rendering the flat format
// with one value per line. NaN entries render as undefined lines.
func (s *MemorySource) SetValues(property string, values []float64) {
	var b bytes.Buffer

	for _, v := range values {
		if math.IsNaN(v) {
			b.WriteString("Missing\n")
			continue
		}

		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[property] = b.Bytes()
}

// SetUnit declares a unit string for a property.
func (s *MemorySource) SetUnit(property, unit string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.units[property] = unit
}

// List implements the Source interface.
func (s *MemorySource) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.tables))
	for property := range s.tables {
		out = append(out, property)
	}

	sort.Strings(out)

	return out, nil
}

// Open implements the Source interface.
func (s *MemorySource) Open(_ context.Context, property string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, ok := s.tables[property]
	if !ok {
		return nil, &ErrUnknownProperty{Property: property}
	}

	return io.NopCloser(bytes.NewReader(text)), nil
}

// Units implements the Source interface.
func (s *MemorySource) Units(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.units))
	for property, unit := range s.units {
		out[property] = unit
	}

	return out, nil
}
