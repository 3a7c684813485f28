package energy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Elemental cohesive energies in eV/atom, following Kittel, Introduction to
// Solid State Physics, 8th ed., p. 50, as collected by
// http://www.knowledgedoor.com/2/elements_handbook/cohesive_energy.html.
//
//go:embed data/cohesive_energies.json
var cohesiveJSON []byte

var (
	defaultOnce sync.Once
	defaultRef  *Reference
)

// Reference maps element symbols to elemental cohesive energies in eV/atom.
// It is immutable after construction and safe for concurrent reads.
type Reference struct {
	energies map[string]float64
}

// NewReference creates a reference from an explicit table. The map is copied.
func NewReference(energies map[string]float64) *Reference {
	copied := make(map[string]float64, len(energies))
	for symbol, e := range energies {
		copied[symbol] = e
	}

	return &Reference{energies: copied}
}

// DefaultReference returns the shared reference built from the embedded
// tabulation. Elements without a published value are absent.
func DefaultReference() *Reference {
	defaultOnce.Do(func() {
		var energies map[string]float64
		if err := json.Unmarshal(cohesiveJSON, &energies); err != nil {
			panic(fmt.Sprintf("energy: corrupt embedded cohesive energy table: %v", err))
		}

		defaultRef = &Reference{energies: energies}
	})

	return defaultRef
}

// Energy returns the tabulated cohesive energy for an element.
func (r *Reference) Energy(symbol string) (float64, error) {
	e, ok := r.energies[symbol]
	if !ok {
		return 0, &ErrMissingReference{Symbol: symbol}
	}

	return e, nil
}

// Has reports whether an element is tabulated.
func (r *Reference) Has(symbol string) bool {
	_, ok := r.energies[symbol]
	return ok
}

// Symbols returns the tabulated element symbols in sorted order.
func (r *Reference) Symbols() []string {
	out := make([]string, 0, len(r.energies))
	for symbol := range r.energies {
		out = append(out, symbol)
	}
	sort.Strings(out)

	return out
}
