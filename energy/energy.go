package energy

import (
	"context"
	"fmt"
)

// Candidate is one known structure for a formula, carrying the two energies
// the cohesive-energy derivation needs. Both are in eV/atom.
type Candidate struct {
	EnergyPerAtom          float64 `json:"energy_per_atom"`
	FormationEnergyPerAtom float64 `json:"formation_energy_per_atom"`
}

// Client looks up candidate structures for a chemical formula.
//
// Implementations return the full candidate list; selecting the most stable
// entry and handling an empty result is the caller's concern.
type Client interface {
	Lookup(ctx context.Context, formula string) ([]Candidate, error)
}

// MostStable returns the candidate with the lowest energy per atom.
// The second return value is false when the list is empty.
func MostStable(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.EnergyPerAtom < best.EnergyPerAtom {
			best = c
		}
	}

	return best, true
}

// ErrUnexpectedStatus indicates a non-2xx response from the energy API.
type ErrUnexpectedStatus struct {
	StatusCode int
	Body       string
}

func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// ErrInvalidResponse indicates the energy API rejected the request inside a
// syntactically valid response.
type ErrInvalidResponse struct {
	Message string
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid api response: %s", e.Message)
}

// ErrMissingReference indicates that no elemental cohesive energy is
// tabulated for an element.
type ErrMissingReference struct {
	Symbol string
}

func (e *ErrMissingReference) Error() string {
	return fmt.Sprintf("no cohesive energy reference for element %q", e.Symbol)
}
