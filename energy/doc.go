// Package energy resolves compound formation energies from an external
// materials database and carries the elemental cohesive-energy reference
// data needed to turn a formation energy into a compound cohesive energy.
//
// The lookup is network-bound and intentionally minimal: one request per
// formula, no retries. Callers that need batching or caching wrap the
// Client interface.
package energy
