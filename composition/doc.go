// Package composition parses chemical formulas into immutable compositions.
//
// A composition maps element symbols to fractional amounts while preserving
// the order in which the elements first appear in the formula. Amounts are
// float64 so non-stoichiometric formulas like Li0.5CoO2 round-trip exactly.
package composition
