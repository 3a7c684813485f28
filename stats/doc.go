// Package stats provides the statistical reducers used to collapse per-atom
// property sequences into fixed-size descriptors: the Holder (generalized)
// mean family, Lp norms, weighted means and a min/max/range/mean/std/mode
// summary.
//
// All reducers operate on raw float64 slices and report undefined inputs
// through ErrNoValues or ErrDomain instead of returning NaN.
package stats
