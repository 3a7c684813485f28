// Package element exposes tabulated periodic table attributes such as
// electronegativity, atomic mass and Mendeleev number. The built-in source is
// backed by an embedded table covering Z=1..118; alternative sources can be
// plugged in through the Source interface.
//
// An attribute may be legitimately absent for an element (noble gases carry
// no electronegativity). Absence is reported through Value.Defined, not
// through an error: errors are reserved for unknown symbols and attribute
// names that do not exist at all.
package element
