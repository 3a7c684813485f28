package magpie

import (
	"fmt"
	"strings"
)

// ErrUnknownProperty is returned when a requested property is not part of
// the source catalog.
type ErrUnknownProperty struct {
	Property  string
	Available []string
}

func (e *ErrUnknownProperty) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown property %q", e.Property)
	}

	return fmt.Sprintf("unknown property %q: choose from %s", e.Property, strings.Join(e.Available, ", "))
}

// ErrAtomicNumber is returned when a table carries no line for the requested
// atomic number.
type ErrAtomicNumber struct {
	Property string
	Z        int
	Len      int
}

func (e *ErrAtomicNumber) Error() string {
	return fmt.Sprintf("property %q: atomic number %d outside table range 1..%d", e.Property, e.Z, e.Len)
}
