package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrBrokenInvariant reports a tree that violates the protocol: a
	// reference that does not resolve, or statics whose length does not
	// match the number of children. The tree cannot be repaired in place.
	ErrBrokenInvariant = errors.New("broken protocol invariant")

	ErrArity = fmt.Errorf("%w: statics arity", ErrBrokenInvariant)
)

func arityErr(nStatics, nChildren int) error {
	return fmt.Errorf("%w: %d statics for %d children", ErrArity, nStatics, nChildren)
}
