// Package ir holds the rendered tree: a Root with its main Fragment, its
// component table and its root templates.
//
// # Shape
//
// A Fragment is either regular, a fixed list of Children interleaved with
// Statics, or a comprehension, whose Statics are repeated once for each
// entry of Dynamics. Statics are inline strings or an index into a
// Templates pool. A Child is a nested Fragment, a component id or a
// string. Components are regular subtrees kept in Root.Components and
// referenced by id; their statics may be shared with another component.
//
// # Invariants
//
// For every regular fragment and component, and for every repetition of a
// comprehension, the resolved statics have exactly one more entry than
// there are children. Every template and component reference resolves.
// Violations surface as ErrBrokenInvariant, located with a PathError.
//
// Values in this package are treated as immutable once built: merging
// produces new nodes and shares unchanged ones.
//
// # Related Packages
//
//   - github.com/signadot/rendertree/libdiff - diffs against a Root
//   - github.com/signadot/rendertree/parse - decoding payloads
//   - github.com/signadot/rendertree/encode - encoding payloads
package ir
