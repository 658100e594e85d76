// Package rendertree keeps a client side mirror of a server rendered tree.
//
// The server sends one initial payload describing the whole tree, then a
// stream of diffs. Package parse decodes both into the model of package ir
// and package libdiff. This package applies diffs to a tree with Merge and
// flattens a tree into its text with BuildString:
//
//	root, err := parse.ParseRoot(initial)
//	...
//	diff, err := parse.ParseDiff(update)
//	...
//	root, err = rendertree.Merge(root, diff)
//	...
//	html, err := rendertree.BuildString(root)
//
// # Merge
//
// How a fragment diff applies depends on both the diff and the current
// fragment:
//
//	current \ diff   ReplaceCurrent   UpdateRegular          UpdateComprehension
//	regular          diff fragment    patch children         FragmentTypeMismatch
//	comprehension    diff fragment    FragmentTypeMismatch   replace dynamics, merge templates
//
// Sparse patches never grow the children of a fragment; an index out of
// range is an AddChildToExisting error. A child or component that has no
// current counterpart can only be created from a full replacement.
//
// Merging is pure: both arguments are left untouched and unchanged
// subtrees are shared. Callers holding the current tree between diffs
// must serialize merges themselves; package session does so.
//
// # Errors
//
// Merge fails with a *MergeError (compare with errors.Is against
// ErrFragmentTypeMismatch, ErrCreateComponentFromUpdate,
// ErrCreateChildFromUpdateFragment and ErrAddChildToExisting) or with
// ir.ErrBrokenInvariant. BuildString fails only with ir.ErrBrokenInvariant.
// None of these are transient; recovery means fetching a fresh initial
// payload.
package rendertree
