// Package libdiff holds the diff model applied to a rendered tree.
//
// # Shape
//
// A RootDiff carries a FragmentDiff for the main fragment, optional
// ComponentDiffs keyed by component id, and optional root templates. A
// FragmentDiff either replaces the fragment (ReplaceCurrent), patches the
// children of a regular fragment by index (UpdateRegular), or resends all
// dynamics of a comprehension (UpdateComprehension).
//
// # Usage
//
//	// Compute the diff between two roots
//	d, err := libdiff.Compute(oldRoot, newRoot)
//
//	// Compare two flattened outputs
//	fmt.Println(libdiff.FormatTextDiff(libdiff.TextDiff(before, after), false))
//
// Applying diffs is done by rendertree.Merge.
package libdiff
