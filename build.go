package rendertree

import (
	"github.com/signadot/rendertree/debug"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"
)

// BuildString flattens root into its rendered text. Unresolvable template
// or component references fail with ir.ErrBrokenInvariant.
func BuildString(root *ir.Root) (string, error) {
	s, err := root.BuildString()
	if err != nil {
		return "", err
	}
	if debug.Build() {
		debug.Logf("built %d bytes\n", len(s))
	}
	return s, nil
}

// MergeString merges diff into root and flattens the result.
func MergeString(root *ir.Root, diff *libdiff.RootDiff) (*ir.Root, string, error) {
	res, err := Merge(root, diff)
	if err != nil {
		return nil, "", err
	}
	s, err := BuildString(res)
	if err != nil {
		return nil, "", err
	}
	return res, s, nil
}
