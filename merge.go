package rendertree

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/rendertree/debug"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"
)

// Merge applies diff to root and returns the resulting root. Neither
// argument is modified; unchanged subtrees are shared with the result.
//
// On error, the returned error wraps a *MergeError or
// ir.ErrBrokenInvariant, located by an *ir.PathError when the failure is
// below the root fragment. No partial result is returned and root remains
// valid.
func Merge(root *ir.Root, diff *libdiff.RootDiff) (*ir.Root, error) {
	if root == nil || diff == nil {
		return nil, fmt.Errorf("%w: nil root or diff", ir.ErrBrokenInvariant)
	}
	frag, err := mergeFragment(root.Fragment, diff.Fragment)
	if err != nil {
		return nil, err
	}
	comps, err := mergeComponents(root.Components, diff.Components)
	if err != nil {
		return nil, err
	}
	// a replaced root fragment brings its own root templates
	templates := diff.Templates
	if diff.Fragment.Kind != libdiff.ReplaceCurrent {
		templates = root.Templates.Merge(diff.Templates)
	}
	res := &ir.Root{
		Fragment:   frag,
		Components: comps,
		Templates:  templates,
	}
	if debug.Merge() {
		debug.Logf("merged diff\n%s\ninto root giving\n%s\n", debug.Diff{RootDiff: diff}, debug.Root{Root: res})
	}
	return res, nil
}

type fragmentMergeKey struct {
	current ir.FragmentKind
	diff    libdiff.Kind
}

type fragmentMergeFunc func(*ir.Fragment, *libdiff.FragmentDiff) (*ir.Fragment, error)

// fragmentMerges lists the valid (current, diff) pairs. Any other pair is
// a FragmentTypeMismatch.
var fragmentMerges map[fragmentMergeKey]fragmentMergeFunc

func init() {
	fragmentMerges = map[fragmentMergeKey]fragmentMergeFunc{
		{ir.RegularKind, libdiff.ReplaceCurrent}:            replaceFragment,
		{ir.ComprehensionKind, libdiff.ReplaceCurrent}:      replaceFragment,
		{ir.RegularKind, libdiff.UpdateRegular}:             updateRegular,
		{ir.ComprehensionKind, libdiff.UpdateComprehension}: updateComprehension,
	}
}

func mergeFragment(cur *ir.Fragment, d *libdiff.FragmentDiff) (*ir.Fragment, error) {
	if cur == nil || d == nil {
		return nil, fmt.Errorf("%w: missing fragment or fragment diff", ir.ErrBrokenInvariant)
	}
	f, ok := fragmentMerges[fragmentMergeKey{cur.Kind, d.Kind}]
	if !ok {
		return nil, mergeErr(FragmentTypeMismatch, "%s against %s fragment", d.Kind, cur.Kind)
	}
	return f(cur, d)
}

func replaceFragment(_ *ir.Fragment, d *libdiff.FragmentDiff) (*ir.Fragment, error) {
	if d.Fragment == nil {
		return nil, fmt.Errorf("%w: replacement without fragment", ir.ErrBrokenInvariant)
	}
	return d.Fragment, nil
}

func updateRegular(cur *ir.Fragment, d *libdiff.FragmentDiff) (*ir.Fragment, error) {
	children, err := patchChildren(cur.Children, d.Children)
	if err != nil {
		return nil, err
	}
	return &ir.Fragment{Kind: ir.RegularKind, Statics: cur.Statics, Children: children}, nil
}

func updateComprehension(cur *ir.Fragment, d *libdiff.FragmentDiff) (*ir.Fragment, error) {
	dyns := make([][]ir.Child, len(d.Dynamics))
	for i, row := range d.Dynamics {
		dyns[i] = make([]ir.Child, len(row))
		for j := range row {
			c, err := toNewChild(row[j])
			if err != nil {
				return nil, ir.AtPath(ir.AtPath(err, ir.ChildSeg(j)), ir.DynamicsSeg(i))
			}
			dyns[i][j] = c
		}
	}
	return ir.NewComprehension(cur.Statics, cur.Templates.Merge(d.Templates), dyns...)
}

// patchChildren applies a sparse patch to a copy of cur. The patch cannot
// grow the children.
func patchChildren(cur []ir.Child, patch map[int]libdiff.ChildDiff) ([]ir.Child, error) {
	if len(patch) == 0 {
		return cur, nil
	}
	res := slices.Clone(cur)
	for _, i := range slices.Sorted(maps.Keys(patch)) {
		if i < 0 || i >= len(cur) {
			return nil, ir.AtPath(mergeErr(AddChildToExisting, "index %d of %d children", i, len(cur)), ir.ChildSeg(i))
		}
		c, err := mergeChild(cur[i], patch[i])
		if err != nil {
			return nil, ir.AtPath(err, ir.ChildSeg(i))
		}
		res[i] = c
	}
	return res, nil
}

func mergeChild(cur ir.Child, d libdiff.ChildDiff) (ir.Child, error) {
	if cur.Kind == ir.FragmentChild && d.Kind == ir.FragmentChild {
		f, err := mergeFragment(cur.Fragment, d.Fragment)
		if err != nil {
			return ir.Child{}, err
		}
		return ir.FromFragment(f), nil
	}
	return toNewChild(d)
}

// toNewChild makes a child from a diff with nothing to patch against.
func toNewChild(d libdiff.ChildDiff) (ir.Child, error) {
	switch d.Kind {
	case ir.StringChild:
		return ir.FromString(d.String), nil
	case ir.ComponentIDChild:
		return ir.FromComponentID(d.ComponentID), nil
	case ir.FragmentChild:
		if d.Fragment == nil {
			return ir.Child{}, fmt.Errorf("%w: fragment child without diff", ir.ErrBrokenInvariant)
		}
		if d.Fragment.Kind != libdiff.ReplaceCurrent {
			return ir.Child{}, mergeErr(CreateChildFromUpdateFragment, "%s for a new child", d.Fragment.Kind)
		}
		return replaceChild(d.Fragment)
	default:
		return ir.Child{}, fmt.Errorf("%w: child diff of kind %s", ir.ErrBrokenInvariant, d.Kind)
	}
}

func replaceChild(d *libdiff.FragmentDiff) (ir.Child, error) {
	f, err := replaceFragment(nil, d)
	if err != nil {
		return ir.Child{}, err
	}
	return ir.FromFragment(f), nil
}

func mergeComponents(cur map[int]*ir.Component, d map[int]*libdiff.ComponentDiff) (map[int]*ir.Component, error) {
	if len(d) == 0 {
		return cur, nil
	}
	res := make(map[int]*ir.Component, len(cur)+len(d))
	maps.Copy(res, cur)
	for _, cid := range slices.Sorted(maps.Keys(d)) {
		var (
			comp *ir.Component
			err  error
		)
		if old, ok := cur[cid]; ok {
			comp, err = mergeComponent(old, d[cid])
		} else {
			comp, err = toNewComponent(d[cid])
		}
		if err != nil {
			return nil, ir.AtPath(err, ir.ComponentSeg(cid))
		}
		res[cid] = comp
	}
	return res, nil
}

func mergeComponent(cur *ir.Component, d *libdiff.ComponentDiff) (*ir.Component, error) {
	switch d.Kind {
	case libdiff.ReplaceCurrent:
		return toNewComponent(d)
	case libdiff.UpdateRegular:
		children, err := patchChildren(cur.Children, d.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Component{Statics: cur.Statics, Children: children}, nil
	default:
		return nil, mergeErr(FragmentTypeMismatch, "%s against a component", d.Kind)
	}
}

func toNewComponent(d *libdiff.ComponentDiff) (*ir.Component, error) {
	if d.Kind != libdiff.ReplaceCurrent {
		return nil, mergeErr(CreateComponentFromUpdate, "%s for a new component", d.Kind)
	}
	if d.Component == nil {
		return nil, fmt.Errorf("%w: replacement without component", ir.ErrBrokenInvariant)
	}
	return d.Component.FixStatics(), nil
}
