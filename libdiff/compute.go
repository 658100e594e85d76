package libdiff

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/rendertree/ir"
)

// ErrUnrepresentable is returned by Compute when the change between two
// roots has no diff encoding, such as a removed component or template.
var ErrUnrepresentable = errors.New("change not representable as a diff")

// Compute returns the diff that turns from into to: merging the result into
// from yields a root equal to to. Unchanged children and components are
// left out; changed statics make a replacement; comprehension dynamics are
// always sent in full.
func Compute(from, to *ir.Root) (*RootDiff, error) {
	res := &RootDiff{Fragment: computeFragment(from.Fragment, to.Fragment)}
	replace := res.Fragment.Kind == ReplaceCurrent
	switch {
	case to.Fragment.Kind == ir.RegularKind && replace:
		// a replacement resets the root templates
		if len(to.Templates) != 0 {
			res.Templates = maps.Clone(to.Templates)
		}
	case to.Fragment.Kind == ir.RegularKind:
		tpl, err := computeTemplates(from.Templates, to.Templates)
		if err != nil {
			return nil, fmt.Errorf("root templates: %w", err)
		}
		res.Templates = tpl
	case len(to.Templates) != 0 || (len(from.Templates) != 0 && !replace):
		return nil, fmt.Errorf("%w: root templates beside a comprehension", ErrUnrepresentable)
	}
	for _, cid := range from.ComponentIDs() {
		if _, ok := to.Components[cid]; !ok {
			return nil, fmt.Errorf("%w: component %d removed", ErrUnrepresentable, cid)
		}
	}
	comps := map[int]*ComponentDiff{}
	for _, cid := range to.ComponentIDs() {
		toComp := to.Components[cid]
		fromComp, ok := from.Components[cid]
		if !ok {
			comps[cid] = ReplaceComponent(toComp)
			continue
		}
		cd := computeComponent(fromComp, toComp)
		if cd != nil {
			comps[cid] = cd
		}
	}
	if len(comps) != 0 {
		res.Components = comps
	}
	return res, nil
}

func computeFragment(from, to *ir.Fragment) *FragmentDiff {
	if from == nil || from.Kind != to.Kind || !from.Statics.Equal(to.Statics) {
		return Replace(to)
	}
	switch to.Kind {
	case ir.RegularKind:
		children, ok := computeChildren(from.Children, to.Children)
		if !ok {
			return Replace(to)
		}
		return UpdateChildren(children)
	default:
		tpl, err := computeTemplates(from.Templates, to.Templates)
		if err != nil {
			return Replace(to)
		}
		dyns := make([][]ChildDiff, len(to.Dynamics))
		for i, dyn := range to.Dynamics {
			dyns[i] = make([]ChildDiff, len(dyn))
			for j := range dyn {
				dyns[i][j] = NewChildDiff(dyn[j])
			}
		}
		return UpdateDynamics(tpl, dyns...)
	}
}

// computeComponent returns nil when the components are equal.
func computeComponent(from, to *ir.Component) *ComponentDiff {
	if !from.Statics.Equal(to.Statics) {
		return ReplaceComponent(to)
	}
	children, ok := computeChildren(from.Children, to.Children)
	if !ok {
		return ReplaceComponent(to)
	}
	if len(children) == 0 {
		return nil
	}
	return UpdateComponent(children)
}

func computeChildren(from, to []ir.Child) (map[int]ChildDiff, bool) {
	if len(from) != len(to) {
		return nil, false
	}
	res := map[int]ChildDiff{}
	for i := range to {
		if from[i].Equal(to[i]) {
			continue
		}
		if from[i].Kind == ir.FragmentChild && to[i].Kind == ir.FragmentChild {
			res[i] = FragmentChild(computeFragment(from[i].Fragment, to[i].Fragment))
			continue
		}
		res[i] = NewChildDiff(to[i])
	}
	return res, true
}

// computeTemplates returns the entries of to that are new or changed with
// respect to from, or nil if there are none.
func computeTemplates(from, to ir.Templates) (ir.Templates, error) {
	var res ir.Templates
	for _, k := range from.Keys() {
		if _, ok := to[k]; !ok {
			return nil, fmt.Errorf("%w: template %d removed", ErrUnrepresentable, k)
		}
	}
	for _, k := range to.Keys() {
		old, ok := from[k]
		if ok && slices.Equal(old, to[k]) {
			continue
		}
		if res == nil {
			res = ir.Templates{}
		}
		res[k] = to[k]
	}
	return res, nil
}

// NewChildDiff describes c as a child diff that creates it from scratch.
func NewChildDiff(c ir.Child) ChildDiff {
	switch c.Kind {
	case ir.StringChild:
		return StringChild(c.String)
	case ir.ComponentIDChild:
		return ComponentIDChild(c.ComponentID)
	default:
		return FragmentChild(Replace(c.Fragment))
	}
}
