package ir

import (
	"fmt"
	"maps"
	"slices"
)

// Child is a dynamic value slotted between statics: a nested fragment, a
// reference to a component, or literal text.
type Child struct {
	Kind        ChildKind
	Fragment    *Fragment
	ComponentID int
	String      string
}

func FromString(v string) Child {
	return Child{Kind: StringChild, String: v}
}

func FromComponentID(cid int) Child {
	return Child{Kind: ComponentIDChild, ComponentID: cid}
}

func FromFragment(f *Fragment) Child {
	return Child{Kind: FragmentChild, Fragment: f}
}

func (c Child) Equal(o Child) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case StringChild:
		return c.String == o.String
	case ComponentIDChild:
		return c.ComponentID == o.ComponentID
	default:
		return c.Fragment.Equal(o.Fragment)
	}
}

// Fragment is a node of the rendered tree. A regular fragment interleaves
// Statics with Children. A comprehension repeats its statics once per entry
// of Dynamics and may carry its own Templates.
type Fragment struct {
	Kind      FragmentKind
	Statics   Statics
	Children  []Child
	Dynamics  [][]Child
	Templates Templates
}

// NewRegular builds a regular fragment, checking the arity of inline
// statics. Template references are checked when the tree is built.
func NewRegular(statics Statics, children ...Child) (*Fragment, error) {
	if children == nil {
		children = []Child{}
	}
	if err := checkArity(statics.Kind, statics.Values, len(children)); err != nil {
		return nil, err
	}
	return &Fragment{Kind: RegularKind, Statics: statics, Children: children}, nil
}

// NewComprehension builds a comprehension, checking every repetition
// against inline statics.
func NewComprehension(statics Statics, templates Templates, dynamics ...[]Child) (*Fragment, error) {
	if dynamics == nil {
		dynamics = [][]Child{}
	}
	for i, dyn := range dynamics {
		if err := checkArity(statics.Kind, statics.Values, len(dyn)); err != nil {
			return nil, AtPath(err, DynamicsSeg(i))
		}
	}
	return &Fragment{
		Kind:      ComprehensionKind,
		Statics:   statics,
		Dynamics:  dynamics,
		Templates: templates,
	}, nil
}

func checkArity(kind StaticsKind, values []string, n int) error {
	if kind != InlineStatics {
		return nil
	}
	if len(values) != n+1 {
		return arityErr(len(values), n)
	}
	return nil
}

func (f *Fragment) Equal(o *Fragment) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.Kind != o.Kind || !f.Statics.Equal(o.Statics) {
		return false
	}
	if f.Kind == RegularKind {
		return slices.EqualFunc(f.Children, o.Children, Child.Equal)
	}
	if !f.Templates.Equal(o.Templates) {
		return false
	}
	return slices.EqualFunc(f.Dynamics, o.Dynamics, func(a, b []Child) bool {
		return slices.EqualFunc(a, b, Child.Equal)
	})
}

// Component is an independently addressable subtree. Components are always
// regular.
type Component struct {
	Statics  ComponentStatics
	Children []Child
}

func NewComponent(statics ComponentStatics, children ...Child) (*Component, error) {
	if children == nil {
		children = []Child{}
	}
	if err := checkArity(statics.Kind, statics.Values, len(children)); err != nil {
		return nil, err
	}
	return &Component{Statics: statics, Children: children}, nil
}

// FixStatics returns c with a negative statics reference replaced by its
// absolute value. Lookups resolve both forms alike; the sign only tells
// whether the referenced component was already on the client.
func (c *Component) FixStatics() *Component {
	if c.Statics.Kind != ComponentRef || c.Statics.Ref >= 0 {
		return c
	}
	return &Component{Statics: c.Statics.Normalized(), Children: c.Children}
}

func (c *Component) Equal(o *Component) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Statics.Equal(o.Statics) && slices.EqualFunc(c.Children, o.Children, Child.Equal)
}

// Root is one rendered view: the main fragment, the component table and
// the root level templates.
type Root struct {
	Fragment   *Fragment
	Components map[int]*Component
	Templates  Templates
}

// Component looks up cid, treating a negative id as its absolute value.
func (r *Root) Component(cid int) (*Component, error) {
	c, ok := r.Components[absCID(cid)]
	if !ok {
		return nil, fmt.Errorf("%w: missing component %d", ErrBrokenInvariant, cid)
	}
	return c, nil
}

// ComponentIDs returns the component ids in ascending order.
func (r *Root) ComponentIDs() []int {
	return slices.Sorted(maps.Keys(r.Components))
}

// DropComponents returns a copy of r without the given components.
func (r *Root) DropComponents(cids ...int) *Root {
	res := &Root{Fragment: r.Fragment, Templates: r.Templates}
	if r.Components == nil {
		return res
	}
	res.Components = maps.Clone(r.Components)
	for _, cid := range cids {
		delete(res.Components, absCID(cid))
	}
	if len(res.Components) == 0 {
		res.Components = nil
	}
	return res
}

// Equal treats a nil component table and an empty one alike.
func (r *Root) Equal(o *Root) bool {
	if r == nil || o == nil {
		return r == o
	}
	if !r.Fragment.Equal(o.Fragment) || !r.Templates.Equal(o.Templates) {
		return false
	}
	return maps.EqualFunc(r.Components, o.Components, (*Component).Equal)
}
