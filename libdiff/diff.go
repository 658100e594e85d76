package libdiff

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/rendertree/ir"
)

// Kind is the shape of a fragment or component diff.
type Kind int

const (
	// ReplaceCurrent carries a complete fragment or component. Any payload
	// carrying statics is a replacement.
	ReplaceCurrent Kind = iota
	// UpdateRegular patches the children of a regular fragment or of a
	// component by index.
	UpdateRegular
	// UpdateComprehension resends all the dynamics of a comprehension,
	// together with new templates.
	UpdateComprehension
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ReplaceCurrent:      "ReplaceCurrent",
		UpdateRegular:       "UpdateRegular",
		UpdateComprehension: "UpdateComprehension",
	}[k]
	if ok {
		return s
	}
	return "<unknown diff kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"ReplaceCurrent":      ReplaceCurrent,
		"UpdateRegular":       UpdateRegular,
		"UpdateComprehension": UpdateComprehension,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized diff kind %q", d)
	}
	*k = kk
	return nil
}

// ChildDiff is the new value for a child slot.
type ChildDiff struct {
	Kind        ir.ChildKind
	Fragment    *FragmentDiff
	ComponentID int
	String      string
}

func StringChild(v string) ChildDiff {
	return ChildDiff{Kind: ir.StringChild, String: v}
}

func ComponentIDChild(cid int) ChildDiff {
	return ChildDiff{Kind: ir.ComponentIDChild, ComponentID: cid}
}

func FragmentChild(fd *FragmentDiff) ChildDiff {
	return ChildDiff{Kind: ir.FragmentChild, Fragment: fd}
}

func (c ChildDiff) Equal(o ChildDiff) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ir.StringChild:
		return c.String == o.String
	case ir.ComponentIDChild:
		return c.ComponentID == o.ComponentID
	default:
		return c.Fragment.Equal(o.Fragment)
	}
}

// FragmentDiff describes how a fragment changes.
type FragmentDiff struct {
	Kind Kind

	// ReplaceCurrent
	Fragment *ir.Fragment

	// UpdateRegular, sparse by child index
	Children map[int]ChildDiff

	// UpdateComprehension
	Dynamics  [][]ChildDiff
	Templates ir.Templates
}

func Replace(f *ir.Fragment) *FragmentDiff {
	return &FragmentDiff{Kind: ReplaceCurrent, Fragment: f}
}

func UpdateChildren(children map[int]ChildDiff) *FragmentDiff {
	if children == nil {
		children = map[int]ChildDiff{}
	}
	return &FragmentDiff{Kind: UpdateRegular, Children: children}
}

func UpdateDynamics(templates ir.Templates, dynamics ...[]ChildDiff) *FragmentDiff {
	if dynamics == nil {
		dynamics = [][]ChildDiff{}
	}
	return &FragmentDiff{Kind: UpdateComprehension, Dynamics: dynamics, Templates: templates}
}

// Indices returns the patched child indices in ascending order.
func (d *FragmentDiff) Indices() []int {
	return slices.Sorted(maps.Keys(d.Children))
}

// IsEmpty reports whether applying d changes nothing.
func (d *FragmentDiff) IsEmpty() bool {
	return d.Kind == UpdateRegular && len(d.Children) == 0
}

func (d *FragmentDiff) Equal(o *FragmentDiff) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Kind != o.Kind {
		return false
	}
	switch d.Kind {
	case ReplaceCurrent:
		return d.Fragment.Equal(o.Fragment)
	case UpdateRegular:
		return maps.EqualFunc(d.Children, o.Children, ChildDiff.Equal)
	default:
		if !d.Templates.Equal(o.Templates) {
			return false
		}
		return slices.EqualFunc(d.Dynamics, o.Dynamics, func(a, b []ChildDiff) bool {
			return slices.EqualFunc(a, b, ChildDiff.Equal)
		})
	}
}

// ComponentDiff describes how a component changes. Components are never
// comprehensions, so only ReplaceCurrent and UpdateRegular occur.
type ComponentDiff struct {
	Kind      Kind
	Component *ir.Component
	Children  map[int]ChildDiff
}

func ReplaceComponent(c *ir.Component) *ComponentDiff {
	return &ComponentDiff{Kind: ReplaceCurrent, Component: c}
}

func UpdateComponent(children map[int]ChildDiff) *ComponentDiff {
	if children == nil {
		children = map[int]ChildDiff{}
	}
	return &ComponentDiff{Kind: UpdateRegular, Children: children}
}

func (d *ComponentDiff) Indices() []int {
	return slices.Sorted(maps.Keys(d.Children))
}

func (d *ComponentDiff) Equal(o *ComponentDiff) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Kind != o.Kind {
		return false
	}
	if d.Kind == ReplaceCurrent {
		return d.Component.Equal(o.Component)
	}
	return maps.EqualFunc(d.Children, o.Children, ChildDiff.Equal)
}

// RootDiff is one update to a Root. Templates holds root level templates
// sent alongside a regular fragment diff.
type RootDiff struct {
	Fragment   *FragmentDiff
	Components map[int]*ComponentDiff
	Templates  ir.Templates
}

// ComponentIDs returns the ids of the diffed components in ascending order.
func (d *RootDiff) ComponentIDs() []int {
	return slices.Sorted(maps.Keys(d.Components))
}

func (d *RootDiff) Equal(o *RootDiff) bool {
	if d == nil || o == nil {
		return d == o
	}
	if !d.Fragment.Equal(o.Fragment) || !d.Templates.Equal(o.Templates) {
		return false
	}
	return maps.EqualFunc(d.Components, o.Components, (*ComponentDiff).Equal)
}
