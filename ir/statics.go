package ir

import (
	"fmt"
	"maps"
	"slices"
)

// Statics are the literal strings surrounding the children of a fragment,
// either inline or by reference into a Templates pool.
type Statics struct {
	Kind   StaticsKind
	Values []string
	Ref    int
}

func FromStatics(values ...string) Statics {
	if values == nil {
		values = []string{}
	}
	return Statics{Kind: InlineStatics, Values: values}
}

func FromTemplateRef(i int) Statics {
	return Statics{Kind: TemplateRef, Ref: i}
}

// EffectiveValue resolves s in the template scope t.
func (s Statics) EffectiveValue(t Templates) ([]string, error) {
	switch s.Kind {
	case InlineStatics:
		return s.Values, nil
	case TemplateRef:
		if t == nil {
			return nil, fmt.Errorf("%w: template %d referenced with no templates in scope", ErrBrokenInvariant, s.Ref)
		}
		v, ok := t[s.Ref]
		if !ok {
			return nil, fmt.Errorf("%w: missing template %d", ErrBrokenInvariant, s.Ref)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: statics of kind %s", ErrBrokenInvariant, s.Kind)
	}
}

func (s Statics) Equal(o Statics) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == InlineStatics {
		return slices.Equal(s.Values, o.Values)
	}
	return s.Ref == o.Ref
}

// ComponentStatics are the statics of a component, either inline or shared
// with another component by id.
type ComponentStatics struct {
	Kind   StaticsKind
	Values []string
	Ref    int
}

func FromComponentStatics(values ...string) ComponentStatics {
	if values == nil {
		values = []string{}
	}
	return ComponentStatics{Kind: InlineStatics, Values: values}
}

// FromComponentRef refers to the statics of component cid. A negative cid
// is the transport's marker for a component that already exists on the
// client; it resolves to the same component as its absolute value.
func FromComponentRef(cid int) ComponentStatics {
	return ComponentStatics{Kind: ComponentRef, Ref: cid}
}

// EffectiveValue resolves s through root's components, following chains
// of references.
func (s ComponentStatics) EffectiveValue(root *Root) ([]string, error) {
	var seen map[int]bool
	cur := s
	for {
		switch cur.Kind {
		case InlineStatics:
			return cur.Values, nil
		case ComponentRef:
		default:
			return nil, fmt.Errorf("%w: component statics of kind %s", ErrBrokenInvariant, cur.Kind)
		}
		cid := absCID(cur.Ref)
		if seen[cid] {
			return nil, fmt.Errorf("%w: cyclic statics reference through component %d", ErrBrokenInvariant, cid)
		}
		if seen == nil {
			seen = map[int]bool{}
		}
		seen[cid] = true
		comp, err := root.Component(cid)
		if err != nil {
			return nil, err
		}
		cur = comp.Statics
	}
}

// Normalized returns s with a negative component reference made positive.
func (s ComponentStatics) Normalized() ComponentStatics {
	if s.Kind == ComponentRef && s.Ref < 0 {
		s.Ref = -s.Ref
	}
	return s
}

func (s ComponentStatics) Equal(o ComponentStatics) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == InlineStatics {
		return slices.Equal(s.Values, o.Values)
	}
	return s.Ref == o.Ref
}

func absCID(cid int) int {
	if cid < 0 {
		return -cid
	}
	return cid
}

// Templates is a pool of statics shared by index. A nil Templates means no
// pool is present.
type Templates map[int][]string

// Merge combines t with newer. Entries of newer replace entries of t with
// the same index, entries only in t are kept.
func (t Templates) Merge(newer Templates) Templates {
	if t == nil {
		return newer
	}
	if newer == nil {
		return t
	}
	res := make(Templates, len(t)+len(newer))
	maps.Copy(res, t)
	maps.Copy(res, newer)
	return res
}

// Keys returns the template indices in ascending order.
func (t Templates) Keys() []int {
	return slices.Sorted(maps.Keys(t))
}

// Equal treats a nil pool and an empty pool alike.
func (t Templates) Equal(o Templates) bool {
	return maps.EqualFunc(t, o, slices.Equal[[]string])
}
