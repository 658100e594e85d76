package ir

import (
	"fmt"
	"io"
	"strings"
)

// BuildString flattens r into its output text, resolving template and
// component references. It fails with ErrBrokenInvariant when a reference
// does not resolve or statics do not fit their children.
func (r *Root) BuildString() (string, error) {
	sb := &strings.Builder{}
	if err := r.Build(sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Build writes the flattened output of r to w.
func (r *Root) Build(w io.StringWriter) error {
	b := &builder{w: w, root: r}
	return b.fragment(r.Fragment, r.Templates)
}

// BuildComponent writes the flattened output of component cid to w.
func (r *Root) BuildComponent(w io.StringWriter, cid int) error {
	b := &builder{w: w, root: r}
	return b.component(cid)
}

// Validate checks every reference and arity invariant reachable from the
// main fragment and from each component, without producing output.
func (r *Root) Validate() error {
	b := &builder{w: discard{}, root: r}
	if err := b.fragment(r.Fragment, r.Templates); err != nil {
		return err
	}
	for _, cid := range r.ComponentIDs() {
		if err := b.component(cid); err != nil {
			return err
		}
	}
	return nil
}

type discard struct{}

func (discard) WriteString(s string) (int, error) { return len(s), nil }

type builder struct {
	w      io.StringWriter
	root   *Root
	active map[int]bool
}

func (b *builder) write(s string) error {
	_, err := b.w.WriteString(s)
	return err
}

func (b *builder) fragment(f *Fragment, scope Templates) error {
	if f == nil {
		return fmt.Errorf("%w: missing fragment", ErrBrokenInvariant)
	}
	if f.Kind == ComprehensionKind {
		scope = scope.Merge(f.Templates)
	}
	statics, err := f.Statics.EffectiveValue(scope)
	if err != nil {
		return err
	}
	switch f.Kind {
	case RegularKind:
		return b.interleave(statics, f.Children, scope)
	case ComprehensionKind:
		for i, dyn := range f.Dynamics {
			if err := b.interleave(statics, dyn, scope); err != nil {
				return AtPath(err, DynamicsSeg(i))
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: fragment of kind %s", ErrBrokenInvariant, f.Kind)
	}
}

func (b *builder) interleave(statics []string, children []Child, scope Templates) error {
	if len(statics) != len(children)+1 {
		return arityErr(len(statics), len(children))
	}
	if err := b.write(statics[0]); err != nil {
		return err
	}
	for i := range children {
		if err := b.child(children[i], scope); err != nil {
			return AtPath(err, ChildSeg(i))
		}
		if err := b.write(statics[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) child(c Child, scope Templates) error {
	switch c.Kind {
	case StringChild:
		return b.write(c.String)
	case ComponentIDChild:
		return b.component(c.ComponentID)
	case FragmentChild:
		return b.fragment(c.Fragment, scope)
	default:
		return fmt.Errorf("%w: child of kind %s", ErrBrokenInvariant, c.Kind)
	}
}

// component flattens a component with an empty template scope: components
// never see the templates of the fragment referencing them.
func (b *builder) component(cid int) error {
	cid = absCID(cid)
	if b.active[cid] {
		return AtPath(fmt.Errorf("%w: component %d contains itself", ErrBrokenInvariant, cid), ComponentSeg(cid))
	}
	comp, err := b.root.Component(cid)
	if err != nil {
		return err
	}
	statics, err := comp.Statics.EffectiveValue(b.root)
	if err != nil {
		return AtPath(err, ComponentSeg(cid))
	}
	if b.active == nil {
		b.active = map[int]bool{}
	}
	b.active[cid] = true
	defer delete(b.active, cid)
	return AtPath(b.interleave(statics, comp.Children, nil), ComponentSeg(cid))
}
