package eval

import (
	"github.com/signadot/rendertree/ir"
)

// Env is the set of variables visible to expressions.
type Env map[string]any

// Env keys.
const (
	HTMLKey           = "html"
	ComponentsKey     = "components"
	TemplatesKey      = "templates"
	FragmentsKey      = "fragments"
	ComprehensionsKey = "comprehensions"
	DepthKey          = "depth"
)

// FromRoot builds the environment describing root: its flattened output
// and counts of its parts. Depth is the deepest fragment nesting, counting
// the root fragment and each component body as depth 1.
func FromRoot(root *ir.Root) (Env, error) {
	html, err := root.BuildString()
	if err != nil {
		return nil, err
	}
	st := &stats{templates: len(root.Templates)}
	st.fragment(root.Fragment, 1)
	for _, cid := range root.ComponentIDs() {
		st.children(root.Components[cid].Children, 1)
	}
	return Env{
		HTMLKey:           html,
		ComponentsKey:     len(root.Components),
		TemplatesKey:      st.templates,
		FragmentsKey:      st.fragments,
		ComprehensionsKey: st.comprehensions,
		DepthKey:          st.depth,
	}, nil
}

type stats struct {
	templates      int
	fragments      int
	comprehensions int
	depth          int
}

func (s *stats) fragment(f *ir.Fragment, depth int) {
	s.fragments++
	s.depth = max(s.depth, depth)
	if f.Kind == ir.RegularKind {
		s.children(f.Children, depth+1)
		return
	}
	s.comprehensions++
	s.templates += len(f.Templates)
	for _, dyn := range f.Dynamics {
		s.children(dyn, depth+1)
	}
}

func (s *stats) children(cs []ir.Child, depth int) {
	for i := range cs {
		if cs[i].Kind == ir.FragmentChild {
			s.fragment(cs[i].Fragment, depth)
		}
	}
}
