package encode

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"

	"github.com/goccy/go-yaml"
)

// ErrRootTemplates is returned for a root holding root templates beside a
// comprehension: the encoding has a single "p" slot for both.
var ErrRootTemplates = errors.New("root templates beside a comprehension root")

// Objects are built as yaml.MapSlice so that key order is deterministic:
// children by index, then "d", "s", "p" and, at the root, "c".

// RootValue returns the payload of r as an ordered generic value.
func RootValue(r *ir.Root) (yaml.MapSlice, error) {
	res := fragmentValue(r.Fragment)
	if len(r.Templates) != 0 {
		if r.Fragment.Kind == ir.ComprehensionKind {
			return nil, ErrRootTemplates
		}
		res = append(res, yaml.MapItem{Key: ir.TemplatesKey, Value: templatesValue(r.Templates)})
	}
	if len(r.Components) != 0 {
		comps := make(yaml.MapSlice, 0, len(r.Components))
		for _, cid := range r.ComponentIDs() {
			comps = append(comps, yaml.MapItem{Key: strconv.Itoa(cid), Value: componentValue(r.Components[cid])})
		}
		res = append(res, yaml.MapItem{Key: ir.ComponentsKey, Value: comps})
	}
	return res, nil
}

// DiffValue returns the payload of d as an ordered generic value.
func DiffValue(d *libdiff.RootDiff) (yaml.MapSlice, error) {
	res := fragmentDiffValue(d.Fragment)
	if len(d.Templates) != 0 {
		if d.Fragment.Kind == libdiff.UpdateComprehension ||
			(d.Fragment.Kind == libdiff.ReplaceCurrent && d.Fragment.Fragment.Kind == ir.ComprehensionKind) {
			return nil, ErrRootTemplates
		}
		res = append(res, yaml.MapItem{Key: ir.TemplatesKey, Value: templatesValue(d.Templates)})
	}
	if len(d.Components) != 0 {
		comps := make(yaml.MapSlice, 0, len(d.Components))
		for _, cid := range d.ComponentIDs() {
			comps = append(comps, yaml.MapItem{Key: strconv.Itoa(cid), Value: componentDiffValue(d.Components[cid])})
		}
		res = append(res, yaml.MapItem{Key: ir.ComponentsKey, Value: comps})
	}
	return res, nil
}

func fragmentValue(f *ir.Fragment) yaml.MapSlice {
	var res yaml.MapSlice
	switch f.Kind {
	case ir.ComprehensionKind:
		dyns := make([]any, len(f.Dynamics))
		for i, dyn := range f.Dynamics {
			dyns[i] = childrenValue(dyn)
		}
		res = yaml.MapSlice{{Key: ir.DynamicsKey, Value: dyns}}
		res = append(res, yaml.MapItem{Key: ir.StaticsKey, Value: staticsValue(f.Statics)})
		if f.Templates != nil {
			res = append(res, yaml.MapItem{Key: ir.TemplatesKey, Value: templatesValue(f.Templates)})
		}
	default:
		res = make(yaml.MapSlice, 0, len(f.Children)+1)
		for i := range f.Children {
			res = append(res, yaml.MapItem{Key: strconv.Itoa(i), Value: childValue(f.Children[i])})
		}
		res = append(res, yaml.MapItem{Key: ir.StaticsKey, Value: staticsValue(f.Statics)})
	}
	return res
}

func componentValue(c *ir.Component) yaml.MapSlice {
	res := make(yaml.MapSlice, 0, len(c.Children)+1)
	for i := range c.Children {
		res = append(res, yaml.MapItem{Key: strconv.Itoa(i), Value: childValue(c.Children[i])})
	}
	var statics any
	switch c.Statics.Kind {
	case ir.ComponentRef:
		statics = c.Statics.Ref
	default:
		statics = stringsValue(c.Statics.Values)
	}
	return append(res, yaml.MapItem{Key: ir.StaticsKey, Value: statics})
}

func childValue(c ir.Child) any {
	switch c.Kind {
	case ir.StringChild:
		return c.String
	case ir.ComponentIDChild:
		return c.ComponentID
	default:
		return fragmentValue(c.Fragment)
	}
}

func childrenValue(cs []ir.Child) []any {
	res := make([]any, len(cs))
	for i := range cs {
		res[i] = childValue(cs[i])
	}
	return res
}

func staticsValue(s ir.Statics) any {
	if s.Kind == ir.TemplateRef {
		return s.Ref
	}
	return stringsValue(s.Values)
}

func stringsValue(ss []string) []any {
	res := make([]any, len(ss))
	for i, s := range ss {
		res[i] = s
	}
	return res
}

func templatesValue(t ir.Templates) yaml.MapSlice {
	res := make(yaml.MapSlice, 0, len(t))
	for _, k := range t.Keys() {
		res = append(res, yaml.MapItem{Key: strconv.Itoa(k), Value: stringsValue(t[k])})
	}
	return res
}

func fragmentDiffValue(d *libdiff.FragmentDiff) yaml.MapSlice {
	switch d.Kind {
	case libdiff.ReplaceCurrent:
		return fragmentValue(d.Fragment)
	case libdiff.UpdateComprehension:
		dyns := make([]any, len(d.Dynamics))
		for i, dyn := range d.Dynamics {
			row := make([]any, len(dyn))
			for j := range dyn {
				row[j] = childDiffValue(dyn[j])
			}
			dyns[i] = row
		}
		res := yaml.MapSlice{{Key: ir.DynamicsKey, Value: dyns}}
		if d.Templates != nil {
			res = append(res, yaml.MapItem{Key: ir.TemplatesKey, Value: templatesValue(d.Templates)})
		}
		return res
	default:
		return sparseValue(d.Indices(), d.Children)
	}
}

func componentDiffValue(d *libdiff.ComponentDiff) yaml.MapSlice {
	if d.Kind == libdiff.ReplaceCurrent {
		return componentValue(d.Component)
	}
	return sparseValue(d.Indices(), d.Children)
}

func sparseValue(indices []int, children map[int]libdiff.ChildDiff) yaml.MapSlice {
	res := make(yaml.MapSlice, 0, len(indices))
	for _, i := range indices {
		res = append(res, yaml.MapItem{Key: strconv.Itoa(i), Value: childDiffValue(children[i])})
	}
	return res
}

func childDiffValue(c libdiff.ChildDiff) any {
	switch c.Kind {
	case ir.StringChild:
		return c.String
	case ir.ComponentIDChild:
		return c.ComponentID
	default:
		return fragmentDiffValue(c.Fragment)
	}
}

// Plain converts an ordered value into plain maps and slices, the shape
// produced by unmarshalling JSON into any.
func Plain(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := make(map[string]any, len(x))
		for _, item := range x {
			res[fmt.Sprint(item.Key)] = Plain(item.Value)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = Plain(x[i])
		}
		return res
	default:
		return v
	}
}
