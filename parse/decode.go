package parse

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"
)

// Decoding is structural: the first matching rule wins.
//
//   - child: integer → component id, string → text, otherwise a fragment.
//   - statics: integer → template reference, otherwise an array of strings.
//   - component statics: integer → component reference, otherwise an
//     array of strings.
//   - fragment: a "d" key makes a comprehension; otherwise the keys "0",
//     "1", ... are the children and must be contiguous from 0. "s" is
//     required, "p" is optional.
//   - fragment diff: "s" → replacement, else "d" → comprehension update,
//     else the index keys present form a sparse update.
//   - root: "c", when present and non-empty, maps component ids to
//     components (or component diffs).

// Root decodes an initial render payload.
func Root(v any) (*ir.Root, error) {
	m, ok := asObject(v)
	if !ok {
		return nil, shapeErr("object", v)
	}
	frag, err := Fragment(v)
	if err != nil {
		return nil, err
	}
	res := &ir.Root{Fragment: frag}
	if frag.Kind == ir.RegularKind {
		if pv, ok := present(m, ir.TemplatesKey); ok {
			tpl, err := Templates(pv)
			if err != nil {
				return nil, ir.AtPath(err, "."+ir.TemplatesKey)
			}
			res.Templates = tpl
		}
	}
	cv, ok := present(m, ir.ComponentsKey)
	if !ok {
		return res, nil
	}
	cm, err := componentTable(cv)
	if err != nil {
		return nil, err
	}
	if len(cm) == 0 {
		return res, nil
	}
	res.Components = make(map[int]*ir.Component, len(cm))
	for _, cid := range sortedKeys(cm) {
		comp, err := Component(cm[cid])
		if err != nil {
			return nil, ir.AtPath(err, ir.ComponentSeg(cid))
		}
		res.Components[cid] = comp
	}
	return res, nil
}

// Diff decodes a diff payload.
func Diff(v any) (*libdiff.RootDiff, error) {
	m, ok := asObject(v)
	if !ok {
		return nil, shapeErr("object", v)
	}
	fd, err := FragmentDiff(v)
	if err != nil {
		return nil, err
	}
	res := &libdiff.RootDiff{Fragment: fd}
	if rootTemplatesOf(fd) {
		if pv, ok := present(m, ir.TemplatesKey); ok {
			tpl, err := Templates(pv)
			if err != nil {
				return nil, ir.AtPath(err, "."+ir.TemplatesKey)
			}
			res.Templates = tpl
		}
	}
	cv, ok := present(m, ir.ComponentsKey)
	if !ok {
		return res, nil
	}
	cm, err := componentTable(cv)
	if err != nil {
		return nil, err
	}
	if len(cm) == 0 {
		return res, nil
	}
	res.Components = make(map[int]*libdiff.ComponentDiff, len(cm))
	for _, cid := range sortedKeys(cm) {
		cd, err := ComponentDiff(cm[cid])
		if err != nil {
			return nil, ir.AtPath(err, ir.ComponentSeg(cid))
		}
		res.Components[cid] = cd
	}
	return res, nil
}

// rootTemplatesOf tells whether a root level "p" belongs to the root
// rather than to the diffed fragment.
func rootTemplatesOf(fd *libdiff.FragmentDiff) bool {
	switch fd.Kind {
	case libdiff.UpdateRegular:
		return true
	case libdiff.ReplaceCurrent:
		return fd.Fragment.Kind == ir.RegularKind
	default:
		return false
	}
}

func componentTable(v any) (map[int]any, error) {
	cm, ok := asObject(v)
	if !ok {
		return nil, ir.AtPath(shapeErr("object", v), "."+ir.ComponentsKey)
	}
	res := make(map[int]any, len(cm))
	for k, cv := range cm {
		cid, ok := indexKey(k)
		if !ok {
			return nil, ir.AtPath(fmt.Errorf("%w: invalid component id %q", ErrDecode, k), "."+ir.ComponentsKey)
		}
		res[cid] = cv
	}
	return res, nil
}

// Fragment decodes a complete fragment.
func Fragment(v any) (*ir.Fragment, error) {
	m, ok := asObject(v)
	if !ok {
		return nil, shapeErr("object", v)
	}
	sv, ok := present(m, ir.StaticsKey)
	if !ok {
		return nil, fmt.Errorf("%w: missing statics", ErrDecode)
	}
	statics, err := Statics(sv)
	if err != nil {
		return nil, ir.AtPath(err, "."+ir.StaticsKey)
	}
	if dv, ok := m[ir.DynamicsKey]; ok {
		dyns, err := dynamics(dv, Child)
		if err != nil {
			return nil, err
		}
		var tpl ir.Templates
		if pv, ok := present(m, ir.TemplatesKey); ok {
			tpl, err = Templates(pv)
			if err != nil {
				return nil, ir.AtPath(err, "."+ir.TemplatesKey)
			}
		}
		f, err := ir.NewComprehension(statics, tpl, dyns...)
		if err != nil {
			return nil, decodeErr(err)
		}
		return f, nil
	}
	children, err := contiguousChildren(m, Child)
	if err != nil {
		return nil, err
	}
	f, err := ir.NewRegular(statics, children...)
	if err != nil {
		return nil, decodeErr(err)
	}
	return f, nil
}

// Component decodes a complete component.
func Component(v any) (*ir.Component, error) {
	m, ok := asObject(v)
	if !ok {
		return nil, shapeErr("object", v)
	}
	if _, ok := m[ir.DynamicsKey]; ok {
		return nil, fmt.Errorf("%w: component cannot be a comprehension", ErrDecode)
	}
	sv, ok := present(m, ir.StaticsKey)
	if !ok {
		return nil, fmt.Errorf("%w: missing statics", ErrDecode)
	}
	statics, err := ComponentStatics(sv)
	if err != nil {
		return nil, ir.AtPath(err, "."+ir.StaticsKey)
	}
	children, err := contiguousChildren(m, Child)
	if err != nil {
		return nil, err
	}
	c, err := ir.NewComponent(statics, children...)
	if err != nil {
		return nil, decodeErr(err)
	}
	return c, nil
}

// FragmentDiff decodes a fragment diff.
func FragmentDiff(v any) (*libdiff.FragmentDiff, error) {
	m, ok := asObject(v)
	if !ok {
		return nil, shapeErr("object", v)
	}
	if _, ok := m[ir.StaticsKey]; ok {
		f, err := Fragment(v)
		if err != nil {
			return nil, err
		}
		return libdiff.Replace(f), nil
	}
	if dv, ok := m[ir.DynamicsKey]; ok {
		dyns, err := dynamics(dv, ChildDiff)
		if err != nil {
			return nil, err
		}
		var tpl ir.Templates
		if pv, ok := present(m, ir.TemplatesKey); ok {
			tpl, err = Templates(pv)
			if err != nil {
				return nil, ir.AtPath(err, "."+ir.TemplatesKey)
			}
		}
		return libdiff.UpdateDynamics(tpl, dyns...), nil
	}
	children, err := sparseChildren(m)
	if err != nil {
		return nil, err
	}
	return libdiff.UpdateChildren(children), nil
}

// ComponentDiff decodes a component diff.
func ComponentDiff(v any) (*libdiff.ComponentDiff, error) {
	m, ok := asObject(v)
	if !ok {
		return nil, shapeErr("object", v)
	}
	if _, ok := m[ir.DynamicsKey]; ok {
		return nil, fmt.Errorf("%w: component cannot be a comprehension", ErrDecode)
	}
	if _, ok := m[ir.StaticsKey]; ok {
		c, err := Component(v)
		if err != nil {
			return nil, err
		}
		return libdiff.ReplaceComponent(c), nil
	}
	children, err := sparseChildren(m)
	if err != nil {
		return nil, err
	}
	return libdiff.UpdateComponent(children), nil
}

// Child decodes one child of a fragment or component.
func Child(v any) (ir.Child, error) {
	if cid, ok := asInt(v); ok {
		return ir.FromComponentID(cid), nil
	}
	if s, ok := asString(v); ok {
		return ir.FromString(s), nil
	}
	f, err := Fragment(v)
	if err != nil {
		return ir.Child{}, err
	}
	return ir.FromFragment(f), nil
}

// ChildDiff decodes one child of a fragment or component diff.
func ChildDiff(v any) (libdiff.ChildDiff, error) {
	if cid, ok := asInt(v); ok {
		return libdiff.ComponentIDChild(cid), nil
	}
	if s, ok := asString(v); ok {
		return libdiff.StringChild(s), nil
	}
	fd, err := FragmentDiff(v)
	if err != nil {
		return libdiff.ChildDiff{}, err
	}
	return libdiff.FragmentChild(fd), nil
}

func Statics(v any) (ir.Statics, error) {
	if i, ok := asInt(v); ok {
		return ir.FromTemplateRef(i), nil
	}
	ss, err := stringArray(v)
	if err != nil {
		return ir.Statics{}, err
	}
	return ir.FromStatics(ss...), nil
}

func ComponentStatics(v any) (ir.ComponentStatics, error) {
	if cid, ok := asInt(v); ok {
		return ir.FromComponentRef(cid), nil
	}
	ss, err := stringArray(v)
	if err != nil {
		return ir.ComponentStatics{}, err
	}
	return ir.FromComponentStatics(ss...), nil
}

func Templates(v any) (ir.Templates, error) {
	m, ok := asObject(v)
	if !ok {
		return nil, shapeErr("object", v)
	}
	res := make(ir.Templates, len(m))
	for k, tv := range m {
		i, ok := indexKey(k)
		if !ok {
			return nil, fmt.Errorf("%w: invalid template index %q", ErrDecode, k)
		}
		ss, err := stringArray(tv)
		if err != nil {
			return nil, ir.AtPath(err, "."+k)
		}
		res[i] = ss
	}
	return res, nil
}

func stringArray(v any) ([]string, error) {
	a, ok := asArray(v)
	if !ok {
		return nil, shapeErr("array of strings", v)
	}
	res := make([]string, len(a))
	for i, sv := range a {
		s, ok := asString(sv)
		if !ok {
			return nil, ir.AtPath(shapeErr("string", sv), "["+strconv.Itoa(i)+"]")
		}
		res[i] = s
	}
	return res, nil
}

func dynamics[C any](v any, child func(any) (C, error)) ([][]C, error) {
	a, ok := asArray(v)
	if !ok {
		return nil, ir.AtPath(shapeErr("array", v), "."+ir.DynamicsKey)
	}
	res := make([][]C, len(a))
	for i, dv := range a {
		row, ok := asArray(dv)
		if !ok {
			return nil, ir.AtPath(shapeErr("array", dv), ir.DynamicsSeg(i))
		}
		res[i] = make([]C, len(row))
		for j, cv := range row {
			c, err := child(cv)
			if err != nil {
				return nil, ir.AtPath(ir.AtPath(err, ir.ChildSeg(j)), ir.DynamicsSeg(i))
			}
			res[i][j] = c
		}
	}
	return res, nil
}

// indexedFields returns the fields of m keyed by child index. Keys that are
// not numbers are ignored; numeric keys that are not canonical
// non-negative indices are rejected.
func indexedFields(m map[string]any) (map[int]any, error) {
	res := map[int]any{}
	for k, v := range m {
		if _, err := strconv.Atoi(k); err != nil {
			continue
		}
		i, ok := indexKey(k)
		if !ok {
			return nil, fmt.Errorf("%w: invalid child key %q", ErrDecode, k)
		}
		res[i] = v
	}
	return res, nil
}

func contiguousChildren(m map[string]any, child func(any) (ir.Child, error)) ([]ir.Child, error) {
	fields, err := indexedFields(m)
	if err != nil {
		return nil, err
	}
	res := make([]ir.Child, len(fields))
	for i := range res {
		cv, ok := fields[i]
		if !ok {
			return nil, fmt.Errorf("%w: missing child %d of %d", ErrDecode, i, len(fields))
		}
		c, err := child(cv)
		if err != nil {
			return nil, ir.AtPath(err, ir.ChildSeg(i))
		}
		res[i] = c
	}
	return res, nil
}

func sparseChildren(m map[string]any) (map[int]libdiff.ChildDiff, error) {
	fields, err := indexedFields(m)
	if err != nil {
		return nil, err
	}
	res := make(map[int]libdiff.ChildDiff, len(fields))
	for _, i := range sortedKeys(fields) {
		cd, err := ChildDiff(fields[i])
		if err != nil {
			return nil, ir.AtPath(err, ir.ChildSeg(i))
		}
		res[i] = cd
	}
	return res, nil
}

func sortedKeys[V any](m map[int]V) []int {
	res := make([]int, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}
