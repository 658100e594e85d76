package libdiff

import (
	"errors"
	"testing"

	"github.com/signadot/rendertree/ir"

	"github.com/google/go-cmp/cmp"
)

func mustRegular(t *testing.T, statics ir.Statics, children ...ir.Child) *ir.Fragment {
	t.Helper()
	f, err := ir.NewRegular(statics, children...)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestComputeSparse(t *testing.T) {
	nested := mustRegular(t, ir.FromStatics("<i>", "</i>"), ir.FromString("n"))
	from := &ir.Root{Fragment: mustRegular(t, ir.FromStatics("", "", "", ""),
		ir.FromString("a"), ir.FromFragment(nested), ir.FromComponentID(1))}
	nested2 := mustRegular(t, ir.FromStatics("<i>", "</i>"), ir.FromString("m"))
	to := &ir.Root{Fragment: mustRegular(t, ir.FromStatics("", "", "", ""),
		ir.FromString("a"), ir.FromFragment(nested2), ir.FromComponentID(2))}
	got, err := Compute(from, to)
	if err != nil {
		t.Fatal(err)
	}
	want := &RootDiff{Fragment: UpdateChildren(map[int]ChildDiff{
		1: FragmentChild(UpdateChildren(map[int]ChildDiff{0: StringChild("m")})),
		2: ComponentIDChild(2),
	})}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestComputeReplace(t *testing.T) {
	from := &ir.Root{Fragment: mustRegular(t, ir.FromStatics("a", "b"), ir.FromString("x"))}
	for i, f := range []*ir.Fragment{
		mustRegular(t, ir.FromStatics("a", "c"), ir.FromString("x")),
		mustRegular(t, ir.FromStatics("a", "b", "c"), ir.FromString("x"), ir.FromString("y")),
		{Kind: ir.ComprehensionKind, Statics: ir.FromStatics("a", "b"), Dynamics: [][]ir.Child{}},
	} {
		got, err := Compute(from, &ir.Root{Fragment: f})
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if d := cmp.Diff(Replace(f), got.Fragment); d != "" {
			t.Errorf("%d: (-want +got):\n%s", i, d)
		}
	}
}

func TestComputeComponents(t *testing.T) {
	frag := mustRegular(t, ir.FromStatics("", ""), ir.FromComponentID(1))
	c1 := &ir.Component{Statics: ir.FromComponentStatics("<b>", "</b>"), Children: []ir.Child{ir.FromString("x")}}
	c1b := &ir.Component{Statics: ir.FromComponentStatics("<b>", "</b>"), Children: []ir.Child{ir.FromString("y")}}
	c2 := &ir.Component{Statics: ir.FromComponentRef(1), Children: []ir.Child{ir.FromString("z")}}
	from := &ir.Root{Fragment: frag, Components: map[int]*ir.Component{1: c1}}

	got, err := Compute(from, &ir.Root{Fragment: frag, Components: map[int]*ir.Component{1: c1}})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Fragment.IsEmpty() || got.Components != nil {
		t.Errorf("expected empty diff, got %+v", got)
	}

	got, err = Compute(from, &ir.Root{Fragment: frag, Components: map[int]*ir.Component{1: c1b, 2: c2}})
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]*ComponentDiff{
		1: UpdateComponent(map[int]ChildDiff{0: StringChild("y")}),
		2: ReplaceComponent(c2),
	}
	if d := cmp.Diff(want, got.Components); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	_, err = Compute(from, &ir.Root{Fragment: frag})
	if !errors.Is(err, ErrUnrepresentable) {
		t.Errorf("expected unrepresentable removal, got %v", err)
	}
}

func TestComputeTemplates(t *testing.T) {
	frag := mustRegular(t, ir.FromTemplateRef(0), ir.FromString("x"))
	from := &ir.Root{Fragment: frag, Templates: ir.Templates{0: {"<b>", "</b>"}}}
	got, err := Compute(from, &ir.Root{Fragment: frag, Templates: ir.Templates{0: {"<b>", "</b>"}, 1: {"y"}}})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ir.Templates{1: {"y"}}, got.Templates); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
	_, err = Compute(from, &ir.Root{Fragment: frag})
	if !errors.Is(err, ErrUnrepresentable) {
		t.Errorf("expected unrepresentable template removal, got %v", err)
	}

	comp, err := ir.NewComprehension(ir.FromStatics("<i>", "</i>"), nil, []ir.Child{ir.FromString("a")})
	if err != nil {
		t.Fatal(err)
	}
	got, err = Compute(from, &ir.Root{Fragment: comp})
	if err != nil {
		t.Fatal(err)
	}
	if got.Fragment.Kind != ReplaceCurrent || got.Templates != nil {
		t.Errorf("expected a replacement without root templates, got %s with %v", got.Fragment.Kind, got.Templates)
	}
	other := mustRegular(t, ir.FromTemplateRef(1), ir.FromString("x"))
	got, err = Compute(from, &ir.Root{Fragment: other, Templates: ir.Templates{1: {"<s>", "</s>"}}})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ir.Templates{1: {"<s>", "</s>"}}, got.Templates); d != "" {
		t.Errorf("replacement templates (-want +got):\n%s", d)
	}
}

func TestComputeComprehension(t *testing.T) {
	sub := mustRegular(t, ir.FromStatics("<i>", "</i>"), ir.FromString("q"))
	from := &ir.Root{Fragment: &ir.Fragment{
		Kind:     ir.ComprehensionKind,
		Statics:  ir.FromStatics("<li>", "</li>"),
		Dynamics: [][]ir.Child{{ir.FromString("a")}},
	}}
	to := &ir.Root{Fragment: &ir.Fragment{
		Kind:      ir.ComprehensionKind,
		Statics:   ir.FromStatics("<li>", "</li>"),
		Dynamics:  [][]ir.Child{{ir.FromString("a")}, {ir.FromFragment(sub)}},
		Templates: ir.Templates{3: {"t"}},
	}}
	got, err := Compute(from, to)
	if err != nil {
		t.Fatal(err)
	}
	want := UpdateDynamics(ir.Templates{3: {"t"}},
		[]ChildDiff{StringChild("a")},
		[]ChildDiff{FragmentChild(Replace(sub))},
	)
	if d := cmp.Diff(want, got.Fragment); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{ReplaceCurrent, UpdateRegular, UpdateComprehension} {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var kk Kind
		if err := kk.UnmarshalText(d); err != nil || kk != k {
			t.Errorf("%s: got %s, %v", k, kk, err)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("nope")); err == nil {
		t.Errorf("expected error")
	}
}
