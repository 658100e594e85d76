package rendertree

import (
	"bytes"
	"errors"
	"testing"

	"github.com/signadot/rendertree/encode"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"
	"github.com/signadot/rendertree/parse"

	"github.com/google/go-cmp/cmp"
)

type mergeTest struct {
	Root  string
	Diff  string
	Out   string
	Error error
	Path  string
}

const (
	listRoot = `{"s":["<ul>","","","</ul>"],"0":"a","1":"b","2":"c"}`
	compRoot = `{"0":{"d":[["a"],["b"]],"s":["<li>","</li>"]},"s":["<ul>","</ul>"]}`
	cidRoot  = `{"0":1,"s":["<div>","</div>"],"c":{"1":{"0":"x","s":["<b>","</b>"]}}}`
)

func TestMerge(t *testing.T) {
	tests := []mergeTest{
		{
			Root: `{"s":["<a>","</a>"],"0":"hi"}`,
			Diff: `{"0":"bye"}`,
			Out:  "<a>bye</a>",
		},
		{
			Root: listRoot,
			Diff: `{"1":"B"}`,
			Out:  "<ul>aBc</ul>",
		},
		{
			Root: listRoot,
			Diff: `{}`,
			Out:  "<ul>abc</ul>",
		},
		{
			Root:  listRoot,
			Diff:  `{"3":"d"}`,
			Error: ErrAddChildToExisting,
			Path:  "$.3",
		},
		{
			Root:  listRoot,
			Diff:  `{"d":[]}`,
			Error: ErrFragmentTypeMismatch,
		},
		{
			Root: listRoot,
			Diff: `{"d":[["q"],["r"]],"s":["[","]"]}`,
			Out:  "[q][r]",
		},
		{
			Root: compRoot,
			Diff: `{"0":{"d":[["x"],["y"],["z"]]}}`,
			Out:  "<ul><li>x</li><li>y</li><li>z</li></ul>",
		},
		{
			Root: compRoot,
			Diff: `{"0":{"d":[]}}`,
			Out:  "<ul></ul>",
		},
		{
			Root:  compRoot,
			Diff:  `{"0":{"0":"q"}}`,
			Error: ErrFragmentTypeMismatch,
			Path:  "$.0",
		},
		{
			Root:  compRoot,
			Diff:  `{"0":{"d":[["x"],[{"0":"y"}]]}}`,
			Error: ErrCreateChildFromUpdateFragment,
			Path:  "$.0.d[1].0",
		},
		{
			Root: compRoot,
			Diff: `{"0":{"d":[[{"0":"y","s":["<i>","</i>"]}]]}}`,
			Out:  "<ul><li><i>y</i></li></ul>",
		},
		{
			Root:  compRoot,
			Diff:  `{"0":{"d":[["x","y"]]}}`,
			Error: ir.ErrArity,
		},
		{
			Root: `{"0":"a","s":["<p>","</p>"]}`,
			Diff: `{"0":{"0":"b","s":["<i>","</i>"]}}`,
			Out:  "<p><i>b</i></p>",
		},
		{
			Root:  `{"0":"a","s":["<p>","</p>"]}`,
			Diff:  `{"0":{"0":"b"}}`,
			Error: ErrCreateChildFromUpdateFragment,
			Path:  "$.0",
		},
		{
			Root: `{"0":{"0":"a","s":["<i>","</i>"]},"s":["<p>","</p>"]}`,
			Diff: `{"0":"b"}`,
			Out:  "<p>b</p>",
		},
		{
			Root: `{"0":{"0":"a","s":["<i>","</i>"]},"s":["<p>","</p>"]}`,
			Diff: `{"0":{"0":"b"}}`,
			Out:  "<p><i>b</i></p>",
		},
		{
			Root: cidRoot,
			Diff: `{"c":{"1":{"0":"y"}}}`,
			Out:  "<div><b>y</b></div>",
		},
		{
			Root:  cidRoot,
			Diff:  `{"c":{"1":{"1":"y"}}}`,
			Error: ErrAddChildToExisting,
			Path:  "$.c.1.1",
		},
		{
			Root:  cidRoot,
			Diff:  `{"0":2,"c":{"2":{"0":"z"}}}`,
			Error: ErrCreateComponentFromUpdate,
			Path:  "$.c.2",
		},
		{
			Root: cidRoot,
			Diff: `{"0":2,"c":{"2":{"0":"z","s":-1}}}`,
			Out:  "<div><b>z</b></div>",
		},
		{
			Root: cidRoot,
			Diff: `{"c":{"1":{"0":"y","1":"z","s":["<b>","|","</b>"]}}}`,
			Out:  "<div><b>y|z</b></div>",
		},
		{
			Root: `{"0":"a","s":["<p>","</p>"]}`,
			Diff: `{"0":3,"c":{"3":{"0":"q","s":["<em>","</em>"]}}}`,
			Out:  "<p><em>q</em></p>",
		},
		{
			Root: `{"0":{"d":[["a"]],"s":0,"p":{"0":["<li>","</li>"]}},"s":["<ul>","</ul>"]}`,
			Diff: `{"0":{"d":[["b"],["c"]],"p":{"1":["x"]}}}`,
			Out:  "<ul><li>b</li><li>c</li></ul>",
		},
		{
			Root: `{"0":{"d":[["a"]],"s":0,"p":{"0":["<li>","</li>"]}},"s":["<ul>","</ul>"]}`,
			Diff: `{"0":{"d":[["b"]],"p":{"0":["<dt>","</dt>"]}}}`,
			Out:  "<ul><dt>b</dt></ul>",
		},
		{
			Root: `{"0":"x","s":0,"p":{"0":["<b>","</b>"]}}`,
			Diff: `{"0":"y","p":{"0":["<s>","</s>"]}}`,
			Out:  "<s>y</s>",
		},
		{
			Root: `{"0":"x","s":0,"p":{"0":["<b>","</b>"]}}`,
			Diff: `{"0":"y","p":{"1":["<s>","</s>"]}}`,
			Out:  "<b>y</b>",
		},
	}
	for i, test := range tests {
		root, err := parse.ParseRoot([]byte(test.Root))
		if err != nil {
			t.Errorf("%d: root: %v", i, err)
			continue
		}
		diff, err := parse.ParseDiff([]byte(test.Diff))
		if err != nil {
			t.Errorf("%d: diff: %v", i, err)
			continue
		}
		res, err := Merge(root, diff)
		if test.Error != nil {
			if !errors.Is(err, test.Error) {
				t.Errorf("%d: expected error %v, got %v", i, test.Error, err)
				continue
			}
			if test.Path != "" {
				var pe *ir.PathError
				if !errors.As(err, &pe) {
					t.Errorf("%d: expected error located at %s, got %v", i, test.Path, err)
					continue
				}
				if pe.Path() != test.Path {
					t.Errorf("%d: expected error at %s, got %s", i, test.Path, pe.Path())
				}
			}
			continue
		}
		if err != nil {
			t.Errorf("%d: merge: %v", i, err)
			continue
		}
		out, err := BuildString(res)
		if err != nil {
			t.Errorf("%d: build: %v", i, err)
			continue
		}
		if out != test.Out {
			t.Errorf("%d: expected %q, got %q", i, test.Out, out)
		}
	}
}

func TestMergeLeavesInputs(t *testing.T) {
	root, err := parse.ParseRoot([]byte(listRoot))
	if err != nil {
		t.Fatal(err)
	}
	before, err := parse.ParseRoot([]byte(listRoot))
	if err != nil {
		t.Fatal(err)
	}
	diff, err := parse.ParseDiff([]byte(`{"1":"B"}`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := Merge(root, diff)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(before, root); d != "" {
		t.Errorf("merge modified its input (-want +got):\n%s", d)
	}
	for _, i := range []int{0, 2} {
		if !res.Fragment.Children[i].Equal(root.Fragment.Children[i]) {
			t.Errorf("child %d changed: %v", i, res.Fragment.Children[i])
		}
	}
	want := ir.FromString("B")
	if !res.Fragment.Children[1].Equal(want) {
		t.Errorf("child 1: expected %v, got %v", want, res.Fragment.Children[1])
	}
}

func TestMergeComprehensionReplacesDynamics(t *testing.T) {
	root, err := parse.ParseRoot([]byte(compRoot))
	if err != nil {
		t.Fatal(err)
	}
	diff := &libdiff.RootDiff{
		Fragment: libdiff.UpdateChildren(map[int]libdiff.ChildDiff{
			0: libdiff.FragmentChild(libdiff.UpdateDynamics(nil,
				[]libdiff.ChildDiff{libdiff.StringChild("x")},
				[]libdiff.ChildDiff{libdiff.StringChild("y")},
				[]libdiff.ChildDiff{libdiff.StringChild("z")},
			)),
		}),
	}
	res, err := Merge(root, diff)
	if err != nil {
		t.Fatal(err)
	}
	got := res.Fragment.Children[0].Fragment
	if len(got.Dynamics) != 3 {
		t.Fatalf("expected 3 repetitions, got %d", len(got.Dynamics))
	}
	for i, s := range []string{"x", "y", "z"} {
		if got.Dynamics[i][0].String != s {
			t.Errorf("repetition %d: expected %q, got %q", i, s, got.Dynamics[i][0].String)
		}
	}
}

func TestMergeNormalizesComponentRefs(t *testing.T) {
	root, err := parse.ParseRoot([]byte(`{"0":5,"s":["",""],"c":{"5":{"0":"a","s":["<b>","</b>"]}}}`))
	if err != nil {
		t.Fatal(err)
	}
	diff, err := parse.ParseDiff([]byte(`{"0":6,"c":{"6":{"0":"b","s":-5}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := diff.Components[6].Component.Statics; got.Ref != -5 {
		t.Fatalf("expected decoded ref -5, got %d", got.Ref)
	}
	res, err := Merge(root, diff)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := res.Components[6].Statics, ir.FromComponentRef(5); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	neg, err := diff.Components[6].Component.Statics.EffectiveValue(res)
	if err != nil {
		t.Fatal(err)
	}
	pos, err := res.Components[6].Statics.EffectiveValue(res)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(neg, pos); d != "" {
		t.Errorf("statics differ by sign (-neg +pos):\n%s", d)
	}
	out, err := BuildString(res)
	if err != nil {
		t.Fatal(err)
	}
	if out != "<b>b</b>" {
		t.Errorf("expected %q, got %q", "<b>b</b>", out)
	}
}

func TestMergeReplaceResetsRootTemplates(t *testing.T) {
	root, err := parse.ParseRoot([]byte(`{"0":"x","s":0,"p":{"0":["<b>","</b>"]}}`))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		Diff      string
		Out       string
		Templates ir.Templates
	}{
		{
			Diff: `{"d":[["a"]],"s":["<i>","</i>"]}`,
			Out:  "<i>a</i>",
		},
		{
			Diff:      `{"0":"y","s":1,"p":{"1":["<s>","</s>"]}}`,
			Out:       "<s>y</s>",
			Templates: ir.Templates{1: {"<s>", "</s>"}},
		},
	}
	for _, test := range tests {
		diff, err := parse.ParseDiff([]byte(test.Diff))
		if err != nil {
			t.Fatalf("%s: %v", test.Diff, err)
		}
		res, out, err := MergeString(root, diff)
		if err != nil {
			t.Errorf("%s: %v", test.Diff, err)
			continue
		}
		if out != test.Out {
			t.Errorf("%s: expected %q, got %q", test.Diff, test.Out, out)
		}
		if !res.Templates.Equal(test.Templates) {
			t.Errorf("%s: expected root templates %v, got %v", test.Diff, test.Templates, res.Templates)
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(res, buf, encode.EncodeWire(true)); err != nil {
			t.Errorf("%s: encode: %v", test.Diff, err)
			continue
		}
		again, err := parse.ParseRoot(buf.Bytes())
		if err != nil {
			t.Errorf("%s: decode %s: %v", test.Diff, buf.String(), err)
			continue
		}
		if d := cmp.Diff(res, again); d != "" {
			t.Errorf("%s: round trip (-want +got):\n%s", test.Diff, d)
		}
	}
}

func TestMergeNil(t *testing.T) {
	if _, err := Merge(nil, &libdiff.RootDiff{}); !errors.Is(err, ir.ErrBrokenInvariant) {
		t.Errorf("expected broken invariant, got %v", err)
	}
}

func TestMergeComputed(t *testing.T) {
	pairs := [][2]string{
		{`{"s":["<a>","</a>"],"0":"hi"}`, `{"s":["<a>","</a>"],"0":"bye"}`},
		{`{"s":["<a>","</a>"],"0":"hi"}`, `{"s":["<b>","</b>"],"0":"hi"}`},
		{listRoot, `{"s":["<ul>","","","</ul>"],"0":"a","1":{"0":"q","s":["<i>","</i>"]},"2":"c"}`},
		{compRoot, `{"0":{"d":[["x"],["y"],["z"]],"s":["<li>","</li>"]},"s":["<ul>","</ul>"]}`},
		{
			`{"0":{"0":{"0":"a","s":["<i>","</i>"]},"s":["<p>","</p>"]},"s":["",""]}`,
			`{"0":{"0":{"0":"b","s":["<i>","</i>"]},"s":["<p>","</p>"]},"s":["",""]}`,
		},
		{cidRoot, `{"0":2,"s":["<div>","</div>"],"c":{"1":{"0":"x","s":["<b>","</b>"]},"2":{"0":"y","s":1}}}`},
		{`{"0":"x","s":0,"p":{"0":["<b>","</b>"]}}`, `{"0":"x","s":1,"p":{"0":["<b>","</b>"],"1":["<i>","</i>"]}}`},
		{
			`{"0":{"d":[["a"]],"s":0,"p":{"0":["<li>","</li>"]}},"s":["",""]}`,
			`{"0":{"d":[["a"]],"s":0,"p":{"0":["<dt>","</dt>"]}},"s":["",""]}`,
		},
	}
	for i, pair := range pairs {
		from, err := parse.ParseRoot([]byte(pair[0]))
		if err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		to, err := parse.ParseRoot([]byte(pair[1]))
		if err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		diff, err := libdiff.Compute(from, to)
		if err != nil {
			t.Errorf("%d: compute: %v", i, err)
			continue
		}
		res, err := Merge(from, diff)
		if err != nil {
			t.Errorf("%d: merge: %v", i, err)
			continue
		}
		if d := cmp.Diff(to, res); d != "" {
			t.Errorf("%d: merge of computed diff (-want +got):\n%s", i, d)
		}
	}
}
