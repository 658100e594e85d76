package eval

import (
	"errors"
	"testing"

	"github.com/signadot/rendertree/parse"

	"github.com/google/go-cmp/cmp"
)

const page = `{
	"0": {"d": [["a", 1], ["b", 1]], "s": ["<li>", "", "</li>"], "p": {"0": ["x"]}},
	"1": {"0": {"s": ["<hr>"]}, "s": ["<div>", "</div>"]},
	"s": ["<ul>", "", "</ul>"],
	"c": {"1": {"0": {"0": "c", "s": ["<b>", "</b>"]}, "s": ["", ""]}}
}`

func TestFromRoot(t *testing.T) {
	root, err := parse.ParseRoot([]byte(page))
	if err != nil {
		t.Fatal(err)
	}
	env, err := FromRoot(root)
	if err != nil {
		t.Fatal(err)
	}
	want := Env{
		HTMLKey:           "<ul><li>a<b>c</b></li><li>b<b>c</b></li><div><hr></div></ul>",
		ComponentsKey:     1,
		TemplatesKey:      1,
		FragmentsKey:      5,
		ComprehensionsKey: 1,
		DepthKey:          3,
	}
	if d := cmp.Diff(want, env); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestCheck(t *testing.T) {
	root, err := parse.ParseRoot([]byte(page))
	if err != nil {
		t.Fatal(err)
	}
	for _, ok := range []string{
		`fragments == 5`,
		`count("<li>") == 2 && components == 1`,
		`component(1) == "<b>c</b>"`,
		`html startsWith "<ul>"`,
		`depth > comprehensions`,
	} {
		if err := Check(ok, root); err != nil {
			t.Errorf("%s: %v", ok, err)
		}
	}
	if err := Check(`templates == 0`, root); !errors.Is(err, ErrCheck) {
		t.Errorf("expected check failure, got %v", err)
	}
	if err := Check(`html`, root); err == nil || errors.Is(err, ErrCheck) {
		t.Errorf("expected compile error for non-boolean expression, got %v", err)
	}
	if err := Check(`component(2) == ""`, root); err == nil {
		t.Errorf("expected error for missing component")
	}
}

func TestEval(t *testing.T) {
	root, err := parse.ParseRoot([]byte(`{"0": "hi", "s": ["<a>", "</a>"]}`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := Eval(`len(html) + fragments`, root)
	if err != nil {
		t.Fatal(err)
	}
	if res != 10 {
		t.Errorf("expected 10, got %v", res)
	}
	html, err := Eval(`html`, root)
	if err != nil {
		t.Fatal(err)
	}
	if html != "<a>hi</a>" {
		t.Errorf("expected %q, got %v", "<a>hi</a>", html)
	}
	if err := Check(`components == 0 && templates == 0`, root); err != nil {
		t.Error(err)
	}
}
