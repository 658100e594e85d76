package rendertree

import (
	"errors"
	"testing"

	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/parse"
)

type buildTest struct {
	In    string
	Out   string
	Error error
}

func TestBuildString(t *testing.T) {
	tests := []buildTest{
		{
			In:  `{"s":["<a>","</a>"],"0":"hi"}`,
			Out: "<a>hi</a>",
		},
		{
			In:  `{"s":["plain"]}`,
			Out: "plain",
		},
		{
			In:  `{"0":"x","s":0,"p":{"0":["<b>","</b>"]}}`,
			Out: "<b>x</b>",
		},
		{
			In:    `{"0":"x","s":0}`,
			Error: ir.ErrBrokenInvariant,
		},
		{
			In:    `{"0":"x","s":1,"p":{"0":["<b>","</b>"]}}`,
			Error: ir.ErrBrokenInvariant,
		},
		{
			In:    `{"0":"x","s":0,"p":{"0":["<b>"]}}`,
			Error: ir.ErrArity,
		},
		{
			In:  `{"d":[["a",{"0":"b","s":0}]],"s":["<li>","","</li>"],"p":{"0":["<i>","</i>"]}}`,
			Out: "<li>a<i>b</i></li>",
		},
		{
			In:  `{"0":{"d":[["1"],["2"]],"s":0,"p":{"0":["<td>","</td>"]}},"s":["<tr>","</tr>"],"p":{"0":["<th>","</th>"]}}`,
			Out: "<tr><td>1</td><td>2</td></tr>",
		},
		{
			In:  `{"0":{"d":[[{"0":"a","s":1}]],"s":0,"p":{"0":["<li>","</li>"]}},"s":["",""],"p":{"1":["<u>","</u>"]}}`,
			Out: "<li><u>a</u></li>",
		},
		{
			In:  `{"0":1,"1":1,"s":["","-",""],"c":{"1":{"0":"c","s":["(",")"]}}}`,
			Out: "(c)-(c)",
		},
		{
			In:  `{"0":1,"s":["",""],"c":{"1":{"0":2,"s":["[","]"]},"2":{"0":"z","s":-1}}}`,
			Out: "[[z]]",
		},
		{
			In:    `{"0":1,"s":["",""]}`,
			Error: ir.ErrBrokenInvariant,
		},
		{
			In:    `{"0":1,"s":["",""],"c":{"1":{"0":1,"s":["[","]"]}}}`,
			Error: ir.ErrBrokenInvariant,
		},
		{
			In:    `{"0":1,"s":["",""],"c":{"1":{"0":"a","s":2},"2":{"0":"b","s":1}}}`,
			Error: ir.ErrBrokenInvariant,
		},
		{
			In:    `{"d":[[{"0":"b","s":0}]],"s":["",""],"p":{"1":["<i>","</i>"]},"c":{"1":{"0":"a","s":0}}}`,
			Error: ir.ErrBrokenInvariant,
		},
		{
			In:    `{"0":1,"s":["",""],"p":{"0":["<b>","</b>"]},"c":{"1":{"0":{"0":"a","s":0},"s":["",""]}}}`,
			Error: ir.ErrBrokenInvariant,
		},
	}
	for i, test := range tests {
		root, err := parse.ParseRoot([]byte(test.In))
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		out, err := BuildString(root)
		if test.Error != nil {
			if !errors.Is(err, test.Error) {
				t.Errorf("%d: expected error %v, got %v (output %q)", i, test.Error, err, out)
			}
			continue
		}
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if out != test.Out {
			t.Errorf("%d: expected %q, got %q", i, test.Out, out)
		}
		again, err := BuildString(root)
		if err != nil || again != out {
			t.Errorf("%d: build not deterministic: %q then %q (%v)", i, out, again, err)
		}
	}
}

func TestMergeString(t *testing.T) {
	root, err := parse.ParseRoot([]byte(`{"s":["<a>","</a>"],"0":"hi"}`))
	if err != nil {
		t.Fatal(err)
	}
	diff, err := parse.ParseDiff([]byte(`{"0":"bye"}`))
	if err != nil {
		t.Fatal(err)
	}
	_, out, err := MergeString(root, diff)
	if err != nil {
		t.Fatal(err)
	}
	if out != "<a>bye</a>" {
		t.Errorf("expected %q, got %q", "<a>bye</a>", out)
	}
}
