package debug

import (
	"fmt"
	"strings"
	"testing"

	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"
)

func TestRootString(t *testing.T) {
	f, err := ir.NewRegular(ir.FromStatics("<a>", "</a>"), ir.FromString("hi"))
	if err != nil {
		t.Fatal(err)
	}
	root := &ir.Root{Fragment: f}
	got := fmt.Sprintf("%s", Root{Root: root})
	if !strings.Contains(got, `"0": "hi"`) {
		t.Errorf("expected encoded root, got %q", got)
	}

	comp, err := ir.NewComprehension(ir.FromStatics("", ""), nil, []ir.Child{ir.FromString("a")})
	if err != nil {
		t.Fatal(err)
	}
	bad := &ir.Root{Fragment: comp, Templates: ir.Templates{0: {"x"}}}
	if got := (Root{Root: bad}).String(); !strings.HasPrefix(got, "[raw *ir.Root]") {
		t.Errorf("expected raw fallback, got %q", got)
	}
}

func TestDiffString(t *testing.T) {
	d := &libdiff.RootDiff{Fragment: libdiff.UpdateChildren(map[int]libdiff.ChildDiff{0: libdiff.StringChild("bye")})}
	got := fmt.Sprintf("%s", Diff{RootDiff: d})
	if !strings.Contains(got, `"0": "bye"`) {
		t.Errorf("expected encoded diff, got %q", got)
	}
}
