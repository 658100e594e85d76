package libdiff

import (
	"strings"
	"testing"
)

func TestTextDiff(t *testing.T) {
	diffs := TextDiff("<a>hi</a>", "<a>bye</a>")
	if !Changed(diffs) {
		t.Fatalf("expected change")
	}
	got := FormatTextDiff(diffs, false)
	if !strings.Contains(got, "[-") || !strings.Contains(got, "{+") {
		t.Errorf("expected deletion and insertion markers, got %q", got)
	}
	if Changed(TextDiff("same", "same")) {
		t.Errorf("expected no change")
	}
	lines := TextDiff("a\nb\nc\n", "a\nB\nc\n")
	if got := FormatTextDiff(lines, false); got != "a\n[-b\n-]{+B\n+}c\n" {
		t.Errorf("unexpected line diff %q", got)
	}
}
