package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// TextDiff computes a diff between two flattened outputs: by line when
// both are multi-line, by character otherwise.
func TextDiff(before, after string) []diffpatch.Diff {
	dmp := diffpatch.New()
	if !strings.Contains(before, "\n") || !strings.Contains(after, "\n") {
		return dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	}
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCleanupSemantic(dmp.DiffCharsToLines(diffs, lines))
}

// FormatTextDiff renders diffs. With color, insertions and deletions are
// shown with terminal colors; otherwise deletions are written as [-text-]
// and insertions as {+text+}.
func FormatTextDiff(diffs []diffpatch.Diff, color bool) string {
	if color {
		return diffpatch.New().DiffPrettyText(diffs)
	}
	sb := &strings.Builder{}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// Changed reports whether diffs contain any insertion or deletion.
func Changed(diffs []diffpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}
