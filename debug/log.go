package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/rendertree/encode"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"
)

type Root struct{ *ir.Root }

func (r Root) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(r.Root, buf); err != nil {
		return fmt.Sprintf("[raw *ir.Root] %v", r.Root)
	}
	return buf.String()
}

type Diff struct{ *libdiff.RootDiff }

func (d Diff) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeDiff(d.RootDiff, buf); err != nil {
		return fmt.Sprintf("[raw *libdiff.RootDiff] %v", d.RootDiff)
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Root:
			args[i] = Root{Root: x}.String()
		case *libdiff.RootDiff:
			args[i] = Diff{RootDiff: x}.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
