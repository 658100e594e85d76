package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/rendertree/ir"
)

func MustString(r *ir.Root) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(r, buf, EncodeWire(true)); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
