package encode

import "github.com/signadot/rendertree/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeWire writes compact JSON on a single line, as sent on the wire.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}
