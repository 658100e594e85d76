package parse

import "github.com/signadot/rendertree/format"

type parseOpts struct {
	format   format.Format
	validate bool
}

type ParseOption func(*parseOpts)

func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseValidate makes ParseRoot check every reference and arity invariant
// of the decoded root.
func ParseValidate(v bool) ParseOption {
	return func(o *parseOpts) { o.validate = v }
}
