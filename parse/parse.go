package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/signadot/rendertree/debug"
	"github.com/signadot/rendertree/format"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"

	"github.com/goccy/go-yaml"
)

// Parse reads a payload into a generic value: objects become
// map[string]any, arrays []any, and JSON numbers json.Number.
func Parse(d []byte, opts ...ParseOption) (any, error) {
	pOpts := &parseOpts{}
	for _, opt := range opts {
		opt(pOpts)
	}
	var v any
	switch pOpts.format {
	case format.YAMLFormat:
		if err := yaml.Unmarshal(d, &v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(d))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, fmt.Errorf("%w: trailing data after payload", ErrParse)
		}
	}
	return v, nil
}

// ParseRoot reads and decodes an initial render payload.
func ParseRoot(d []byte, opts ...ParseOption) (*ir.Root, error) {
	pOpts := &parseOpts{}
	for _, opt := range opts {
		opt(pOpts)
	}
	v, err := Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	root, err := Root(v)
	if err != nil {
		return nil, err
	}
	if debug.Decode() {
		debug.Logf("decoded root\n%s\n", debug.Root{Root: root})
	}
	if pOpts.validate {
		if err := root.Validate(); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// ParseDiff reads and decodes a diff payload.
func ParseDiff(d []byte, opts ...ParseOption) (*libdiff.RootDiff, error) {
	v, err := Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	diff, err := Diff(v)
	if err != nil {
		return nil, err
	}
	if debug.Decode() {
		debug.Logf("decoded diff\n%s\n", debug.Diff{RootDiff: diff})
	}
	return diff, nil
}
