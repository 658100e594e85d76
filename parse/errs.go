package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/rendertree/ir"
)

var (
	// ErrDecode reports a payload whose shape does not match the expected
	// tree or diff variant. Errors wrapping it are located with an
	// ir.PathError.
	ErrDecode = errors.New("decode error")
	ErrParse  = errors.New("parse error")
)

func shapeErr(want string, got any) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrDecode, want, typeName(got))
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	default:
		if _, ok := asInt(v); ok {
			return "integer"
		}
		return fmt.Sprintf("%T", v)
	}
}

// decodeErr marks a model construction error as a decode error, keeping
// its location outermost.
func decodeErr(err error) error {
	if pe, ok := err.(*ir.PathError); ok {
		pe.Err = fmt.Errorf("%w: %w", ErrDecode, pe.Err)
		return pe
	}
	return fmt.Errorf("%w: %w", ErrDecode, err)
}
