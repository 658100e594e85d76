package eval

import (
	"os"
	"strings"

	"github.com/signadot/rendertree/ir"

	"github.com/expr-lang/expr"
)

func exprOpts(root *ir.Root, html string) []expr.Option {
	return []expr.Option{
		expr.Function("component", func(params ...any) (any, error) {
			sb := &strings.Builder{}
			if err := root.BuildComponent(sb, params[0].(int)); err != nil {
				return nil, err
			}
			return sb.String(), nil
		},
			new(func(int) string)),
		expr.Function("count", func(params ...any) (any, error) {
			return strings.Count(html, params[0].(string)), nil
		},
			new(func(string) int)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
