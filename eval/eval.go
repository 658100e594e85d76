package eval

import (
	"errors"
	"fmt"

	"github.com/signadot/rendertree/debug"
	"github.com/signadot/rendertree/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrCheck is returned by Check when an expression evaluates to false.
var ErrCheck = errors.New("check failed")

// Eval evaluates input against the environment of root. Besides the
// variables of FromRoot, input may call
//
//	component(cid int) string  the flattened output of a component
//	count(s string) int        occurrences of s in the flattened output
//	getenv(name string) string
func Eval(input string, root *ir.Root) (any, error) {
	env, err := FromRoot(root)
	if err != nil {
		return nil, err
	}
	program, err := expr.Compile(input, append(exprOpts(root, env[HTMLKey].(string)), expr.Env(map[string]any(env)))...)
	if err != nil {
		return nil, err
	}
	return vm.Run(program, map[string]any(env))
}

// Check evaluates the boolean expression input against root and fails
// with ErrCheck when it is false.
func Check(input string, root *ir.Root) error {
	env, err := FromRoot(root)
	if err != nil {
		return err
	}
	opts := append(exprOpts(root, env[HTMLKey].(string)), expr.Env(map[string]any(env)), expr.AsBool())
	program, err := expr.Compile(input, opts...)
	if err != nil {
		return err
	}
	res, err := vm.Run(program, map[string]any(env))
	if err != nil {
		return err
	}
	if debug.Build() {
		debug.Logf("check %q gave %v\n", input, res)
	}
	if ok, _ := res.(bool); !ok {
		return fmt.Errorf("%w: %s", ErrCheck, input)
	}
	return nil
}
