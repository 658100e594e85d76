package main

import (
	"encoding/json"
	"fmt"

	"github.com/signadot/rendertree/encode"
	"github.com/signadot/rendertree/eval"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires a root payload", cli.ErrUsage)
	}
	root, err := getRoot(cfg.MainConfig, cc, args[0], parse.ParseValidate(true))
	if err != nil {
		return err
	}
	if err := checkRoundTrip(args[0], root); err != nil {
		return err
	}
	root, err = applyDiffs(cfg.MainConfig, cc, root, args[1:])
	if err != nil {
		return err
	}
	if err := root.Validate(); err != nil {
		return fmt.Errorf("after %d diffs: %w", len(args)-1, err)
	}
	if cfg.Expect == "" {
		return nil
	}
	return eval.Check(cfg.Expect, root)
}

// checkRoundTrip verifies that the payload at path decodes to the same
// tree after re-encoding, and that the wire form is stable.
func checkRoundTrip(path string, root *ir.Root) error {
	first, err := wireJSON(root)
	if err != nil {
		return err
	}
	again, err := parse.ParseRoot(first)
	if err != nil {
		return fmt.Errorf("%s: re-encoded payload does not decode: %w", path, err)
	}
	if !root.Equal(again) {
		return fmt.Errorf("%s: re-encoded payload decodes to a different tree", path)
	}
	second, err := wireJSON(again)
	if err != nil {
		return err
	}
	if !jsonpatch.Equal(first, second) {
		return fmt.Errorf("%s: wire encoding is not stable:\n%s\n%s", path, first, second)
	}
	return nil
}

func wireJSON(root *ir.Root) ([]byte, error) {
	v, err := encode.RootValue(root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(encode.Plain(v))
}
