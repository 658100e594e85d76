package main

import (
	"fmt"

	"github.com/signadot/rendertree/encode"

	"github.com/scott-cotton/cli"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires a root payload and at least one diff, got %v", cli.ErrUsage, args)
	}
	root, err := getRoot(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	root, err = applyDiffs(cfg.MainConfig, cc, root, args[1:])
	if err != nil {
		return err
	}
	return encode.Encode(root, cc.Out, cfg.encOpts(cc.Out)...)
}
