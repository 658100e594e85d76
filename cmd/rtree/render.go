package main

import (
	"fmt"
	"io"

	"github.com/signadot/rendertree"
	"github.com/signadot/rendertree/parse"

	"github.com/scott-cotton/cli"
)

func render(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Render.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: render requires a root payload", cli.ErrUsage)
	}
	root, err := getRoot(cfg.MainConfig, cc, args[0], parse.ParseValidate(cfg.Validate))
	if err != nil {
		return err
	}
	root, err = applyDiffs(cfg.MainConfig, cc, root, args[1:])
	if err != nil {
		return err
	}
	out, err := rendertree.BuildString(root)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cc.Out, out+"\n")
	return err
}
