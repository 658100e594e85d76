package main

import (
	"fmt"
	"io"

	"github.com/signadot/rendertree/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		if err := viewFile(cfg, cc, cc.Out, file); err != nil {
			return err
		}
		if i < len(args)-1 {
			io.WriteString(cc.Out, "\n")
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, w io.Writer, file string) error {
	opts := cfg.encOpts(w)
	if cfg.Diff {
		diff, err := getDiff(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		if err := encode.EncodeDiff(diff, w, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		return nil
	}
	root, err := getRoot(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	if err := encode.Encode(root, w, opts...); err != nil {
		return fmt.Errorf("error encoding %s: %w", file, err)
	}
	return nil
}
