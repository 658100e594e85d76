package main

import (
	"fmt"
	"io"

	"github.com/signadot/rendertree"
	"github.com/signadot/rendertree/encode"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	from, err := getRoot(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	to, err := getRoot(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	var changed bool
	if cfg.Text {
		changed, err = textDiff(cfg, cc.Out, from, to)
	} else {
		changed, err = treeDiff(cfg, cc.Out, from, to)
	}
	if err != nil {
		return err
	}
	if changed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func treeDiff(cfg *DiffConfig, w io.Writer, from, to *ir.Root) (bool, error) {
	d, err := libdiff.Compute(from, to)
	if err != nil {
		return false, err
	}
	if err := encode.EncodeDiff(d, w, cfg.encOpts(w)...); err != nil {
		return false, err
	}
	return !d.Fragment.IsEmpty() || len(d.Components) != 0 || len(d.Templates) != 0, nil
}

func textDiff(cfg *DiffConfig, w io.Writer, from, to *ir.Root) (bool, error) {
	before, err := rendertree.BuildString(from)
	if err != nil {
		return false, err
	}
	after, err := rendertree.BuildString(to)
	if err != nil {
		return false, err
	}
	diffs := libdiff.TextDiff(before, after)
	if !libdiff.Changed(diffs) {
		return false, nil
	}
	_, err = io.WriteString(w, libdiff.FormatTextDiff(diffs, cfg.useColor(w))+"\n")
	return true, err
}
