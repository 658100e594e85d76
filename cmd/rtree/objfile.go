package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/rendertree"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"
	"github.com/signadot/rendertree/parse"

	"github.com/scott-cotton/cli"
)

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getRoot(cfg *MainConfig, cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Root, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	root, err := parse.ParseRoot(d, append(cfg.parseOpts(path), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return root, nil
}

func getDiff(cfg *MainConfig, cc *cli.Context, path string) (*libdiff.RootDiff, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	diff, err := parse.ParseDiff(d, cfg.parseOpts(path)...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return diff, nil
}

// applyDiffs merges the diffs read from paths into root, in order.
func applyDiffs(cfg *MainConfig, cc *cli.Context, root *ir.Root, paths []string) (*ir.Root, error) {
	for _, path := range paths {
		diff, err := getDiff(cfg, cc, path)
		if err != nil {
			return nil, err
		}
		root, err = rendertree.Merge(root, diff)
		if err != nil {
			return nil, fmt.Errorf("error merging %s: %w", path, err)
		}
	}
	return root, nil
}
