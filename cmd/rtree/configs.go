package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/rendertree/encode"
	"github.com/signadot/rendertree/format"
	"github.com/signadot/rendertree/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) inFormat(path string) format.Format {
	switch {
	case cfg.InFormat != nil:
		return *cfg.InFormat
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	return format.FromPath(path)
}

func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.inFormat(path))}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var fmt format.Format
	switch {
	case cfg.Y:
		fmt = format.YAMLFormat
	case cfg.J:
		fmt = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmt = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmt),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w is colored: when -color is given,
// otherwise when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type RenderConfig struct {
	*MainConfig
	Validate bool `cli:"name=v aliases=validate desc='check every reference before rendering'"`

	Render *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Merge *cli.Command
}

type ViewConfig struct {
	*MainConfig
	Diff bool `cli:"name=d aliases=diff desc='view the payload as a diff'"`

	View *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Text bool `cli:"name=text desc='diff the rendered output instead of the trees'"`

	Diff *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Expect string `cli:"name=expect desc='expression which must hold on the final tree'"`

	Check *cli.Command
}

type ReplayConfig struct {
	*MainConfig
	Validate bool `cli:"name=v aliases=validate desc='check every reference on join'"`
	Every    bool `cli:"name=every desc='print the output after every event'"`

	Replay *cli.Command
}
