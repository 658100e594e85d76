package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/signadot/rendertree/session"

	"github.com/scott-cotton/cli"
)

func replay(cfg *ReplayConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Replay.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: replay takes at most one event log, got %v", cli.ErrUsage, args)
	}
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	var r io.Reader = cc.In
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []session.Option{
		session.WithLogger(theLog.With("events", path)),
		session.WithValidate(cfg.Validate),
	}
	if cfg.Every {
		opts = append(opts, session.WithOnRender(func(out string) {
			io.WriteString(cc.Out, out+"\n")
		}))
	}
	s := session.New(opts...)
	if err := s.Replay(ctx, r); err != nil {
		return err
	}
	if cfg.Every {
		return nil
	}
	_, err = io.WriteString(cc.Out, s.Rendered()+"\n")
	return err
}
