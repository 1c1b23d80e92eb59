package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tomledit/host/fshost"
	"github.com/signadot/tomledit/host/rpchost"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	_, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		cfg.Serve.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	log := jsonLog()
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Warn("gops agent failed", "error", err)
		}
		defer agent.Close()
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	h := fshost.New(fshost.WithDir(dir), fshost.WithLogger(log))
	defer h.Close()
	srv := rpchost.NewServer(h, rpchost.WithLogger(log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Addr == "" {
		// stdout carries the stream; logs go to stderr.
		err := srv.Serve(ctx, &stdioReadWriteCloser{read: os.Stdin, write: os.Stdout})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to start TCP listener: %w", err)
	}
	log.Info("listening", "addr", ln.Addr().String(), "dir", dir)
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go func() {
			remote := conn.RemoteAddr().String()
			log.Info("connected", "remote", remote)
			if err := srv.Serve(ctx, conn); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("connection failed", "remote", remote, "error", err)
			}
			conn.Close()
			log.Info("disconnected", "remote", remote)
		}()
	}
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
