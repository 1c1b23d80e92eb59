package rpchost

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/signadot/tomledit/debug"
	"github.com/signadot/tomledit/host"
	"github.com/signadot/tomledit/host/fshost"
)

type Server struct {
	host    *fshost.Host
	log     *slog.Logger
	version atomic.Int32
}

type Option func(*options)

type options struct {
	log    *slog.Logger
	buffer int
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithBuffer sets the capacity of a Client's event channel.
func WithBuffer(n int) Option {
	return func(o *options) { o.buffer = n }
}

func makeOptions(opts []Option) *options {
	o := &options{log: slog.Default(), buffer: 16}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func NewServer(h *fshost.Host, opts ...Option) *Server {
	return &Server{host: h, log: makeOptions(opts).log}
}

// Serve handles one connection until it closes or ctx is done.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	conn.Go(ctx, jsonrpc2.ReplyHandler(s.handler(conn)))
	select {
	case <-conn.Done():
	case <-ctx.Done():
		conn.Close()
		<-conn.Done()
		return ctx.Err()
	}
	err := conn.Err()
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}

func (s *Server) handler(conn jsonrpc2.Conn) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if req.Method() != MethodCommand {
			return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
		}
		var cmd host.Command
		if err := json.Unmarshal(req.Params(), &cmd); err != nil {
			return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%s: %v", MethodCommand, err))
		}
		for _, ev := range s.host.Handle(cmd) {
			if err := s.notify(ctx, conn, ev); err != nil {
				s.log.Error("notify", "method", ev.Kind, "error", err)
				return reply(ctx, nil, err)
			}
		}
		return reply(ctx, nil, nil)
	}
}

func (s *Server) notify(ctx context.Context, conn jsonrpc2.Conn, ev host.Event) error {
	if debug.Bridge() {
		debug.Logf("rpchost notify %s %q\n", ev.Kind, ev.Status)
	}
	switch ev.Kind {
	case host.Loaded:
		return conn.Notify(ctx, MethodLoaded, toParams(ev, s.version.Add(1)))
	case host.Saved:
		return conn.Notify(ctx, MethodSaved, toParams(ev, s.version.Add(1)))
	default:
		return conn.Notify(ctx, protocol.MethodWindowShowMessage, &protocol.ShowMessageParams{
			Message: ev.Status,
			Type:    messageType(ev.Status),
		})
	}
}
