package rpchost

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/signadot/tomledit/host"
)

// Client is a host.Bridge talking to a Server.
type Client struct {
	conn   jsonrpc2.Conn
	events chan host.Event
	log    *slog.Logger
}

var _ host.Bridge = (*Client)(nil)

func NewClient(ctx context.Context, rwc io.ReadWriteCloser, opts ...Option) *Client {
	o := makeOptions(opts)
	c := &Client{
		conn:   jsonrpc2.NewConn(jsonrpc2.NewStream(rwc)),
		events: make(chan host.Event, o.buffer),
		log:    o.log,
	}
	c.conn.Go(ctx, c.handle)
	go func() {
		<-c.conn.Done()
		close(c.events)
	}()
	return c
}

// Send calls the server and returns once the command's events have been
// queued.
func (c *Client) Send(ctx context.Context, cmd host.Command) error {
	_, err := c.conn.Call(ctx, MethodCommand, cmd, nil)
	return err
}

func (c *Client) Events() <-chan host.Event {
	return c.events
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Done() <-chan struct{} {
	return c.conn.Done()
}

func (c *Client) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ev, err := decodeEvent(req)
	if err != nil {
		c.log.Warn("dropping notification", "method", req.Method(), "error", err)
		return reply(ctx, nil, err)
	}
	select {
	case c.events <- ev:
	case <-ctx.Done():
		return ctx.Err()
	}
	return reply(ctx, nil, nil)
}

func decodeEvent(req jsonrpc2.Request) (host.Event, error) {
	switch req.Method() {
	case MethodLoaded, MethodSaved:
		var p DocumentParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return host.Event{}, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%s: %v", req.Method(), err)
		}
		kind := host.Loaded
		if req.Method() == MethodSaved {
			kind = host.Saved
		}
		return fromParams(kind, p), nil
	case protocol.MethodWindowShowMessage:
		var p protocol.ShowMessageParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return host.Event{}, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%s: %v", req.Method(), err)
		}
		return host.StatusEvent(p.Message), nil
	}
	return host.Event{}, jsonrpc2.Errorf(jsonrpc2.MethodNotFound, "%q", req.Method())
}
