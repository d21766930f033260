package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

// Client invokes bridge commands. The CLI uses it to drive a running daemon.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to the bridge at url (ws://host:port/bridge).
func Dial(ctx context.Context, url string) (*Client, error) {
	cfg, err := websocket.NewConfig(url, "http://localhost/")
	if err != nil {
		return nil, fmt.Errorf("invalid bridge url %s: %w", url, err)
	}
	conn, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Hello registers this connection as the window label and waits for the welcome.
func (c *Client) Hello(ctx context.Context, label string) error {
	if err := c.send(ctx, Frame{Type: FrameHello, Label: label}); err != nil {
		return err
	}
	_, err := c.await(ctx, func(f Frame) bool { return f.Type == FrameWelcome })
	return err
}

// Invoke runs a command and waits for its result. Events that arrive while
// waiting are dropped.
func (c *Client) Invoke(ctx context.Context, cmd string, args interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode %s arguments: %w", cmd, err)
	}

	id := uuid.New().String()
	if err := c.send(ctx, Frame{Type: FrameInvoke, ID: id, Cmd: cmd, Args: raw}); err != nil {
		return err
	}

	f, err := c.await(ctx, func(f Frame) bool { return f.Type == FrameResult && f.ID == id })
	if err != nil {
		return err
	}
	if f.Error != "" {
		return errors.New(f.Error)
	}
	return nil
}

// Next returns the next frame from the daemon. Without a ctx deadline it
// waits indefinitely.
func (c *Client) Next(ctx context.Context) (Frame, error) {
	if _, ok := ctx.Deadline(); !ok {
		if err := c.conn.SetReadDeadline(time.Time{}); err != nil {
			return Frame{}, err
		}
		return c.receive(func(Frame) bool { return true })
	}
	return c.await(ctx, func(Frame) bool { return true })
}

// RequestClose asks the daemon to close this window.
func (c *Client) RequestClose(ctx context.Context) error {
	return c.send(ctx, Frame{Type: FrameCloseRequested})
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) send(ctx context.Context, f Frame) error {
	if err := c.conn.SetWriteDeadline(deadline(ctx)); err != nil {
		return err
	}
	if err := websocket.JSON.Send(c.conn, f); err != nil {
		return fmt.Errorf("failed to send %s frame: %w", f.Type, err)
	}
	return nil
}

func (c *Client) await(ctx context.Context, match func(Frame) bool) (Frame, error) {
	if err := c.conn.SetReadDeadline(deadline(ctx)); err != nil {
		return Frame{}, err
	}
	return c.receive(match)
}

func (c *Client) receive(match func(Frame) bool) (Frame, error) {
	for {
		var f Frame
		if err := websocket.JSON.Receive(c.conn, &f); err != nil {
			return Frame{}, fmt.Errorf("failed to read from daemon: %w", err)
		}
		if match(f) {
			return f, nil
		}
	}
}

func deadline(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Now().Add(10 * time.Second)
}
