// Package bridge connects window front-ends to the daemon over a websocket.
//
// A front-end says hello with a window label, invokes commands, and receives
// events. The window labelled "main" is the one tray clicks target.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"github.com/goaltray/goaltray/internal/daemon/router"
	"github.com/goaltray/goaltray/internal/models"
)

// Commands is the daemon side of the bridge. *router.Router implements it.
type Commands interface {
	RefreshTrayMenu(ctx context.Context, goals []models.Goal) error
	ToggleGoal(ctx context.Context, id string, goals []models.Goal) error
	OnTrayClick(identifier string)
}

// Bridge tracks connected front-ends.
type Bridge struct {
	logger *zap.Logger

	mu       sync.RWMutex
	commands Commands
	sessions map[string]*Session
	windows  map[string]*Session // label -> session
}

// New creates a bridge. Commands are attached later with Attach, since the
// router itself needs the bridge to find the main window.
func New(logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		logger:   logger,
		sessions: make(map[string]*Session),
		windows:  make(map[string]*Session),
	}
}

// Attach sets the command handler.
func (b *Bridge) Attach(c Commands) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = c
}

// Handler returns the websocket handler to mount at /bridge.
func (b *Bridge) Handler() http.Handler {
	return websocket.Handler(b.serve)
}

// MainWindow implements router.WindowLocator.
func (b *Bridge) MainWindow() (router.Window, error) {
	w, ok := b.Window(MainLabel)
	if !ok {
		return nil, router.ErrWindowNotFound
	}
	return w, nil
}

// Window returns the session registered under label.
func (b *Bridge) Window(label string) (*Session, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.windows[label]
	return s, ok
}

// SessionCount returns the number of connected front-ends, windows or not.
func (b *Bridge) SessionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions)
}

func (b *Bridge) serve(conn *websocket.Conn) {
	defer conn.Close()

	sess := newSession(uuid.New().String(), conn)
	b.mu.Lock()
	b.sessions[sess.id] = sess
	b.mu.Unlock()
	defer b.drop(sess)

	log := b.logger.With(zap.String("session", sess.id))
	log.Debug("Front-end connected", zap.String("remote", conn.Request().RemoteAddr))

	ctx := conn.Request().Context()
	for {
		var f Frame
		if err := websocket.JSON.Receive(conn, &f); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debug("Front-end read failed", zap.Error(err))
			}
			return
		}
		b.handle(ctx, sess, f, log)
	}
}

func (b *Bridge) handle(ctx context.Context, sess *Session, f Frame, log *zap.Logger) {
	switch f.Type {
	case FrameHello:
		b.register(sess, f.Label)
		log.Info("Window attached", zap.String("label", f.Label))
		if err := sess.send(Frame{Type: FrameWelcome, ID: sess.id, Label: f.Label}); err != nil {
			log.Warn("Failed to welcome window", zap.Error(err))
		}

	case FrameInvoke:
		reply := Frame{Type: FrameResult, ID: f.ID}
		if err := b.invoke(ctx, f); err != nil {
			log.Warn("Command failed", zap.String("cmd", f.Cmd), zap.Error(err))
			reply.Error = err.Error()
		}
		if err := sess.send(reply); err != nil {
			log.Warn("Failed to send command result", zap.String("cmd", f.Cmd), zap.Error(err))
		}

	case FrameCloseRequested:
		// Closing the window only hides it; the tray keeps the process alive.
		if err := sess.Hide(); err != nil {
			log.Warn("Failed to hide window", zap.Error(err))
		}

	default:
		log.Debug("Ignoring unknown frame", zap.String("type", f.Type))
	}
}

func (b *Bridge) invoke(ctx context.Context, f Frame) error {
	b.mu.RLock()
	c := b.commands
	b.mu.RUnlock()
	if c == nil {
		return fmt.Errorf("%s: daemon not ready", f.Cmd)
	}

	switch f.Cmd {
	case CmdUpdateTrayMenu:
		var args UpdateTrayMenuArgs
		if err := decodeArgs(f, &args); err != nil {
			return err
		}
		return c.RefreshTrayMenu(ctx, args.Goals)

	case CmdToggleGoal:
		var args ToggleGoalArgs
		if err := decodeArgs(f, &args); err != nil {
			return err
		}
		return c.ToggleGoal(ctx, args.ID, args.Goals)

	case CmdClick:
		var args ClickArgs
		if err := decodeArgs(f, &args); err != nil {
			return err
		}
		c.OnTrayClick(args.Identifier)
		return nil
	}
	return fmt.Errorf("unknown command %q", f.Cmd)
}

func decodeArgs(f Frame, v interface{}) error {
	if len(f.Args) == 0 {
		return nil
	}
	if err := json.Unmarshal(f.Args, v); err != nil {
		return fmt.Errorf("%s: invalid arguments: %w", f.Cmd, err)
	}
	return nil
}

func (b *Bridge) register(sess *Session, label string) {
	old := sess.Label()
	sess.register(label)

	b.mu.Lock()
	defer b.mu.Unlock()
	// A relabelled session gives up its previous window slot.
	if old != "" && old != label && b.windows[old] == sess {
		delete(b.windows, old)
		b.logger.Info("Window relabelled", zap.String("from", old), zap.String("to", label))
	}
	if label == "" {
		return
	}
	if prev, ok := b.windows[label]; ok && prev != sess {
		b.logger.Info("Window replaced", zap.String("label", label), zap.String("previous", prev.id))
	}
	b.windows[label] = sess
}

func (b *Bridge) drop(sess *Session) {
	sess.close()
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, sess.id)
	for label, w := range b.windows {
		if w == sess {
			delete(b.windows, label)
			b.logger.Info("Window detached", zap.String("label", label))
		}
	}
}
