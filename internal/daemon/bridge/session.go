package bridge

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/net/websocket"
)

const writeTimeout = 5 * time.Second

// ErrSessionClosed is returned when writing to a disconnected front-end.
var ErrSessionClosed = errors.New("front-end session closed")

// Session is one front-end connection. A session that said hello with a
// label is a window.
type Session struct {
	id   string
	conn *websocket.Conn

	mu      sync.Mutex
	label   string
	visible bool
	closed  bool
}

func newSession(id string, conn *websocket.Conn) *Session {
	return &Session{id: id, conn: conn}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Label returns the window label, or "" for anonymous clients.
func (s *Session) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// Visible reports whether the window is shown.
func (s *Session) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Show makes the window visible.
func (s *Session) Show() error {
	return s.setVisible(true)
}

// Hide hides the window without closing it.
func (s *Session) Hide() error {
	return s.setVisible(false)
}

func (s *Session) setVisible(v bool) error {
	event := EventWindowHide
	if v {
		event = EventWindowShow
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sendLocked(Frame{Type: FrameEvent, Event: event}); err != nil {
		return err
	}
	s.visible = v
	return nil
}

// Emit publishes an event with a goal id payload to the window.
func (s *Session) Emit(event, payload string) error {
	return s.send(Frame{Type: FrameEvent, Event: event, Payload: payload})
}

func (s *Session) send(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendLocked(f)
}

func (s *Session) sendLocked(f Frame) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return websocket.JSON.Send(s.conn, f)
}

func (s *Session) register(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
	s.visible = true
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
