// Package server hosts the front-end bridge and the status endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goaltray/goaltray/internal/buildinfo"
	"github.com/goaltray/goaltray/internal/daemon/bridge"
	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/daemon/router"
)

const (
	BridgePath = "/bridge"
	StatusPath = "/status"
)

// Status is the body of GET /status.
type Status struct {
	PID           int       `json:"pid"`
	Port          int       `json:"port"`
	Version       string    `json:"version"`
	StartedAt     time.Time `json:"started_at"`
	Window        bool      `json:"window"`
	WindowVisible bool      `json:"window_visible"`
	Sessions      int       `json:"sessions"`
	Goals         int       `json:"goals"`
	Items         int       `json:"items"`
}

// Server is the daemon's HTTP server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	port       int
	startedAt  time.Time

	bridge *bridge.Bridge
	router *router.Router
	logger *zap.Logger
}

// New creates a new server listening on host:port.
// Pass port 0 for dynamic allocation.
func New(host string, port int, b *bridge.Bridge, r *router.Router, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	listener, err := (&net.ListenConfig{}).Listen(context.TODO(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	// Get actual port if dynamically allocated
	actualPort := listener.Addr().(*net.TCPAddr).Port

	srv := &Server{
		listener:  listener,
		port:      actualPort,
		startedAt: time.Now().UTC(),
		bridge:    b,
		router:    r,
		logger:    logger.Named("server"),
	}

	mux := http.NewServeMux()
	mux.Handle(BridgePath, b.Handler())
	mux.HandleFunc(StatusPath, srv.handleStatus)

	srv.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv, nil
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	s.logger.Info("Serving", zap.String("addr", s.listener.Addr().String()))
	err := s.httpServer.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully stops the server. Open bridge connections are closed
// once ctx expires.
func (s *Server) Stop(ctx context.Context) {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("Graceful shutdown incomplete", zap.Error(err))
		_ = s.httpServer.Close()
	}
}

// Status reports the daemon's current state.
func (s *Server) Status() Status {
	st := Status{
		PID:       os.Getpid(),
		Port:      s.port,
		Version:   buildinfo.Version,
		StartedAt: s.startedAt,
		Sessions:  s.bridge.SessionCount(),
	}
	if w, ok := s.bridge.Window(bridge.MainLabel); ok {
		st.Window = true
		st.WindowVisible = w.Visible()
	}
	if s.router != nil {
		st.Goals = len(s.router.Goals())
		s.router.Installed().Walk(func(it menu.Item, _ int) {
			if it.Kind != menu.KindSeparator {
				st.Items++
			}
		})
	}
	return st
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Status()); err != nil {
		s.logger.Debug("Status write failed", zap.Error(err))
	}
}

// FetchStatus queries a running daemon's status endpoint.
func FetchStatus(ctx context.Context, url string) (*Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach daemon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daemon status: %s", resp.Status)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return &st, nil
}
