// Package tui renders the tray menu in the terminal, for foreground runs
// and desktops without a system tray.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/daemon/router"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) bool {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

func (r *programRef) Quit() {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Host is a terminal tray. It satisfies router.Installer.
type Host struct {
	ref     programRef
	onClick func(id string)
	logger  *zap.Logger
	opts    []tea.ProgramOption

	mu    sync.Mutex
	ready bool
}

// New creates a terminal tray host. onClick receives the identifier of every activated item.
func New(onClick func(id string), logger *zap.Logger, opts ...tea.ProgramOption) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	return &Host{onClick: onClick, logger: logger, opts: opts}
}

// Run shows the terminal tray and blocks until it quits.
// onStart runs once the host can take menus; onExit after the program ends.
func (h *Host) Run(onStart, onExit func()) error {
	model := NewModel(h.onClick, func() {
		h.setReady(true)
		if onStart != nil {
			onStart()
		}
	})

	p := tea.NewProgram(model, h.opts...)
	h.ref.Set(p)

	_, err := p.Run()

	h.setReady(false)
	h.ref.Clear()
	if onExit != nil {
		onExit()
	}
	return err
}

// Quit stops the program.
func (h *Host) Quit() {
	h.ref.Quit()
}

// Install replaces the displayed menu with m.
func (h *Host) Install(m *menu.Menu) error {
	h.mu.Lock()
	ready := h.ready
	h.mu.Unlock()
	if !ready || !h.ref.Send(menuInstalledMsg{menu: m}) {
		return router.ErrTrayUnavailable
	}
	h.logger.Debug("Terminal menu installed", zap.Int("items", len(m.Items)))
	return nil
}

func (h *Host) setReady(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = v
}
