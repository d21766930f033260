package cmd

import (
	"sync"

	"go.uber.org/zap"

	"github.com/goaltray/goaltray/internal/daemon/menu"
)

// headlessHost keeps the daemon alive without any display. Installed menus
// are logged so front-end development can follow along.
type headlessHost struct {
	logger *zap.Logger

	mu       sync.Mutex
	quit     chan struct{}
	quitOnce sync.Once
	last     *menu.Menu
}

func newHeadlessHost(logger *zap.Logger) *headlessHost {
	return &headlessHost{logger: logger, quit: make(chan struct{})}
}

func (h *headlessHost) Run(onStart, onExit func()) error {
	if onStart != nil {
		onStart()
	}
	<-h.quit
	if onExit != nil {
		onExit()
	}
	return nil
}

func (h *headlessHost) Quit() {
	h.quitOnce.Do(func() { close(h.quit) })
}

func (h *headlessHost) Install(m *menu.Menu) error {
	h.mu.Lock()
	h.last = m
	h.mu.Unlock()

	m.Walk(func(it menu.Item, depth int) {
		if it.Kind == menu.KindSeparator {
			return
		}
		h.logger.Debug("Menu item",
			zap.Int("depth", depth),
			zap.Stringer("kind", it.Kind),
			zap.String("id", it.ID),
			zap.String("label", it.Label))
	})
	h.logger.Info("Menu installed", zap.Int("actions", len(m.Actions)))
	return nil
}

// Installed returns the last installed menu.
func (h *headlessHost) Installed() *menu.Menu {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
