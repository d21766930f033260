// Package tray renders tray menus into the OS system tray.
package tray

import (
	_ "embed"
	"sync"

	"fyne.io/systray"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/daemon/router"
)

// maxLabelWidth keeps long impediment texts from widening the whole menu.
const maxLabelWidth = 64

//go:embed icon.png
var iconData []byte

// Host owns the system tray. Every Install replaces the whole menu.
type Host struct {
	logger  *zap.Logger
	onClick func(id string)
	tooltip string

	mu    sync.Mutex
	ready bool
	done  chan struct{} // closed when the current menu generation is replaced
	items int
}

// New creates a tray host. onClick receives the identifier of every clicked item.
func New(onClick func(id string), tooltip string, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		logger:  logger,
		onClick: onClick,
		tooltip: tooltip,
		done:    make(chan struct{}),
	}
}

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStart is called once the tray can take menus; onExit when the tray exits.
func (h *Host) Run(onStart, onExit func()) {
	systray.Run(func() {
		h.onReady()
		if onStart != nil {
			onStart()
		}
	}, func() {
		h.mu.Lock()
		h.ready = false
		close(h.done)
		h.done = make(chan struct{})
		h.mu.Unlock()
		if onExit != nil {
			onExit()
		}
	})
}

// Quit signals the tray to exit.
func (h *Host) Quit() {
	systray.Quit()
}

// SetTooltip updates the tray tooltip.
func (h *Host) SetTooltip(tooltip string) {
	h.mu.Lock()
	h.tooltip = tooltip
	ready := h.ready
	h.mu.Unlock()
	if ready {
		systray.SetTooltip(tooltip)
	}
}

func (h *Host) onReady() {
	systray.SetTemplateIcon(iconData, iconData)

	h.mu.Lock()
	defer h.mu.Unlock()
	systray.SetTooltip(h.tooltip)
	h.ready = true
	h.logger.Debug("System tray ready")
}

// Install replaces the tray menu with m.
func (h *Host) Install(m *menu.Menu) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.ready {
		return router.ErrTrayUnavailable
	}

	// Stop the previous generation's click listeners.
	close(h.done)
	h.done = make(chan struct{})
	done := h.done

	systray.ResetMenu()
	h.items = 0
	for _, it := range m.Items {
		h.addTop(it, done)
	}
	h.logger.Debug("Tray menu installed", zap.Int("items", h.items))
	return nil
}

func (h *Host) addTop(it menu.Item, done <-chan struct{}) {
	switch it.Kind {
	case menu.KindSeparator:
		systray.AddSeparator()
		return
	case menu.KindLabel:
		item := systray.AddMenuItem(TrimLabel(it.Label), "")
		item.Disable()
	case menu.KindSubmenu:
		parent := systray.AddMenuItem(TrimLabel(it.Label), "")
		for _, child := range it.Children {
			h.addChild(parent, child, done)
		}
	default:
		item := systray.AddMenuItem(TrimLabel(it.Label), "")
		h.actionItem(item, it, done)
	}
	h.items++
}

func (h *Host) addChild(parent *systray.MenuItem, it menu.Item, done <-chan struct{}) {
	switch it.Kind {
	case menu.KindSeparator:
		// Builder never nests separators.
		return
	case menu.KindLabel:
		item := parent.AddSubMenuItem(TrimLabel(it.Label), "")
		item.Disable()
	case menu.KindSubmenu:
		sub := parent.AddSubMenuItem(TrimLabel(it.Label), "")
		for _, child := range it.Children {
			h.addChild(sub, child, done)
		}
	default:
		item := parent.AddSubMenuItem(TrimLabel(it.Label), "")
		h.actionItem(item, it, done)
	}
	h.items++
}

func (h *Host) actionItem(item *systray.MenuItem, it menu.Item, done <-chan struct{}) {
	if it.Disabled {
		item.Disable()
		return
	}
	h.listen(item, it.ID, done)
}

// listen forwards clicks on item until its menu generation is replaced.
func (h *Host) listen(item *systray.MenuItem, id string, done <-chan struct{}) {
	go func() {
		for {
			select {
			case <-done:
				return
			case <-item.ClickedCh:
				if h.onClick != nil {
					h.onClick(id)
				}
			}
		}
	}()
}

// TrimLabel shortens a label to maxLabelWidth display cells.
func TrimLabel(label string) string {
	return ansi.Truncate(label, maxLabelWidth, "…")
}
