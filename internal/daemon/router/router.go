// Package router routes tray clicks and installs rebuilt tray menus.
package router

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/models"
)

// Events published to the main window.
const (
	EventToggleGoal       = "toggle_goal"
	EventRemoveImpediment = "remove_impediment"
	EventAddImpediment    = "add_impediment"
)

// Installer puts a built menu on screen, replacing whatever was there.
type Installer interface {
	Install(m *menu.Menu) error
}

// Window is the front-end window the router talks to.
type Window interface {
	Show() error
	Emit(event, payload string) error
}

// WindowLocator finds the main window. It returns ErrWindowNotFound when
// no front-end is attached.
type WindowLocator interface {
	MainWindow() (Window, error)
}

// Router dispatches tray clicks and keeps the installed menu.
type Router struct {
	installer Installer
	windows   WindowLocator
	quit      func()
	logger    *zap.Logger

	mu        sync.RWMutex
	opts      menu.Options
	installed *menu.Menu
	goals     models.GoalList // last snapshot the front-end sent
}

// New creates a router. quit is called for the quit action and must end the process.
func New(installer Installer, windows WindowLocator, quit func(), logger *zap.Logger, opts menu.Options) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		installer: installer,
		windows:   windows,
		quit:      quit,
		logger:    logger,
		opts:      opts,
	}
}

// Installed returns the menu currently on screen, or nil before the first install.
func (r *Router) Installed() *menu.Menu {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.installed
}

// Goals returns a copy of the last goal snapshot.
func (r *Router) Goals() models.GoalList {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.goals.Clone()
}

// RefreshTrayMenu rebuilds the tray menu from goals and installs it.
func (r *Router) RefreshTrayMenu(ctx context.Context, goals []models.Goal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.logger.Debug("Updating tray menu", zap.Int("goals", len(goals)))

	if err := models.GoalList(goals).Validate(); err != nil {
		// Duplicates only lose their later side-table entries; still render.
		r.logger.Warn("Goal list failed validation", zap.Error(err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.installLocked(models.GoalList(goals).Clone()); err != nil {
		return err
	}
	r.logger.Debug("Tray menu updated", zap.Int("items", len(r.installed.Items)))
	return nil
}

// ToggleGoal resynchronizes the tray after the front-end toggled id.
// The completed flag itself is owned by the front-end.
func (r *Router) ToggleGoal(ctx context.Context, id string, goals []models.Goal) error {
	r.logger.Info("Toggling goal", zap.String("goal_id", id))
	return r.RefreshTrayMenu(ctx, goals)
}

// SetOptions switches variant or labels and re-renders the last snapshot.
func (r *Router) SetOptions(opts menu.Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
	if r.installed == nil {
		return nil
	}
	r.logger.Info("Re-rendering tray menu", zap.String("variant", opts.Variant))
	return r.installLocked(r.goals)
}

// installLocked builds and installs; state only changes on success.
func (r *Router) installLocked(goals models.GoalList) error {
	m := menu.Build(goals, r.opts)
	if r.installer == nil {
		return osError("install_menu", ErrTrayUnavailable)
	}
	if err := r.installer.Install(m); err != nil {
		return osError("install_menu", err)
	}
	r.installed = m
	r.goals = goals
	return nil
}

// OnTrayClick handles one click on a tray item. Failures are logged, never returned:
// a click must not take the process down.
func (r *Router) OnTrayClick(identifier string) {
	r.logger.Debug("Menu item clicked", zap.String("id", identifier))

	action, ok := r.Installed().Lookup(identifier)
	if !ok {
		r.logger.Debug("Ignoring unrouted menu item", zap.String("id", identifier))
		return
	}
	if action.Kind.TargetsGoal() && action.GoalID == "" {
		r.logger.Debug("Ignoring malformed menu item", zap.String("id", identifier))
		return
	}

	if err := r.dispatch(action); err != nil {
		r.logger.Error("Tray action failed",
			zap.String("id", identifier),
			zap.Stringer("action", action),
			zap.Error(err))
	}
}

func (r *Router) dispatch(a menu.Action) error {
	switch a.Kind {
	case menu.ActionQuit:
		r.logger.Info("Quit requested from tray")
		if r.quit != nil {
			r.quit()
		}
		return nil
	case menu.ActionShow, menu.ActionNewGoal:
		return r.show()
	case menu.ActionComplete, menu.ActionUncomplete, menu.ActionToggle:
		return r.emit(EventToggleGoal, a.GoalID)
	case menu.ActionRemoveImpediment:
		return r.emit(EventRemoveImpediment, a.GoalID)
	case menu.ActionAddImpediment:
		if err := r.show(); err != nil {
			return err
		}
		return r.emit(EventAddImpediment, a.GoalID)
	}
	return nil
}

func (r *Router) window() (Window, error) {
	if r.windows == nil {
		return nil, osError("get_window", ErrWindowNotFound)
	}
	w, err := r.windows.MainWindow()
	if err != nil {
		return nil, osError("get_window", err)
	}
	return w, nil
}

func (r *Router) show() error {
	w, err := r.window()
	if err != nil {
		return err
	}
	if err := w.Show(); err != nil {
		return osError("show", err)
	}
	return nil
}

func (r *Router) emit(event, goalID string) error {
	w, err := r.window()
	if err != nil {
		return err
	}
	if err := w.Emit(event, goalID); err != nil {
		return osError("emit", err)
	}
	return nil
}
