package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goaltray/goaltray/internal/config"
	"github.com/goaltray/goaltray/internal/daemon/bridge"
	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/daemon/router"
	"github.com/goaltray/goaltray/internal/daemon/server"
	"github.com/goaltray/goaltray/internal/daemon/tray"
	"github.com/goaltray/goaltray/internal/daemon/watcher"
	"github.com/goaltray/goaltray/internal/logging"
	"github.com/goaltray/goaltray/internal/models"
	"github.com/goaltray/goaltray/internal/tui"
)

type hostMode int

const (
	modeTray hostMode = iota
	modeTerminal
	modeHeadless
)

// host is a surface that displays the menu.
type host interface {
	router.Installer
	Run(onStart, onExit func()) error
	Quit()
}

// tooltipSetter is implemented by hosts with a tooltip.
type tooltipSetter interface {
	SetTooltip(tooltip string)
}

type daemon struct {
	mode         hostMode
	port         int
	settings     *models.Settings
	settingsPath string

	logger *zap.Logger
	level  zap.AtomicLevel

	bridge  *bridge.Bridge
	router  *router.Router
	host    host
	srv     *server.Server
	watcher *watcher.Watcher
	stopSig chan struct{}
}

func newDaemon(mode hostMode, port int) (*daemon, error) {
	settingsPath, err := config.GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := config.LoadSettingsFrom(settingsPath)
	if err != nil {
		return nil, err
	}

	// The terminal host owns the screen, so logs go to the file.
	outputs := []string{"stderr"}
	if mode != modeHeadless {
		logFile, err := config.GlobalLogFile()
		if err != nil {
			return nil, err
		}
		outputs = []string{logFile}
	}
	logger, level, err := logging.New(settings.Log, outputs...)
	if err != nil {
		return nil, err
	}

	if port < 0 {
		port = settings.Bridge.Port
	}

	d := &daemon{
		mode:         mode,
		port:         port,
		settings:     settings,
		settingsPath: settingsPath,
		logger:       logger,
		level:        level,
		stopSig:      make(chan struct{}),
	}
	d.wire()
	return d, nil
}

// wire connects host, router and bridge. The router quits through the host.
func (d *daemon) wire() {
	d.bridge = bridge.New(d.logger)

	var r *router.Router
	onClick := func(id string) { r.OnTrayClick(id) }

	switch d.mode {
	case modeTerminal:
		d.host = tui.New(onClick, d.logger.Named("tui"))
	case modeHeadless:
		d.host = newHeadlessHost(d.logger.Named("headless"))
	default:
		d.host = trayHost{tray.New(onClick, d.settings.Tray.Tooltip, d.logger.Named("tray"))}
	}

	r = router.New(d.host, d.bridge, d.host.Quit, d.logger.Named("router"), menu.OptionsFromSettings(d.settings))
	d.router = r
	d.bridge.Attach(r)
}

func (d *daemon) run() error {
	defer func() { _ = d.logger.Sync() }()

	var startErr error
	err := d.host.Run(func() {
		if startErr = d.start(); startErr != nil {
			d.logger.Error("Failed to start daemon", zap.Error(startErr))
			d.host.Quit()
		}
	}, d.stop)
	if startErr != nil {
		return startErr
	}
	return err
}

func (d *daemon) start() error {
	srv, err := server.New(d.settings.Bridge.Host, d.port, d.bridge, d.router, d.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	d.srv = srv

	info := models.NewDaemonInfo(d.settings.Bridge.Host, srv.Port(), os.Getpid())
	if err := config.SaveDaemonInfo(info); err != nil {
		return fmt.Errorf("failed to write daemon info: %w", err)
	}

	d.logger.Info("Daemon started", zap.Int("port", srv.Port()), zap.Int("pid", os.Getpid()))

	go func() {
		if err := srv.Serve(); err != nil {
			d.logger.Error("Server error", zap.Error(err))
			d.host.Quit()
		}
	}()

	// Until a front-end pushes goals the menu holds only the fixed entries.
	if err := d.router.RefreshTrayMenu(context.Background(), nil); err != nil {
		d.logger.Warn("Failed to install initial menu", zap.Error(err))
	}

	d.watchSettings()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			d.logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
			d.host.Quit()
		case <-d.stopSig:
		}
	}()
	return nil
}

func (d *daemon) stop() {
	close(d.stopSig)
	if d.watcher != nil {
		d.watcher.Stop()
	}
	if d.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		d.srv.Stop(ctx)
		cancel()
	}
	if err := config.RemoveDaemonInfoFor(os.Getpid()); err != nil {
		d.logger.Warn("Failed to remove daemon info", zap.Error(err))
	}
	d.logger.Info("Daemon stopped")
}

func (d *daemon) watchSettings() {
	dir, err := config.GlobalDir()
	if err != nil {
		d.logger.Warn("Settings reload disabled", zap.Error(err))
		return
	}
	w, err := watcher.New(dir, d.logger.Named("watcher"), config.SettingsFileName)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		d.logger.Warn("Settings reload disabled", zap.Error(err))
		return
	}
	d.watcher = w

	go d.reloadSettings(w)
}

// reloadSettings applies settings changes until the watcher stops.
func (d *daemon) reloadSettings(w *watcher.Watcher) {
	for {
		select {
		case <-w.Done():
			return
		case ev := <-w.Events():
			switch ev.Type {
			case watcher.EventSettingsChanged:
				s, err := config.LoadSettingsFrom(d.settingsPath)
				if err != nil {
					d.logger.Warn("Ignoring invalid settings", zap.Error(err))
					continue
				}
				d.applySettings(s)
			case watcher.EventSettingsRemoved:
				d.applySettings(models.NewSettings())
			}
		}
	}
}

// applySettings re-renders the menu and updates tooltip and log level.
// Bridge address changes need a restart.
func (d *daemon) applySettings(s *models.Settings) {
	if lvl, err := logging.ParseLevel(s.Log.Level); err == nil {
		d.level.SetLevel(lvl)
	}
	if ts, ok := d.host.(tooltipSetter); ok {
		ts.SetTooltip(s.Tray.Tooltip)
	}
	if err := d.router.SetOptions(menu.OptionsFromSettings(s)); err != nil {
		d.logger.Warn("Failed to re-render menu", zap.Error(err))
	}
	d.settings.Tray = s.Tray
	d.settings.Log = s.Log
	d.logger.Info("Settings reloaded",
		zap.String("variant", s.Tray.Variant),
		zap.String("labels", s.Tray.Labels),
		zap.String("level", s.Log.Level))
}

// trayHost adapts tray.Host, whose Run does not fail.
type trayHost struct {
	*tray.Host
}

func (t trayHost) Run(onStart, onExit func()) error {
	t.Host.Run(onStart, onExit)
	return nil
}
