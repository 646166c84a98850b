// Package app provides the main application structure and coordination
// for mandelterm. It wires the configuration, the renderer and the
// display surface together and runs the display loop.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/mandelterm/internal/config"
	"github.com/dshills/mandelterm/internal/config/watcher"
	"github.com/dshills/mandelterm/internal/fractal"
	"github.com/dshills/mandelterm/internal/renderer"
	"github.com/dshills/mandelterm/internal/renderer/backend"
	"github.com/dshills/mandelterm/internal/renderer/core"
)

// Application draws the set onto a backend and keeps it up until asked
// to exit.
type Application struct {
	mu sync.RWMutex

	config   *config.Config
	backend  backend.Backend
	renderer *renderer.Renderer
	watcher  *watcher.Watcher

	logger  *Logger
	metrics *Metrics

	lastRun Run

	// State
	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// Options configures the application.
type Options struct {
	// Config holds the settings. Defaults are used when nil.
	Config *config.Config

	// Logger receives log output. Logging is disabled when nil.
	Logger *Logger

	// Metrics collects counters. A fresh tracker is used when nil.
	Metrics *Metrics
}

// Run describes one drawing pass.
type Run struct {
	// ID identifies the pass in log output.
	ID string

	// Area is the rectangle that was drawn.
	Area core.ScreenRect

	// Stats is the renderer's report. Only Cells is set for a palette preview.
	Stats renderer.Stats
}

// reloadRequest is posted as interrupt data when the config file changes.
type reloadRequest struct {
	path string
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	app := &Application{
		config:  cfg,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		done:    make(chan struct{}),
	}
	if app.logger == nil {
		app.logger = NewNullLogger()
	}
	if app.metrics == nil {
		app.metrics = NewMetrics()
	}
	return app, nil
}

// SetBackend sets the display surface.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run initializes the backend, draws once and, when render.waitForKey is
// set, handles surface events until a key is pressed, Shutdown is called
// or ctx is cancelled. A normal exit returns nil. An Application runs
// once; a second Run after the loop has ended returns right after drawing.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.mu.Lock()
	app.renderer = renderer.New(b)
	app.mu.Unlock()

	log := app.logger.WithComponent("app")
	log.Debug("backend ready")

	if err := app.startWatcher(); err != nil {
		log.Warn("config watch disabled: %v", err)
	}
	defer app.stopWatcher()

	if err := app.draw(false); err != nil {
		return err
	}

	if !app.Config().Render.WaitForKey {
		return nil
	}

	err := app.eventLoop(ctx)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// Shutdown makes a running event loop return. It is safe to call more
// than once and from any goroutine.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
	})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the current settings.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Renderer returns the renderer, or nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// LastRun returns the most recent drawing pass.
func (app *Application) LastRun() Run {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.lastRun
}

// area returns the rectangle to draw for the current settings.
func (app *Application) area() core.ScreenRect {
	cfg := app.Config().Render
	width, height := cfg.Width, cfg.Height
	if cfg.Fit {
		w, h := app.backend.Size()
		width, height = w-cfg.OriginX, h-cfg.OriginY
	}
	return core.RectFromSize(cfg.OriginY, cfg.OriginX, height, width)
}

// draw paints the set, or the palette swatch in preview mode, and logs
// one line for the pass.
func (app *Application) draw(clear bool) error {
	if clear {
		app.backend.Clear()
	}

	cfg := app.Config()
	area := app.area()
	run := Run{ID: uuid.NewString(), Area: area}
	log := app.logger.WithComponent("renderer").WithField("run", run.ID)

	if cfg.Render.PalettePreview {
		n, err := app.renderer.DrawPalette(area.Top, area.Left)
		if err != nil {
			app.metrics.RecordRenderError()
			return NewOperationError("draw", "palette", err)
		}
		run.Stats.Cells = n
		log.WithField("cells", n).Info("palette drawn")
	} else {
		stats, err := app.renderer.Draw(area)
		if err != nil {
			app.metrics.RecordRenderError()
			return NewOperationError("draw", "set", err).
				WithContext(area.String())
		}
		run.Stats = stats
		app.metrics.RecordRender(stats)
		log.WithFields(map[string]any{
			"cells":    stats.Cells,
			"members":  stats.Members,
			"steps":    stats.Steps,
			"duration": stats.Duration,
		}).Info("render complete")
	}

	app.mu.Lock()
	app.lastRun = run
	app.mu.Unlock()
	return nil
}

// redraw repaints after a resize or reload. A surface too small for the
// grid is logged and skipped.
func (app *Application) redraw(reason string) error {
	err := app.draw(true)
	if errors.Is(err, fractal.ErrEmptyGrid) {
		app.logger.WithComponent("app").Warn("skipping %s redraw: %v", reason, err)
		return nil
	}
	return err
}

// startWatcher watches the config file when watch is enabled.
func (app *Application) startWatcher() error {
	cfg := app.Config()
	if !cfg.Watch || cfg.Path() == "" {
		return nil
	}

	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Watch(cfg.Path()); err != nil {
		_ = w.Close()
		return err
	}

	b := app.backend
	w.OnChange(func(ev watcher.Event) {
		b.PostEvent(backend.Event{
			Type: backend.EventInterrupt,
			Data: reloadRequest{path: ev.Path},
		})
	})

	app.mu.Lock()
	app.watcher = w
	app.mu.Unlock()
	return nil
}

func (app *Application) stopWatcher() {
	app.mu.Lock()
	w := app.watcher
	app.watcher = nil
	app.mu.Unlock()

	if w != nil {
		_ = w.Close()
	}
}
