package app

import (
	"context"

	"github.com/dshills/mandelterm/internal/renderer/backend"
)

// eventLoop handles surface events until a key press, Shutdown or ctx
// cancellation. It returns ErrQuit for a key press.
func (app *Application) eventLoop(ctx context.Context) error {
	events := app.startInputPolling()
	defer app.stopInputPolling()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}
		}
	}
}

// sizeSyncer is a backend that keeps its own copy of the surface size and
// must be told about a resize before the next draw.
type sizeSyncer interface {
	SyncSize(width, height int)
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		app.metrics.RecordEvent()
		return app.handleKeyEvent(ev)
	case backend.EventResize:
		app.metrics.RecordEvent()
		if s, ok := app.backend.(sizeSyncer); ok {
			s.SyncSize(ev.Width, ev.Height)
		}
		return app.redraw("resize")
	case backend.EventInterrupt:
		if req, ok := ev.Data.(reloadRequest); ok {
			app.metrics.RecordEvent()
			return app.handleReload(req)
		}
		return nil
	default:
		return nil
	}
}

// handleKeyEvent quits on any key except Ctrl-L, which repaints.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	if ev.Key == backend.KeyCtrlL {
		return app.redraw("refresh")
	}
	return ErrQuit
}

// handleReload reloads the config file and repaints. A config that fails
// to load or validate is logged and the current settings are kept.
func (app *Application) handleReload(req reloadRequest) error {
	log := app.logger.WithComponent("config").WithField("path", req.path)

	next, err := app.Config().Reload()
	app.metrics.RecordReload(err)
	if err != nil {
		log.Warn("reload failed, keeping current settings: %v", err)
		return nil
	}

	app.mu.Lock()
	app.config = next
	app.mu.Unlock()

	log.Info("config reloaded")
	return app.redraw("reload")
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel.
//
// PollEvent is blocking, so stopInputPolling posts an interrupt to wake the
// poller; a terminal backend is also unblocked by Shutdown.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)
	b := app.backend

	go func() {
		defer close(events)

		for {
			ev := b.PollEvent()

			select {
			case <-app.done:
				return
			default:
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}

// stopInputPolling ends the polling goroutine.
func (app *Application) stopInputPolling() {
	app.Shutdown()
	app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
}
