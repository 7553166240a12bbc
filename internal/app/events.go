package app

import (
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/statusbar"
)

func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeDocumentLoaded, a.handleDocumentLoaded)
	a.eventManager.Subscribe(event.TypeDocumentSaved, a.handleDocumentSaved)
	a.eventManager.Subscribe(event.TypeSaveFailed, a.handleSaveFailed)
	a.eventManager.Subscribe(event.TypeTriggerFired, a.handleTriggerFired)
}

func (a *App) handleDocumentLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentLoadedData); ok {
		if data.FromStorage {
			logger.Infof("App: restored %d block(s) from %s", data.Blocks, a.location)
		} else {
			logger.Infof("App: no stored document at %s, starting empty", a.location)
		}
	}
	return false
}

func (a *App) handleDocumentSaved(e event.Event) bool {
	a.statusBar.SetSaveFailed(false)
	return false
}

// handleSaveFailed keeps editing going and flags the status line until the
// next successful save.
func (a *App) handleSaveFailed(e event.Event) bool {
	a.statusBar.SetSaveFailed(true)
	if data, ok := e.Data.(event.SaveFailedData); ok {
		logger.Errorf("App: save to %s failed: %v", a.location, data.Err)
		a.statusBar.SetMessage(statusbar.KindError, "Save failed: %v", data.Err)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleTriggerFired(e event.Event) bool {
	if data, ok := e.Data.(event.TriggerFiredData); ok {
		logger.DebugTagf("trigger", "App: %q formatted block %s", data.Marker, data.BlockKey)
	}
	return false
}
