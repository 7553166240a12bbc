// Package app wires storage, the document store, the editor and the terminal
// UI together and runs the main loop.
package app

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/modehandler"
	"github.com/bethropolis/tidemark/internal/persist"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/bethropolis/tidemark/internal/storage"
	"github.com/bethropolis/tidemark/internal/store"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	tuiManager   *tui.TUI
	kv           storage.KV
	store        *store.Store
	editor       *core.Editor
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	modeHandler  *modehandler.ModeHandler
	themeManager *theme.Manager
	location     string // backend:key, shown in the status bar

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates an application on the real terminal.
func NewApp(cfg *config.Config) (*App, error) {
	return NewAppWithScreen(cfg, nil)
}

// NewAppWithScreen creates an application drawing to screen; nil means the
// real terminal.
func NewAppWithScreen(cfg *config.Config, screen tcell.Screen) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	// --- Storage ---
	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("storage initialization failed: %w", err)
	}
	adapter := persist.NewAdapter(kv, cfg.Storage.Key)

	// --- Themes ---
	themeManager := newThemeManager(cfg.Editor)

	// --- TUI ---
	var tuiManager *tui.TUI
	if screen != nil {
		tuiManager, err = tui.NewWithScreen(screen, themeManager.Current())
	} else {
		tuiManager, err = tui.New(themeManager.Current())
	}
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	a := &App{
		tuiManager:    tuiManager,
		kv:            kv,
		statusBar:     statusbar.New(statusbar.Config{MessageTimeout: config.MessageTimeout}),
		eventManager:  event.NewManager(),
		themeManager:  themeManager,
		location:      fmt.Sprintf("%s:%s", cfg.Storage.Backend, adapter.Key()),
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	// Subscribe before the store loads so DocumentLoaded is seen.
	a.subscribe()

	a.store = store.New(adapter, store.WithEvents(a.eventManager))
	a.editor = core.NewEditor(a.store, core.Config{
		HistorySize:     cfg.Editor.HistorySize,
		ScrollOff:       cfg.Editor.ScrollOff,
		SystemClipboard: cfg.Editor.SystemClipboard,
	})
	a.editor.SetEventManager(a.eventManager)

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         a.editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   a.eventManager,
		StatusBar:      a.statusBar,
		QuitSignal:     a.quit,
	})

	_, height := tuiManager.Size()
	a.editor.SetViewSize(height - tui.StatusBarHeight)
	logger.Infof("App: editing %s", a.location)
	return a, nil
}

// newThemeManager registers the themes directory, then activates the named
// theme and finally the theme file, each over the previous choice.
func newThemeManager(cfg config.EditorConfig) *theme.Manager {
	themeManager := theme.NewManager()
	if cfg.ThemesDir != "" {
		if err := themeManager.LoadThemesFromDir(cfg.ThemesDir); err != nil {
			logger.Warnf("App: %v", err)
		}
	}
	if cfg.Theme != "" {
		if err := themeManager.SetTheme(cfg.Theme); err != nil {
			logger.Warnf("App: %v, available: %v", err, themeManager.ListThemes())
		}
	}
	if cfg.ThemeFile != "" {
		if err := themeManager.LoadFile(cfg.ThemeFile); err != nil {
			logger.Warnf("App: theme file '%s' not loaded, using built-in theme: %v", cfg.ThemeFile, err)
		}
	}
	return themeManager
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.close()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Tidemark - # * ** *** then Space to format | Ctrl+S Save | ESC Quit")
	a.requestRedraw()

	// --- Main Drawing Loop ---
	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop handles TUI events, delegating key events to ModeHandler.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true
		case *tcell.EventKey:
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

func (a *App) close() {
	a.tuiManager.Close()
	if err := a.kv.Close(); err != nil {
		logger.Warnf("App: closing storage: %v", err)
	}
}

// Editor exposes the editor, mainly for tests.
func (a *App) Editor() *core.Editor { return a.editor }
