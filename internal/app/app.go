// internal/app/app.go
package app

import (
	"fmt"
	"os"
	"sync"

	"github.com/bethropolis/mdnav/internal/clipboard"
	"github.com/bethropolis/mdnav/internal/config"
	"github.com/bethropolis/mdnav/internal/document"
	"github.com/bethropolis/mdnav/internal/event"
	"github.com/bethropolis/mdnav/internal/host/textctl"
	"github.com/bethropolis/mdnav/internal/logger"
	"github.com/bethropolis/mdnav/internal/plugin"
	"github.com/bethropolis/mdnav/internal/speech"
	"github.com/bethropolis/mdnav/internal/statusbar"
	"github.com/bethropolis/mdnav/internal/tui"
	"github.com/bethropolis/mdnav/plugins/docstats"
	"github.com/bethropolis/mdnav/plugins/markdownnav"
	"github.com/gdamore/tcell/v2"
)

// App is the terminal document viewer hosting the navigation plugin. The
// document is read-only; all editing keys are ignored, navigation commands
// come from plugins through the event bus.
type App struct {
	tuiManager    *tui.TUI
	doc           *textctl.Document
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	clipboardMgr  *clipboard.Manager
	speaker       speech.Speaker
	editorAPI     plugin.EditorAPI
	cfg           *config.Config
	filePath      string

	// Viewport scroll position
	viewY, viewX int

	// Command prompt state, shared between the event loop and draw
	promptMu     sync.Mutex
	promptActive bool
	promptBuffer string

	// Registered prompt commands
	commandsMu sync.RWMutex
	commands   map[string]plugin.CommandFunc

	// Channels managed by the App
	quitOnce      sync.Once
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	// --- Create Core Components ---
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		tuiManager.Close()
		return nil, fmt.Errorf("failed to read '%s': %w", filePath, err)
	}

	doc := textctl.New(string(content), textctl.Config{
		Kind:     textctl.KindLinear,
		AppName:  config.AppName,
		Encoding: textctl.EncodingUTF8,
	})

	document.SetWebApps(cfg.Navigator.WebApps)

	statusBar := statusbar.New(statusbar.DefaultConfig())
	eventManager := event.NewManager()
	pluginManager := plugin.NewManager()
	clipboardMgr := clipboard.NewManager(cfg.Navigator.SystemClipboard)

	appInstance := &App{
		tuiManager:    tuiManager,
		doc:           doc,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: pluginManager,
		clipboardMgr:  clipboardMgr,
		cfg:           cfg,
		filePath:      filePath,
		commands:      make(map[string]plugin.CommandFunc),
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}
	appInstance.speaker = newStatusSpeaker(appInstance)

	// --- Create Editor API adapter ---
	appInstance.editorAPI = newEditorAPI(appInstance)

	// --- Register Built-in Plugins ---
	if err := pluginManager.Register(markdownnav.New()); err != nil {
		logger.Errorf("Failed to register markdownnav plugin: %v", err)
	}
	if err := pluginManager.Register(docstats.New()); err != nil {
		logger.Errorf("Failed to register docstats plugin: %v", err)
	}

	// --- Subscribe Core Components (App level wiring) ---
	eventManager.Subscribe(event.TypeCaretMoved, appInstance.handleCaretMoved)
	eventManager.Subscribe(event.TypeModeChanged, appInstance.handleModeChanged)

	// --- Initialize Plugins (triggers RegisterCommand via API) ---
	pluginManager.InitializePlugins(appInstance.editorAPI)

	appInstance.registerBuiltinCommands()

	return appInstance, nil
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop() // Start event loop

	// Initial setup
	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.eventManager.Dispatch(event.TypeDocumentLoaded, event.DocumentLoadedData{FilePath: a.filePath})
	a.statusBar.SetFileInfo(a.filePath)
	a.statusBar.SetTemporaryMessage("mdnav - F2 browse mode | ESC quit")
	a.requestRedraw()

	// --- Main Drawing Loop ---
	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop handles TUI events, delegating key events to handleKeyEvent.
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
			needsRedraw = a.handleKeyEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// --- Drawing ---

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.scrollToCaret()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.statusBar.SetCursorInfo(a.doc.CaretPosition())
	if active, buf := a.promptState(); active {
		a.statusBar.SetTemporaryMessage(":%s", buf)
	}

	a.tuiManager.Clear()
	tui.DrawDocument(a.tuiManager, a.doc, a.viewY, a.viewX)
	a.statusBar.Draw(screen, width, height)
	tui.DrawCursor(a.tuiManager, a.doc, a.viewY, a.viewX)
	a.tuiManager.Show()
}

// scrollToCaret adjusts the viewport so the caret line is visible.
func (a *App) scrollToCaret() {
	_, height := a.tuiManager.Size()
	viewHeight := height - config.StatusBarHeight
	if viewHeight <= 0 {
		return
	}
	line := a.doc.CaretPosition().Line
	if line < a.viewY {
		a.viewY = line
	} else if line >= a.viewY+viewHeight {
		a.viewY = line - viewHeight + 1
	}
}

// --- Event Handlers (App reacts to events) ---

func (a *App) handleCaretMoved(e event.Event) bool {
	if data, ok := e.Data.(event.CaretMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleModeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ModeChangedData); ok {
		a.statusBar.SetBrowseMode(data.BrowseMode)
	}
	a.requestRedraw()
	return false
}

// SetStatusMessage updates the status bar's temporary message.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
