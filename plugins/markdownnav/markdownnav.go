// plugins/markdownnav/markdownnav.go
package markdownnav

import (
	"fmt"
	"strings"

	"github.com/bethropolis/mdnav/internal/config"
	"github.com/bethropolis/mdnav/internal/event"
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/navigator"
	"github.com/bethropolis/mdnav/internal/plugin" // Import the plugin interface definitions
)

// Ensure MarkdownNav implements plugin.Plugin
var _ plugin.Plugin = (*MarkdownNav)(nil)

// MarkdownNav adds structural Markdown navigation to the focused text
// control. While its browse mode is on, single letters jump between
// headings, lists, tables, links and the other Markdown constructs instead
// of reaching the document.
type MarkdownNav struct {
	api plugin.EditorAPI
	nav *navigator.Navigator
	cfg config.NavigatorConfig

	browseMode bool
}

// New creates a new instance of the MarkdownNav plugin.
func New() *MarkdownNav {
	return &MarkdownNav{}
}

// Name returns the unique name of the plugin.
func (p *MarkdownNav) Name() string {
	return "MarkdownNav"
}

// Initialize wires the plugin into the key event stream and registers its
// prompt commands.
func (p *MarkdownNav) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.cfg = api.NavigatorConfig()
	p.nav = navigator.New(api.ActiveControl(), api.Speaker())

	api.SubscribeEvent(event.TypeKeyPressed, p.handleKeyEvent)

	if err := api.RegisterCommand("browse", p.executeToggle); err != nil {
		return fmt.Errorf("failed to register 'browse' command: %w", err)
	}
	if err := api.RegisterCommand("copyline", p.executeCopyLine); err != nil {
		return fmt.Errorf("failed to register 'copyline' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this plugin).
func (p *MarkdownNav) Shutdown() error {
	return nil
}

// handleKeyEvent adapts the raw event bus payload for the binding table.
func (p *MarkdownNav) handleKeyEvent(e event.Event) bool {
	data, ok := e.Data.(event.KeyPressedData)
	if !ok || data.KeyEvent == nil {
		return false
	}
	return p.handleKey(data.KeyEvent)
}

// BrowseMode reports whether browse mode is currently on.
func (p *MarkdownNav) BrowseMode() bool {
	return p.browseMode
}

// toggleBrowseMode flips browse mode and reports the new state, by tone or
// by speech depending on configuration.
func (p *MarkdownNav) toggleBrowseMode() {
	p.browseMode = !p.browseMode
	p.api.DispatchEvent(event.TypeModeChanged, event.ModeChangedData{BrowseMode: p.browseMode})

	if p.cfg.AudioIndication {
		p.api.Speaker().Beep()
		return
	}
	if p.browseMode {
		p.api.Speaker().Message("Markdown Browse Mode On")
	} else {
		p.api.Speaker().Message("Markdown Browse Mode Off")
	}
}

// executeToggle is the ':browse' command.
func (p *MarkdownNav) executeToggle(args []string) error {
	p.toggleBrowseMode()
	return nil
}

// executeCopyLine is the ':copyline' command: it copies the caret line,
// without its trailing line break, to the clipboard.
func (p *MarkdownNav) executeCopyLine(args []string) error {
	r, err := p.api.ActiveControl().CaretRange()
	if err != nil {
		return fmt.Errorf("cannot read caret line: %w", err)
	}
	if err := r.Expand(host.UnitLine); err != nil {
		return fmt.Errorf("cannot read caret line: %w", err)
	}
	text := strings.TrimRight(r.Text(), "\r\n")
	if err := p.api.Clipboard().Copy(text); err != nil {
		return err
	}
	p.api.SetStatusMessage("Line copied")
	return nil
}
