// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/mdnav/internal/clipboard"
	"github.com/bethropolis/mdnav/internal/config"
	"github.com/bethropolis/mdnav/internal/event"
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/speech"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from the command prompt) and returns an error.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the viewer
// core. This acts as a controlled interface, preventing plugins from
// accessing everything.
type EditorAPI interface {
	// --- Document Access ---
	ActiveControl() host.Control // The focused text control
	DocumentPath() string        // Path of the loaded document

	// --- Output ---
	Speaker() speech.Speaker
	SetStatusMessage(format string, args ...interface{}) // Show temporary messages

	// --- Clipboard ---
	Clipboard() *clipboard.Manager

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{}) bool
	SubscribeEvent(eventType event.Type, handler event.Handler) // Plugins can listen too

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error // Allow plugins to expose commands

	// --- Configuration ---
	NavigatorConfig() config.NavigatorConfig
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// It receives the EditorAPI to interact with the core.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the viewer is closing.
	// Used for cleanup tasks.
	Shutdown() error
}
