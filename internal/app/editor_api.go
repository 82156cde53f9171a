// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/mdnav/internal/clipboard"
	"github.com/bethropolis/mdnav/internal/config"
	"github.com/bethropolis/mdnav/internal/event"
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/plugin"
	"github.com/bethropolis/mdnav/internal/speech"
)

// editorAPI adapts App to the plugin.EditorAPI interface, keeping plugins
// away from App internals.
type editorAPI struct {
	app *App
}

var _ plugin.EditorAPI = (*editorAPI)(nil)

func newEditorAPI(a *App) *editorAPI {
	return &editorAPI{app: a}
}

// --- Document Access ---

func (api *editorAPI) ActiveControl() host.Control {
	return api.app.doc
}

func (api *editorAPI) DocumentPath() string {
	return api.app.filePath
}

// --- Output ---

func (api *editorAPI) Speaker() speech.Speaker {
	return api.app.speaker
}

func (api *editorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

// --- Clipboard ---

func (api *editorAPI) Clipboard() *clipboard.Manager {
	return api.app.clipboardMgr
}

// --- Event Bus Interaction ---

func (api *editorAPI) DispatchEvent(eventType event.Type, data interface{}) bool {
	return api.app.eventManager.Dispatch(eventType, data)
}

func (api *editorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *editorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.RegisterCommand(name, cmdFunc)
}

// --- Configuration ---

func (api *editorAPI) NavigatorConfig() config.NavigatorConfig {
	return api.app.cfg.Navigator
}
