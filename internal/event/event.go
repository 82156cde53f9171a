// internal/event/event.go
package event

import (
	"github.com/bethropolis/mdnav/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document / session events
	TypeDocumentLoaded // Fired after a document is loaded into the host
	TypeCaretMoved     // Fired when the caret position changes
	TypeModeChanged    // Fired when browse mode is toggled for a document

	// Input events
	TypeKeyPressed // Raw key press, dispatched before default handling

	// Output events
	TypeAnnouncement // Speech or informational message emitted by navigation

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocumentLoadedData contains info about the loaded document.
type DocumentLoadedData struct {
	FilePath string
}

// CaretMovedData contains the new caret position.
type CaretMovedData struct {
	NewPosition types.Position
}

// ModeChangedData reports the new browse mode state.
type ModeChangedData struct {
	BrowseMode bool
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AnnouncementData carries text that was spoken or shown to the user.
type AnnouncementData struct {
	Text string
	// Informational is true for "not found" style messages, false for
	// content spoken at a navigation destination.
	Informational bool
}

// AppReadyData is the payload for TypeAppReady.
type AppReadyData struct{}

// AppQuitData is the payload for TypeAppQuit.
type AppQuitData struct{}
