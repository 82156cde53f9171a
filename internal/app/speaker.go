// internal/app/speaker.go
package app

import (
	"github.com/bethropolis/mdnav/internal/event"
)

// statusSpeaker renders speech as status bar text. Spoken content and
// informational messages also go out on the event bus so plugins and tests
// can observe them.
type statusSpeaker struct {
	app *App
}

func newStatusSpeaker(a *App) *statusSpeaker {
	return &statusSpeaker{app: a}
}

// Speak announces content at a navigation destination.
func (s *statusSpeaker) Speak(text string) {
	s.app.SetStatusMessage("%s", text)
	s.app.eventManager.Dispatch(event.TypeAnnouncement, event.AnnouncementData{Text: text})
}

// Message announces an informational message, e.g. a boundary hit.
func (s *statusSpeaker) Message(text string) {
	s.app.SetStatusMessage("%s", text)
	s.app.eventManager.Dispatch(event.TypeAnnouncement, event.AnnouncementData{Text: text, Informational: true})
}

// Beep sounds the terminal bell.
func (s *statusSpeaker) Beep() {
	s.app.tuiManager.Beep()
}
