// internal/app/input.go
package app

import (
	"strings"

	"github.com/bethropolis/mdnav/internal/event"
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// handleKeyEvent routes one key press. Plugins see the key first through
// the event bus; a consumed key never reaches the built-in bindings.
func (a *App) handleKeyEvent(ev *tcell.EventKey) bool {
	if active, _ := a.promptState(); active {
		return a.handlePromptKey(ev)
	}

	if a.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev}) {
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.signalQuit()
		return false
	case tcell.KeyUp:
		a.moveCaret(host.UnitLine, -1)
		return true
	case tcell.KeyDown:
		a.moveCaret(host.UnitLine, 1)
		return true
	case tcell.KeyLeft:
		a.moveCaret(host.UnitCharacter, -1)
		return true
	case tcell.KeyRight:
		a.moveCaret(host.UnitCharacter, 1)
		return true
	case tcell.KeyPgUp:
		a.moveCaret(host.UnitLine, -a.pageSize())
		return true
	case tcell.KeyPgDn:
		a.moveCaret(host.UnitLine, a.pageSize())
		return true
	case tcell.KeyHome:
		a.caretToLineEdge(host.EdgeStart)
		return true
	case tcell.KeyEnd:
		a.caretToLineEdge(host.EdgeEnd)
		return true
	case tcell.KeyRune:
		if ev.Rune() == ':' {
			a.promptMu.Lock()
			a.promptActive = true
			a.promptBuffer = ""
			a.promptMu.Unlock()
			return true
		}
	}
	return false
}

// handlePromptKey edits the ':' command prompt. The prompt fields are
// guarded because draw reads them from the main goroutine.
func (a *App) handlePromptKey(ev *tcell.EventKey) bool {
	a.promptMu.Lock()
	switch ev.Key() {
	case tcell.KeyEscape:
		a.promptActive = false
		a.promptBuffer = ""
		a.promptMu.Unlock()
		a.statusBar.ResetTemporaryMessage()
		return true
	case tcell.KeyEnter:
		input := a.promptBuffer
		a.promptActive = false
		a.promptBuffer = ""
		a.promptMu.Unlock()
		a.statusBar.ResetTemporaryMessage()
		a.executeCommand(input)
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.promptBuffer) > 0 {
			runes := []rune(a.promptBuffer)
			a.promptBuffer = string(runes[:len(runes)-1])
		}
	case tcell.KeyRune:
		a.promptBuffer += string(ev.Rune())
	}
	a.promptMu.Unlock()
	return true
}

// promptState returns a consistent view of the prompt for drawing.
func (a *App) promptState() (bool, string) {
	a.promptMu.Lock()
	defer a.promptMu.Unlock()
	return a.promptActive, a.promptBuffer
}

func (a *App) pageSize() int {
	_, height := a.tuiManager.Size()
	if height <= 1 {
		return 1
	}
	return height - 1
}

// moveCaret steps the host caret by delta units and announces the new
// position through the event bus.
func (a *App) moveCaret(unit host.Unit, delta int) {
	r, err := a.doc.CaretRange()
	if err != nil {
		logger.Debugf("App: caret range unavailable: %v", err)
		return
	}
	if _, err := r.Move(unit, delta); err != nil {
		logger.Debugf("App: caret move failed: %v", err)
		return
	}
	if err := r.PlaceCaret(); err != nil {
		return
	}
	a.eventManager.Dispatch(event.TypeCaretMoved, event.CaretMovedData{NewPosition: a.doc.CaretPosition()})
}

// caretToLineEdge puts the caret at the start or end of its line.
func (a *App) caretToLineEdge(edge host.Edge) {
	r, err := a.doc.CaretRange()
	if err != nil {
		return
	}
	if err := r.Expand(host.UnitLine); err != nil {
		return
	}
	text := r.Text()
	if err := r.Collapse(edge); err != nil {
		return
	}
	if edge == host.EdgeEnd && (strings.HasSuffix(text, "\n") || strings.HasSuffix(text, "\r")) {
		// Stay before the trailing line break.
		if _, err := r.Move(host.UnitCharacter, -1); err != nil {
			return
		}
	}
	if err := r.PlaceCaret(); err != nil {
		return
	}
	a.eventManager.Dispatch(event.TypeCaretMoved, event.CaretMovedData{NewPosition: a.doc.CaretPosition()})
}

// signalQuit closes the quit channel exactly once.
func (a *App) signalQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}
