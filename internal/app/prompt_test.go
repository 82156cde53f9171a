// internal/app/prompt_test.go
package app

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mdnav/internal/event"
	"github.com/bethropolis/mdnav/internal/plugin"
	"github.com/bethropolis/mdnav/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

func newPromptApp() *App {
	return &App{
		statusBar:    statusbar.New(statusbar.DefaultConfig()),
		eventManager: event.NewManager(),
		commands:     make(map[string]plugin.CommandFunc),
	}
}

func promptKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestPromptExecutesRegisteredCommand(t *testing.T) {
	a := newPromptApp()
	var got []string
	require.NoError(t, a.RegisterCommand("mark", func(args []string) error {
		got = append(got, args...)
		return nil
	}))

	assert.True(t, a.handleKeyEvent(promptKey(':')))
	for _, r := range "mark a b" {
		assert.True(t, a.handleKeyEvent(promptKey(r)))
	}
	assert.True(t, a.handleKeyEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))

	assert.Equal(t, []string{"a", "b"}, got)
	active, buf := a.promptState()
	assert.False(t, active)
	assert.Empty(t, buf)
}

func TestPromptEscapeCancels(t *testing.T) {
	a := newPromptApp()
	a.handleKeyEvent(promptKey(':'))
	a.handleKeyEvent(promptKey('q'))
	a.handleKeyEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	active, buf := a.promptState()
	assert.False(t, active)
	assert.Empty(t, buf)
}

func TestPromptBackspaceTrimsRune(t *testing.T) {
	a := newPromptApp()
	a.handleKeyEvent(promptKey(':'))
	a.handleKeyEvent(promptKey('a'))
	a.handleKeyEvent(promptKey('é'))
	a.handleKeyEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))

	_, buf := a.promptState()
	assert.Equal(t, "a", buf)
}

func TestPromptStateConsistentDuringEdits(t *testing.T) {
	a := newPromptApp()
	require.True(t, a.handleKeyEvent(promptKey(':')))

	// One goroutine reads the prompt the way draw does while the event
	// loop side keeps typing.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if active, buf := a.promptState(); active {
				a.statusBar.SetTemporaryMessage(":%s", buf)
			}
		}
	}()
	for i := 0; i < 200; i++ {
		a.handleKeyEvent(promptKey('x'))
	}
	wg.Wait()

	active, buf := a.promptState()
	assert.True(t, active)
	assert.Equal(t, strings.Repeat("x", 200), buf)
}
