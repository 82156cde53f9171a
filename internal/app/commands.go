// internal/app/commands.go
package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bethropolis/mdnav/internal/event"
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/plugin"
)

// RegisterCommand adds a named command to the ':' prompt.
func (a *App) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	a.commandsMu.Lock()
	defer a.commandsMu.Unlock()
	if name == "" {
		return fmt.Errorf("command registration failed: name cannot be empty")
	}
	if _, exists := a.commands[name]; exists {
		return fmt.Errorf("command registration failed: command '%s' already registered", name)
	}
	a.commands[name] = cmdFunc
	return nil
}

// executeCommand parses a prompt line and runs the named command.
func (a *App) executeCommand(input string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]

	a.commandsMu.RLock()
	cmd, ok := a.commands[name]
	a.commandsMu.RUnlock()
	if !ok {
		a.SetStatusMessage("Unknown command: %s", name)
		return
	}
	if err := cmd(args); err != nil {
		a.SetStatusMessage("Error: %v", err)
	}
}

// registerBuiltinCommands installs the viewer's own prompt commands.
func (a *App) registerBuiltinCommands() {
	builtins := map[string]plugin.CommandFunc{
		"q":    func([]string) error { a.signalQuit(); return nil },
		"quit": func([]string) error { a.signalQuit(); return nil },
		"line": a.cmdGoToLine,
		"help": a.cmdHelp,
	}
	for name, fn := range builtins {
		if err := a.RegisterCommand(name, fn); err != nil {
			a.SetStatusMessage("%v", err)
		}
	}
}

// cmdGoToLine jumps the caret to a 1-based line number.
func (a *App) cmdGoToLine(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: line <number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid line number: %s", args[0])
	}
	if n > a.doc.LineCount() {
		n = a.doc.LineCount()
	}
	r, err := a.doc.CaretRange()
	if err != nil {
		return err
	}
	if err := r.Expand(host.UnitLine); err != nil {
		return err
	}
	if err := r.Collapse(host.EdgeStart); err != nil {
		return err
	}
	if _, err := r.Move(host.UnitLine, n-1-a.doc.CaretPosition().Line); err != nil {
		return err
	}
	if err := r.PlaceCaret(); err != nil {
		return err
	}
	a.eventManager.Dispatch(event.TypeCaretMoved, event.CaretMovedData{NewPosition: a.doc.CaretPosition()})
	return nil
}

// cmdHelp lists the registered prompt commands.
func (a *App) cmdHelp([]string) error {
	a.commandsMu.RLock()
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	a.commandsMu.RUnlock()
	sort.Strings(names)
	a.SetStatusMessage("Commands: %s", strings.Join(names, ", "))
	return nil
}
