// plugins/markdownnav/bindings.go
package markdownnav

import (
	"fmt"
	"unicode"

	"github.com/bethropolis/mdnav/internal/navigator"
	"github.com/bethropolis/mdnav/internal/pattern"
	"github.com/bethropolis/mdnav/internal/types"
	"github.com/gdamore/tcell/v2"
)

// lineCommand describes one letter-bound navigation command. Lowercase
// moves forward, uppercase backward.
type lineCommand struct {
	pat   *pattern.Pattern
	name  string
	next  string // not-found message moving forward
	prev  string // not-found message moving backward
	focus bool   // caret lands on the match inside the line
	block bool   // contiguous runs of matching lines count once
}

var lineCommands = map[rune]lineCommand{
	'h': {pat: pattern.Heading, name: "heading", next: "no next heading", prev: "no previous heading"},
	'i': {pat: pattern.ListItem, name: "list item", next: "no next list item", prev: "no previous list item"},
	's': {pat: pattern.Separator, name: "separator", next: "no next separator", prev: "no previous separator"},
	'x': {pat: pattern.Checkbox, name: "checkbox", next: "no next check box", prev: "no previous check box"},

	'k': {pat: pattern.Link, name: "link", next: "no next link", prev: "no previous link", focus: true},
	'g': {pat: pattern.Image, name: "image", next: "no next graphic", prev: "no previous graphic", focus: true},
	'm': {pat: pattern.Math, name: "math formula", next: "no next math formula", prev: "no previous math formula", focus: true},
	'b': {pat: pattern.Bold, name: "bold", next: "no next bold", prev: "no previous bold", focus: true},
	'e': {pat: pattern.Italic, name: "italic", next: "no next italic", prev: "no previous italic", focus: true},
	'd': {pat: pattern.Strikethrough, name: "strikethrough", next: "no next strikethrough", prev: "no previous strikethrough", focus: true},
	'f': {pat: pattern.Footnote, name: "footnote", next: "no next footnote", prev: "no previous footnote", focus: true},

	'l': {pat: pattern.ListItem, name: "list", next: "no next list", prev: "no previous list", block: true},
	'q': {pat: pattern.Blockquote, name: "blockquote", next: "no next block quote", prev: "no previous block quote", block: true},
	't': {pat: pattern.Table, name: "table", next: "no next table", prev: "no previous table", block: true},
}

// shiftedDigits maps US keyboard shift+digit characters back to their digit.
var shiftedDigits = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5', '^': '6',
}

// handleKey routes one key press. It reports true when the key was
// consumed; an unconsumed key falls through to the host's own handling.
func (p *MarkdownNav) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyF2 {
		p.toggleBrowseMode()
		return true
	}

	mods := ev.Modifiers()

	// Table cell movement, bound with ctrl+alt so it cannot collide with
	// the letter commands.
	if mods&tcell.ModCtrl != 0 && mods&tcell.ModAlt != 0 {
		if !p.browseMode {
			return false
		}
		switch ev.Key() {
		case tcell.KeyLeft:
			return p.nav.NavigateTable(0, -1)
		case tcell.KeyRight:
			return p.nav.NavigateTable(0, 1)
		case tcell.KeyUp:
			return p.nav.NavigateTable(-1, 0)
		case tcell.KeyDown:
			return p.nav.NavigateTable(1, 0)
		}
		return false
	}

	if ev.Key() != tcell.KeyRune || mods&(tcell.ModCtrl|tcell.ModAlt) != 0 {
		return false
	}
	if !p.browseMode {
		return false
	}

	r := ev.Rune()
	dir := types.Forward
	switch {
	case r == '<':
		r, dir = ',', types.Backward
	case unicode.IsUpper(r):
		r, dir = unicode.ToLower(r), types.Backward
	default:
		if digit, ok := shiftedDigits[r]; ok {
			r, dir = digit, types.Backward
		}
	}

	if r == ',' {
		// Comma jumps to the far edge of the block under the caret.
		return p.nav.MoveToBlockEdge(dir)
	}

	if handled, matched := p.runCommand(r, dir); matched {
		return handled
	}

	// Unbound printable key while browse mode is on: swallow it so stray
	// letters never reach the document.
	if p.cfg.TrapNonCommandGestures {
		p.api.Speaker().Beep()
		return true
	}
	return false
}

// runCommand executes the command bound to r, if any. The second result
// reports whether a binding existed.
func (p *MarkdownNav) runCommand(r rune, dir types.Direction) (handled, matched bool) {
	if cmd, ok := lineCommands[r]; ok {
		req := navigator.Request{
			Pattern:   cmd.pat,
			Direction: dir,
			Name:      cmd.name,
			Focus:     cmd.focus,
			NotFound:  cmd.next,
		}
		if dir == types.Backward {
			req.NotFound = cmd.prev
		}
		if cmd.block {
			return p.nav.NavigateBlock(req), true
		}
		return p.nav.Navigate(req), true
	}

	if r >= '1' && r <= '6' {
		level := int(r - '0')
		req := navigator.Request{
			Pattern:   pattern.HeadingLevel(level),
			Direction: dir,
			Name:      fmt.Sprintf("level %d heading", level),
			NotFound:  fmt.Sprintf("No next heading at level %d", level),
		}
		if dir == types.Backward {
			req.NotFound = fmt.Sprintf("No previous heading at level %d", level)
		}
		return p.nav.Navigate(req), true
	}

	if r == 'c' {
		req := navigator.CodeRequest(dir)
		req.NotFound = "no next code"
		if dir == types.Backward {
			req.NotFound = "no previous code"
		}
		return p.nav.NavigateCode(req), true
	}

	return false, false
}
