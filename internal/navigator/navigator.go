// internal/navigator/navigator.go
package navigator

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/mdnav/internal/document"
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/logger"
	"github.com/bethropolis/mdnav/internal/pattern"
	"github.com/bethropolis/mdnav/internal/speech"
	"github.com/bethropolis/mdnav/internal/types"
)

// Announcements for commands that hit a structural boundary instead of a
// match.
const (
	MsgNotInTable  = "Not inside a table"
	MsgTableEdge   = "Edge of table"
	MsgNotInBlock  = "Not inside a list, table, or blockquote"
	notFoundFormat = "no %s %s found"
)

// Navigator moves the caret of a single host control between Markdown
// constructs. Every command takes one snapshot of the control's text and
// walks it in memory, touching the host again only to land the caret. When
// the snapshot cannot be built, or a fast path dies on a host error,
// commands retry with line-by-line host movement.
type Navigator struct {
	ctrl host.Control
	out  speech.Speaker
}

// New returns a Navigator over the given control, announcing through out.
func New(ctrl host.Control, out speech.Speaker) *Navigator {
	return &Navigator{ctrl: ctrl, out: out}
}

// Request describes one line-oriented navigation command.
type Request struct {
	// Pattern decides whether a line (or a span within it) counts as the
	// wanted construct.
	Pattern *pattern.Pattern

	// Direction of the search relative to the caret line.
	Direction types.Direction

	// Name of the construct for the not-found announcement, e.g. "heading".
	Name string

	// Focus moves the caret onto the match within the line instead of the
	// line start. Inline constructs (links, bold, inline code) use this;
	// the current line is searched first, relative to the caret column.
	Focus bool

	// NotFound overrides the default boundary announcement when non-empty.
	NotFound string
}

func (r Request) notFoundMessage() string {
	if r.NotFound != "" {
		return r.NotFound
	}
	return fmt.Sprintf(notFoundFormat, r.Direction, r.Name)
}

// Navigate runs one line-oriented search. Reports false only when the
// control gave out no caret at all, so the caller can hand the gesture back
// to the host.
func (n *Navigator) Navigate(req Request) bool {
	snap, err := document.Open(n.ctrl)
	if err != nil {
		logFallback("snapshot", err)
		return n.legacyNavigate(req)
	}
	if err := n.navigateFast(snap, req); err != nil {
		logFallback("fast navigation", err)
		return n.legacyNavigate(req)
	}
	return true
}

// logFallback records why a command is degrading to the scanning path.
// Known host failures are routine; anything else is logged loudly.
func logFallback(what string, err error) {
	if host.IsRecoverable(err) {
		logger.Warnf("Navigator: %s failed (%v), using legacy scan", what, err)
		return
	}
	logger.Errorf("Navigator: %s failed unexpectedly (%v), using legacy scan", what, err)
}

func (n *Navigator) navigateFast(snap *document.Snapshot, req Request) error {
	dir := req.Direction.Delta()

	if req.Focus {
		line := snap.CurrentText()
		if loc := pickMatch(req.Pattern.FindAll(line), snap.CaretColumn(), dir); loc != nil {
			return n.moveToMatch(snap, snap.Line(), line, loc)
		}
		for snap.Step(dir) != 0 {
			text := snap.CurrentText()
			if loc := edgeMatch(req.Pattern.FindAll(text), dir); loc != nil {
				return n.moveToMatch(snap, snap.Line(), text, loc)
			}
		}
		n.out.Message(req.notFoundMessage())
		return nil
	}

	for snap.Step(dir) != 0 {
		if req.Pattern.Matches(snap.CurrentText()) {
			return n.speakLine(snap, snap.Line())
		}
	}
	n.out.Message(req.notFoundMessage())
	return nil
}

// speakLine lands the caret on line i and announces its text.
func (n *Navigator) speakLine(snap *document.Snapshot, i int) error {
	lineRange, err := snap.PlaceCaret(i)
	if err != nil {
		return err
	}
	n.out.Speak(trimEOL(lineRange.Text()))
	return nil
}

// moveToMatch lands the caret on the match span loc within line i. Web
// controls with a flat text object get the target injected as UTF-16
// offsets; everything else steps the collapsed line start forward by
// characters.
func (n *Navigator) moveToMatch(snap *document.Snapshot, i int, lineText string, loc []int) error {
	lineRange, err := snap.Resolve(i)
	if err != nil {
		return err
	}
	matchText := lineText[loc[0]:loc[1]]
	if flat, ok := lineRange.(host.FlatRange); ok && document.IsWebApp(n.ctrl.AppName()) {
		start, _ := flat.Offsets()
		delta := document.UTF16Length(lineText[:loc[0]])
		flat.SetOffsets(start+delta, start+delta+document.UTF16Length(matchText))
		if err := flat.PlaceCaret(); err != nil {
			return err
		}
		n.out.Speak(matchText)
		return nil
	}
	if err := placeAtColumn(lineRange, lineText[:loc[0]]); err != nil {
		return err
	}
	n.out.Speak(matchText)
	return nil
}

// placeAtColumn collapses r to its line start, steps over the prefix
// character by character and lands the caret there. Character moves cover
// one grapheme cluster each, so the prefix is measured in clusters.
func placeAtColumn(r host.Range, prefix string) error {
	if err := r.Collapse(host.EdgeStart); err != nil {
		return err
	}
	if chars := uniseg.GraphemeClusterCount(prefix); chars > 0 {
		if _, err := r.Move(host.UnitCharacter, chars); err != nil {
			return err
		}
	}
	return r.PlaceCaret()
}

// pickMatch returns the first match strictly after col (forward) or the
// last match strictly before it (backward).
func pickMatch(matches [][]int, col, dir int) []int {
	if dir > 0 {
		for _, m := range matches {
			if m[0] > col {
				return m
			}
		}
		return nil
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i][0] < col {
			return matches[i]
		}
	}
	return nil
}

// edgeMatch returns the first match when scanning forward, the last when
// scanning backward.
func edgeMatch(matches [][]int, dir int) []int {
	if len(matches) == 0 {
		return nil
	}
	if dir > 0 {
		return matches[0]
	}
	return matches[len(matches)-1]
}

func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}
