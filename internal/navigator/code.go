// internal/navigator/code.go
package navigator

import (
	"strings"

	"github.com/bethropolis/mdnav/internal/document"
	"github.com/bethropolis/mdnav/internal/pattern"
	"github.com/bethropolis/mdnav/internal/types"
)

// openingFence reports whether a fence line opens a block. A bare ``` run
// closes one; anything longer than three non-space characters carries an
// info string and opens one.
func openingFence(line string) bool {
	return len(strings.TrimSpace(line)) > 3
}

// NavigateCode finds the next or previous code construct: fenced block
// boundaries and inline code spans share one command. Starting on a fence
// line changes the rules: moving forward skips the whole block to its far
// fence, and moving backward from a closing fence skips its own block's
// content on the way up.
func (n *Navigator) NavigateCode(req Request) bool {
	snap, err := document.Open(n.ctrl)
	if err != nil {
		logFallback("snapshot", err)
		return n.legacyNavigateCode(req)
	}
	if err := n.navigateCodeFast(snap, req); err != nil {
		logFallback("fast code navigation", err)
		return n.legacyNavigateCode(req)
	}
	return true
}

func (n *Navigator) navigateCodeFast(snap *document.Snapshot, req Request) error {
	dir := req.Direction.Delta()
	current := snap.CurrentText()

	skipInline := false
	if pattern.CodeFence.Matches(current) {
		if dir > 0 {
			skipInline = true
		} else {
			skipInline = !openingFence(current)
		}
	} else if loc := pickMatch(pattern.InlineCode.FindAll(current), snap.CaretColumn(), dir); loc != nil {
		return n.moveToMatch(snap, snap.Line(), current, loc)
	}

	for snap.Step(dir) != 0 {
		text := snap.CurrentText()
		if pattern.CodeFence.Matches(text) {
			if dir < 0 && !openingFence(text) {
				// Closing fence of an earlier block: land on its opening
				// fence when one exists above.
				for scan := snap.Line() - 1; scan >= 0; scan-- {
					above := snap.LineText(scan)
					if pattern.CodeFence.Matches(above) && openingFence(above) {
						return n.speakLine(snap, scan)
					}
				}
			}
			return n.speakLine(snap, snap.Line())
		}
		if !skipInline {
			if loc := edgeMatch(pattern.InlineCode.FindAll(text), dir); loc != nil {
				return n.moveToMatch(snap, snap.Line(), text, loc)
			}
		}
	}
	n.out.Message(req.notFoundMessage())
	return nil
}

// CodeRequest builds the request for the code navigation command.
func CodeRequest(dir types.Direction) Request {
	return Request{Pattern: pattern.CodeFence, Direction: dir, Name: "code block or inline code"}
}
