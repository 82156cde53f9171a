// internal/navigator/block.go
package navigator

import (
	"github.com/bethropolis/mdnav/internal/document"
	"github.com/bethropolis/mdnav/internal/logger"
	"github.com/bethropolis/mdnav/internal/pattern"
	"github.com/bethropolis/mdnav/internal/types"
)

// blockEdgeKinds are the multi-line constructs the block-edge commands
// recognize, checked in this order against the caret line.
var blockEdgeKinds = []*pattern.Pattern{pattern.ListItem, pattern.Table, pattern.Blockquote}

// NavigateBlock jumps between whole blocks of matching lines rather than
// individual lines: a run of contiguous matching lines counts once, and a
// backward jump from inside a block first climbs to that block's top line.
func (n *Navigator) NavigateBlock(req Request) bool {
	snap, err := document.Open(n.ctrl)
	if err != nil {
		logFallback("snapshot", err)
		return n.legacyNavigateBlock(req)
	}
	if err := n.navigateBlockFast(snap, req); err != nil {
		logFallback("fast block navigation", err)
		return n.legacyNavigateBlock(req)
	}
	return true
}

func (n *Navigator) navigateBlockFast(snap *document.Snapshot, req Request) error {
	dir := req.Direction.Delta()
	inBlock := req.Pattern.Matches(snap.CurrentText())

	// Backward from inside a block with more block above: the target is
	// this block's own top line, not the previous block.
	if dir < 0 && inBlock {
		if prev := snap.Line() - 1; prev >= 0 && req.Pattern.Matches(snap.LineText(prev)) {
			return n.speakLine(snap, blockTop(snap, req.Pattern, snap.Line()))
		}
	}

	for snap.Step(dir) != 0 {
		match := req.Pattern.Matches(snap.CurrentText())
		if inBlock {
			if !match {
				inBlock = false
			}
			continue
		}
		if match {
			target := snap.Line()
			if dir < 0 {
				target = blockTop(snap, req.Pattern, target)
			}
			return n.speakLine(snap, target)
		}
	}
	n.out.Message(req.notFoundMessage())
	return nil
}

// blockTop walks upward from line i to the first line of its contiguous
// block of p-matching lines.
func blockTop(snap *document.Snapshot, p *pattern.Pattern, i int) int {
	for i > 0 && p.Matches(snap.LineText(i-1)) {
		i--
	}
	return i
}

// MoveToBlockEdge jumps to the first (Backward) or last (Forward) line of
// the list, table or blockquote under the caret. Reports false when the
// control could not be read, so the gesture can pass through.
func (n *Navigator) MoveToBlockEdge(dir types.Direction) bool {
	snap, err := document.Open(n.ctrl)
	if err != nil {
		logger.Errorf("Navigator: snapshot failed for block edge move: %v", err)
		return false
	}
	var active *pattern.Pattern
	for _, p := range blockEdgeKinds {
		if p.Matches(snap.CurrentText()) {
			active = p
			break
		}
	}
	if active == nil {
		n.out.Message(MsgNotInBlock)
		return true
	}
	last := snap.Line()
	for snap.Step(dir.Delta()) != 0 {
		if !active.Matches(snap.CurrentText()) {
			break
		}
		last = snap.Line()
	}
	if err := n.speakLine(snap, last); err != nil {
		logger.Errorf("Navigator: block edge move failed: %v", err)
		return false
	}
	return true
}
