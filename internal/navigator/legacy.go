// internal/navigator/legacy.go
//
// Line-by-line scanning fallbacks. These run when a snapshot cannot be
// built or a fast path dies on a host error: every step is a host call, so
// they are slow, but they work against controls with no usable offset
// model. Dropping fallback support later means deleting this file and the
// legacy* calls in the command entry points.
package navigator

import (
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/logger"
	"github.com/bethropolis/mdnav/internal/pattern"
)

// StepLine moves r to the next or previous line and reports whether it
// physically moved. Plain line movement is tried first; some rich text
// controls report a successful line move without changing position, so the
// result is verified against the starting point and a ghost move retried
// with a one character step over the line edge.
func StepLine(r host.Range, dir int) bool {
	original := r.Clone()

	res, err := r.Move(host.UnitLine, dir)
	if err != nil {
		// Boundary or host failure, character stepping would fare no better.
		return false
	}
	if res == 0 {
		return false
	}
	if err := r.Expand(host.UnitLine); err != nil {
		return false
	}
	if dir > 0 && r.Compare(host.EdgeStart, original, host.EdgeStart) > 0 {
		return true
	}
	if dir < 0 && r.Compare(host.EdgeStart, original, host.EdgeStart) < 0 {
		return true
	}

	// Ghost move: the control claimed success but the position is
	// unchanged. Reset and step a single character over the line edge.
	r.SetEdge(host.EdgeStart, original, host.EdgeStart)
	r.SetEdge(host.EdgeEnd, original, host.EdgeEnd)

	var anchor host.Range
	if dir > 0 {
		if err := r.Collapse(host.EdgeEnd); err != nil {
			return false
		}
		anchor = r.Clone()
		if m, err := r.Move(host.UnitCharacter, 1); err != nil || m == 0 {
			return false
		}
	} else {
		if err := r.Collapse(host.EdgeStart); err != nil {
			return false
		}
		if m, err := r.Move(host.UnitCharacter, -1); err != nil || m == 0 {
			return false
		}
	}
	if err := r.Expand(host.UnitLine); err != nil {
		return false
	}

	if dir > 0 {
		if r.Compare(host.EdgeStart, original, host.EdgeStart) <= 0 {
			return false
		}
		if r.Compare(host.EdgeStart, anchor, host.EdgeStart) < 0 {
			return false
		}
		return true
	}
	return r.Compare(host.EdgeStart, original, host.EdgeStart) < 0
}

// caretLine returns the collapsed caret and its expanded line range.
func (n *Navigator) caretLine() (caret, line host.Range, err error) {
	caret, err = n.ctrl.CaretRange()
	if err != nil {
		logger.Debugf("Navigator: could not get caret range: %v", err)
		return nil, nil, err
	}
	if err := caret.Collapse(host.EdgeStart); err != nil {
		return nil, nil, err
	}
	line = caret.Clone()
	if err := line.Expand(host.UnitLine); err != nil {
		return nil, nil, err
	}
	return caret, line, nil
}

// caretColumnIn returns the caret's byte offset within its line.
func caretColumnIn(caret, line host.Range) int {
	start := line.Clone()
	if err := start.Collapse(host.EdgeStart); err != nil {
		return 0
	}
	start.SetEdge(host.EdgeEnd, caret, host.EdgeEnd)
	return len(start.Text())
}

// announceLine lands the caret at r's line start and speaks the line.
func (n *Navigator) announceLine(r host.Range) {
	if err := r.Collapse(host.EdgeStart); err != nil {
		logger.Debugf("Navigator: legacy announce failed: %v", err)
		return
	}
	if err := r.PlaceCaret(); err != nil {
		logger.Debugf("Navigator: legacy announce failed: %v", err)
		return
	}
	if err := r.Expand(host.UnitLine); err != nil {
		return
	}
	n.out.Speak(trimEOL(r.Text()))
}

// announceMatch lands the caret on the match and speaks it.
func (n *Navigator) announceMatch(line host.Range, text string, loc []int) {
	if err := placeAtColumn(line, text[:loc[0]]); err != nil {
		logger.Debugf("Navigator: legacy match move failed: %v", err)
		return
	}
	n.out.Speak(text[loc[0]:loc[1]])
}

func (n *Navigator) legacyNavigate(req Request) bool {
	caret, line, err := n.caretLine()
	if err != nil {
		return false
	}
	dir := req.Direction.Delta()

	if req.Focus {
		text := line.Text()
		if loc := pickMatch(req.Pattern.FindAll(text), caretColumnIn(caret, line), dir); loc != nil {
			n.announceMatch(line, text, loc)
			return true
		}
		scan := line.Clone()
		for StepLine(scan, dir) {
			text := scan.Text()
			if loc := edgeMatch(req.Pattern.FindAll(text), dir); loc != nil {
				n.announceMatch(scan, text, loc)
				return true
			}
		}
		n.out.Message(req.notFoundMessage())
		return true
	}

	scan := line.Clone()
	for StepLine(scan, dir) {
		if req.Pattern.Matches(scan.Text()) {
			n.announceLine(scan)
			return true
		}
	}
	n.out.Message(req.notFoundMessage())
	return true
}

func (n *Navigator) legacyNavigateBlock(req Request) bool {
	_, line, err := n.caretLine()
	if err != nil {
		return false
	}
	dir := req.Direction.Delta()
	inBlock := req.Pattern.Matches(line.Text())

	if dir < 0 && inBlock {
		if prev := line.Clone(); StepLine(prev, -1) && req.Pattern.Matches(prev.Text()) {
			n.announceLine(legacyBlockTop(line, req.Pattern))
			return true
		}
	}

	scan := line.Clone()
	for StepLine(scan, dir) {
		match := req.Pattern.Matches(scan.Text())
		if inBlock {
			if !match {
				inBlock = false
			}
			continue
		}
		if match {
			if dir < 0 {
				scan = legacyBlockTop(scan, req.Pattern)
			}
			n.announceLine(scan)
			return true
		}
	}
	n.out.Message(req.notFoundMessage())
	return true
}

// legacyBlockTop climbs from the given line to the top line of its
// contiguous block of p-matching lines.
func legacyBlockTop(line host.Range, p *pattern.Pattern) host.Range {
	target := line.Clone()
	for {
		probe := target.Clone()
		if !StepLine(probe, -1) || !p.Matches(probe.Text()) {
			return target
		}
		target = probe
	}
}

func (n *Navigator) legacyNavigateCode(req Request) bool {
	caret, line, err := n.caretLine()
	if err != nil {
		return false
	}
	dir := req.Direction.Delta()
	scan := line.Clone()

	if pattern.CodeFence.Matches(line.Text()) {
		skip := true
		if dir < 0 && openingFence(line.Text()) {
			skip = false
		}
		if skip {
			for StepLine(scan, dir) {
				if pattern.CodeFence.Matches(scan.Text()) {
					break
				}
			}
		}
	} else {
		text := line.Text()
		if loc := pickMatch(pattern.InlineCode.FindAll(text), caretColumnIn(caret, line), dir); loc != nil {
			n.announceMatch(line, text, loc)
			return true
		}
	}

	for StepLine(scan, dir) {
		text := scan.Text()
		if pattern.CodeFence.Matches(text) {
			if dir < 0 && !openingFence(text) {
				probe := scan.Clone()
				for StepLine(probe, -1) {
					if pattern.CodeFence.Matches(probe.Text()) {
						scan = probe
						break
					}
				}
			}
			n.announceLine(scan)
			return true
		}
		if loc := edgeMatch(pattern.InlineCode.FindAll(text), dir); loc != nil {
			n.announceMatch(scan, text, loc)
			return true
		}
	}
	n.out.Message(req.notFoundMessage())
	return true
}

func (n *Navigator) legacyNavigateTable(rowDelta, colDelta int) bool {
	caret, line, err := n.caretLine()
	if err != nil {
		return false
	}
	text := line.Text()
	cells := ParseRow(text)
	if !pattern.Table.Matches(text) || len(cells) == 0 {
		// Outside a table the gesture belongs to the host.
		return false
	}
	col := columnAt(cells, caretColumnIn(caret, line))

	if colDelta != 0 {
		target := col + colDelta
		if target < 0 || target >= len(cells) {
			n.out.Message(MsgTableEdge)
			return true
		}
		n.legacyMoveToCell(line, text, cells[target])
		return true
	}

	scan := line.Clone()
	if !StepLine(scan, rowDelta) {
		n.out.Message(MsgTableEdge)
		return true
	}
	text = scan.Text()
	newCells := ParseRow(text)
	if !pattern.Table.Matches(text) || len(newCells) == 0 {
		n.out.Message(MsgTableEdge)
		return true
	}
	if col >= len(newCells) {
		col = len(newCells) - 1
	}
	n.legacyMoveToCell(scan, text, newCells[col])
	return true
}

func (n *Navigator) legacyMoveToCell(line host.Range, text string, cell Cell) {
	if err := placeAtColumn(line, text[:cell.ContentStart]); err != nil {
		logger.Debugf("Navigator: legacy cell move failed: %v", err)
		return
	}
	n.out.Speak(cell.Text)
}
