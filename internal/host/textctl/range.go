// internal/host/textctl/range.go
package textctl

import (
	"fmt"

	"github.com/bethropolis/mdnav/internal/host"
)

// byteRanger lets textctl ranges compare endpoints regardless of concrete
// type. All ranges from one Document share the byte coordinate space.
type byteRanger interface {
	byteOffset(edge host.Edge) int
}

// rangeBase carries the shared range state and behavior. start and end are
// byte offsets into the document text, start <= end.
type rangeBase struct {
	doc   *Document
	start int
	end   int
}

func (r *rangeBase) byteOffset(edge host.Edge) int {
	if edge == host.EdgeEnd {
		return r.end
	}
	return r.start
}

func (r *rangeBase) Text() string {
	return r.doc.text[r.start:r.end]
}

func (r *rangeBase) Collapse(edge host.Edge) error {
	if edge == host.EdgeEnd {
		r.start = r.end
	} else {
		r.end = r.start
	}
	return nil
}

func (r *rangeBase) Expand(unit host.Unit) error {
	switch unit {
	case host.UnitCharacter:
		r.end = r.doc.nextGrapheme(r.start)
	case host.UnitLine, host.UnitParagraph:
		line := r.doc.lineIndexAt(r.start)
		r.start = r.doc.lineStarts[line]
		r.end = r.doc.lineEnd(line)
	}
	return nil
}

func (r *rangeBase) Move(unit host.Unit, count int) (int, error) {
	if count == 0 {
		return 0, nil
	}
	switch unit {
	case host.UnitCharacter:
		return r.moveCharacter(count), nil
	case host.UnitLine, host.UnitParagraph:
		if r.doc.cfg.LineMoveError {
			return 0, fmt.Errorf("line move: %w", host.ErrCommunication)
		}
		if r.doc.cfg.GhostLineMoves {
			// Reports the requested count but leaves the position alone.
			return count, nil
		}
		return r.moveLine(count), nil
	}
	return 0, nil
}

func (r *rangeBase) moveCharacter(count int) int {
	moved := 0
	pos := r.start
	for moved != count {
		var next int
		if count > 0 {
			next = r.doc.nextGrapheme(pos)
			if next == pos {
				break
			}
			moved++
		} else {
			next = r.doc.prevGrapheme(pos)
			if next == pos {
				break
			}
			moved--
		}
		pos = next
	}
	r.start, r.end = pos, pos
	return moved
}

func (r *rangeBase) moveLine(count int) int {
	line := r.doc.lineIndexAt(r.start)
	target := clamp(line+count, 0, r.doc.LineCount()-1)
	moved := target - line
	if moved == 0 {
		return 0
	}
	pos := r.doc.lineStarts[target]
	r.start, r.end = pos, pos
	return moved
}

func (r *rangeBase) SetEdge(edge host.Edge, src host.Range, srcEdge host.Edge) {
	br, ok := src.(byteRanger)
	if !ok {
		return
	}
	offset := br.byteOffset(srcEdge)
	if edge == host.EdgeEnd {
		r.end = offset
		if r.start > r.end {
			r.start = r.end
		}
	} else {
		r.start = offset
		if r.end < r.start {
			r.end = r.start
		}
	}
}

func (r *rangeBase) Compare(edge host.Edge, other host.Range, otherEdge host.Edge) int {
	br, ok := other.(byteRanger)
	if !ok {
		return 0
	}
	own := r.byteOffset(edge)
	theirs := br.byteOffset(otherEdge)
	switch {
	case own < theirs:
		return -1
	case own > theirs:
		return 1
	default:
		return 0
	}
}

func (r *rangeBase) PlaceCaret() error {
	r.doc.SetCaret(r.start)
	return nil
}

// steppingRange is the range of generic controls: incremental movement
// only, no offset model.
type steppingRange struct {
	rangeBase
}

func (r *steppingRange) Clone() host.Range {
	c := *r
	return &c
}

// StepUnit reports which unit replayed caret stepping must use.
func (r *steppingRange) StepUnit() host.Unit {
	if r.doc.cfg.ParagraphIsLine {
		return host.UnitLine
	}
	return host.UnitParagraph
}

// offsetRange is the range of linear-offset controls and of flat web text
// objects. Native units depend on the control's encoding.
type offsetRange struct {
	rangeBase
	units Encoding
}

func (r *offsetRange) Clone() host.Range {
	c := *r
	return &c
}

// flatRange is the whole-document text object of flat web controls.
type flatRange struct {
	offsetRange
}

func (r *flatRange) Clone() host.Range {
	c := *r
	return &c
}

func (*flatRange) FlatText() {}

func (r *offsetRange) Offsets() (int, int) {
	if r.units == EncodingUTF8 {
		return r.start, r.end
	}
	return r.doc.byteToUTF16(r.start), r.doc.byteToUTF16(r.end)
}

func (r *offsetRange) SetOffsets(start, end int) {
	if r.units == EncodingUTF8 {
		r.start = clamp(start, 0, len(r.doc.text))
		r.end = clamp(end, r.start, len(r.doc.text))
		return
	}
	r.start = r.doc.utf16ToByte(start)
	r.end = r.doc.utf16ToByte(end)
	if r.end < r.start {
		r.end = r.start
	}
}
