// Package document implements the one-shot document snapshot that fast
// navigation runs against. The whole text is fetched in a single host call
// and indexed by line in two coordinate systems: character offsets for
// string matching, UTF-16 code units for the host's native position APIs.
// The strategy follows the FastLineManagerV2 approach from the
// nvda-indent-nav add-on by Tony Malykh.
package document

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/bethropolis/mdnav/internal/host"
)

// newlineRE splits text at line boundaries across platforms.
var newlineRE = regexp.MustCompile(`\r\n|\n|\r`)

// Snapshot owns one immutable copy of a document's text plus its line
// offset tables and a cursor. It lives for exactly one navigation command.
type Snapshot struct {
	ctrl host.Control

	text         string
	charOffsets  []int // line start offsets in character units
	utf16Offsets []int // line start offsets in UTF-16 code units
	lineCount    int

	line         int // cursor: current line index
	originalLine int // line the caret was on at snapshot time
	caretOffset  int // caret's character offset from document start

	doc           host.Range
	originalCaret host.Range
}

// Open snapshots the control's document. It fails when the host cannot
// produce a full-document range or a caret position; callers fall back to
// legacy scanning in that case.
func Open(ctrl host.Control) (*Snapshot, error) {
	doc, err := ctrl.DocumentRange()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	caret, err := ctrl.CaretRange()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if err := caret.Collapse(host.EdgeStart); err != nil {
		return nil, fmt.Errorf("snapshot: collapse caret: %w", err)
	}
	pretext := caret.Clone()
	pretext.SetEdge(host.EdgeStart, doc, host.EdgeStart)

	s := &Snapshot{
		ctrl:          ctrl,
		doc:           doc,
		originalCaret: caret,
		text:          doc.Text(),
	}

	// Both offset tables are built in one pass. A line's UTF-16 length can
	// exceed its character count when it contains surrogate pairs.
	s.charOffsets = []int{0}
	s.utf16Offsets = []int{0}
	currentUTF16 := 0
	last := 0
	for _, m := range newlineRE.FindAllStringIndex(s.text, -1) {
		end := m[1]
		currentUTF16 += UTF16Length(s.text[last:end])
		s.charOffsets = append(s.charOffsets, end)
		s.utf16Offsets = append(s.utf16Offsets, currentUTF16)
		last = end
	}
	s.lineCount = len(s.charOffsets)

	// The caret's offset is read once here; everything after works off the
	// tables instead of asking the host again.
	s.caretOffset = len(pretext.Text())
	s.line = sort.Search(s.lineCount, func(i int) bool {
		return s.charOffsets[i] > s.caretOffset
	}) - 1
	if s.line < 0 {
		s.line = 0
	}
	s.originalLine = s.line

	return s, nil
}

// LineCount returns the number of lines in the snapshot.
func (s *Snapshot) LineCount() int { return s.lineCount }

// Line returns the cursor's current line index.
func (s *Snapshot) Line() int { return s.line }

// OriginalLine returns the line the caret was on when the snapshot was taken.
func (s *Snapshot) OriginalLine() int { return s.originalLine }

// CaretOffset returns the caret's character offset from document start at
// snapshot time.
func (s *Snapshot) CaretOffset() int { return s.caretOffset }

// CaretColumn returns the caret's character offset within its snapshot-time
// line. Meaningful only while the cursor is still on the original line.
func (s *Snapshot) CaretColumn() int {
	col := s.caretOffset - s.LineStart(s.originalLine)
	if col < 0 {
		return 0
	}
	return col
}

// Step moves the cursor by delta lines. It returns the applied delta, or 0
// when the move would leave the document.
func (s *Snapshot) Step(delta int) int {
	next := s.line + delta
	if next < 0 || next >= s.lineCount {
		return 0
	}
	s.line = next
	return delta
}

// LineText returns the text of line i including its trailing line break.
// Out-of-range indexes return "".
func (s *Snapshot) LineText(i int) string {
	if i < 0 || i >= s.lineCount {
		return ""
	}
	start := s.charOffsets[i]
	end := len(s.text)
	if i+1 < s.lineCount {
		end = s.charOffsets[i+1]
	}
	return s.text[start:end]
}

// CurrentText returns the text of the cursor's line.
func (s *Snapshot) CurrentText() string { return s.LineText(s.line) }

// LineStart returns the character offset of line i's start; indexes past
// the last line return the document length.
func (s *Snapshot) LineStart(i int) int {
	if i < s.lineCount {
		return s.charOffsets[i]
	}
	return len(s.text)
}

// utf16Extrapolated returns line i's UTF-16 start offset, extending past
// the table by measuring the remaining tail text.
func (s *Snapshot) utf16Extrapolated(i int) int {
	if i < len(s.utf16Offsets) {
		return s.utf16Offsets[i]
	}
	lastChar := s.charOffsets[len(s.charOffsets)-1]
	return s.utf16Offsets[len(s.utf16Offsets)-1] + UTF16Length(s.text[lastChar:])
}

// utf16Clamped returns line i's UTF-16 start offset, clamping past-the-end
// indexes to the last known line.
func (s *Snapshot) utf16Clamped(i int) int {
	if i < len(s.utf16Offsets) {
		return s.utf16Offsets[i]
	}
	return s.utf16Offsets[len(s.utf16Offsets)-1]
}

// UTF16Length returns the UTF-16 code unit count of s.
func UTF16Length(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}
