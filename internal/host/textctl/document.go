// Package textctl provides in-memory text controls implementing the host
// interfaces. The demo viewer uses one as its document model; tests use the
// other flavors to stand in for the control families found in the wild:
// linear-offset editors, flat web documents, and paragraph steppers with
// the classic RichEdit line-move defect.
package textctl

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/types"
	"github.com/rivo/uniseg"
)

// Kind selects the position model a Document exposes.
type Kind int

const (
	// KindLinear exposes a flat offset model from DocumentRange.
	KindLinear Kind = iota
	// KindFlat exposes a stepping DocumentRange plus the flat whole-document
	// text capability web controls have.
	KindFlat
	// KindStepping exposes only incremental unit movement.
	KindStepping
)

// Encoding is the native code unit of a linear control's offsets.
type Encoding int

const (
	// EncodingUTF16 offsets count UTF-16 code units (Windows-style controls).
	EncodingUTF16 Encoding = iota
	// EncodingUTF8 offsets count bytes (Scintilla-style controls). These
	// controls expose an exact offset converter.
	EncodingUTF8
)

// Config describes a Document's capabilities and defects.
type Config struct {
	Kind     Kind
	AppName  string
	Encoding Encoding

	// ParagraphIsLine marks controls whose paragraph unit is really a line
	// (VS-editor-style hosts).
	ParagraphIsLine bool

	// GhostLineMoves makes line/paragraph moves report success without
	// changing position, reproducing the RichEdit defect.
	GhostLineMoves bool

	// LineMoveError makes line/paragraph moves fail with a communication
	// error instead of moving.
	LineMoveError bool

	// BrokenConverter makes the UTF-8 offset converter fail, forcing the
	// UTF-16 fallback path.
	BrokenConverter bool

	// DenyDocumentRange / DenyCaretRange make the respective lookups fail
	// with a capability error.
	DenyDocumentRange bool
	DenyCaretRange    bool
	// DenyFlatText withholds the flat text capability from a KindFlat control.
	DenyFlatText bool
}

// Document is an in-memory text control. The text is fixed for the
// document's lifetime; only the caret moves.
type Document struct {
	cfg        Config
	text       string
	caret      int   // byte offset
	lineStarts []int // byte offset of each line start
}

// New creates a document over the given text with the caret at offset 0.
func New(text string, cfg Config) *Document {
	d := &Document{cfg: cfg, text: text}
	d.lineStarts = scanLineStarts(text)
	return d
}

func scanLineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Text returns the full document text.
func (d *Document) Text() string { return d.text }

// Caret returns the caret's byte offset.
func (d *Document) Caret() int { return d.caret }

// SetCaret moves the caret to a byte offset, clamped to the text.
func (d *Document) SetCaret(offset int) {
	d.caret = clamp(offset, 0, len(d.text))
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lineStarts) }

// LineText returns line i including its trailing line break, or "" when out
// of range.
func (d *Document) LineText(i int) string {
	if i < 0 || i >= len(d.lineStarts) {
		return ""
	}
	return d.text[d.lineStarts[i]:d.lineEnd(i)]
}

func (d *Document) lineEnd(i int) int {
	if i+1 < len(d.lineStarts) {
		return d.lineStarts[i+1]
	}
	return len(d.text)
}

// lineIndexAt returns the line containing the byte offset.
func (d *Document) lineIndexAt(offset int) int {
	idx := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return idx
}

// CaretPosition reports the caret as line/column for display.
func (d *Document) CaretPosition() types.Position {
	line := d.lineIndexAt(d.caret)
	return types.Position{
		Line: line,
		Col:  utf8.RuneCountInString(d.text[d.lineStarts[line]:d.caret]),
	}
}

// AppName identifies the simulated hosting application.
func (d *Document) AppName() string { return d.cfg.AppName }

// DocumentRange returns a range spanning the whole document.
func (d *Document) DocumentRange() (host.Range, error) {
	if d.cfg.DenyDocumentRange {
		return nil, fmt.Errorf("document range: %w", host.ErrCapability)
	}
	return d.newRange(0, len(d.text)), nil
}

// CaretRange returns a collapsed range at the caret.
func (d *Document) CaretRange() (host.Range, error) {
	if d.cfg.DenyCaretRange {
		return nil, fmt.Errorf("caret range: %w", host.ErrCapability)
	}
	return d.newRange(d.caret, d.caret), nil
}

// FlatDocumentRange exposes the flat whole-document text object of web
// controls. Offsets are UTF-16 code units like the real thing.
func (d *Document) FlatDocumentRange() (host.OffsetRange, error) {
	if d.cfg.Kind != KindFlat || d.cfg.DenyFlatText {
		return nil, fmt.Errorf("flat text object: %w", host.ErrCapability)
	}
	return &flatRange{offsetRange{
		rangeBase: rangeBase{doc: d, start: 0, end: len(d.text)},
		units:     EncodingUTF16,
	}}, nil
}

// Converter returns the exact offset converter of byte-native controls,
// nil otherwise.
func (d *Document) Converter() host.OffsetConverter {
	if d.cfg.Kind != KindLinear || d.cfg.Encoding != EncodingUTF8 {
		return nil
	}
	return byteConverter{broken: d.cfg.BrokenConverter}
}

func (d *Document) newRange(start, end int) host.Range {
	base := rangeBase{doc: d, start: start, end: end}
	if d.cfg.Kind == KindLinear {
		return &offsetRange{rangeBase: base, units: d.cfg.Encoding}
	}
	return &steppingRange{rangeBase: base}
}

// --- offset unit conversion helpers ---

func (d *Document) byteToUTF16(offset int) int {
	n := 0
	for _, r := range d.text[:clamp(offset, 0, len(d.text))] {
		n += utf16Len(r)
	}
	return n
}

func (d *Document) utf16ToByte(offset int) int {
	n := 0
	for i, r := range d.text {
		if n >= offset {
			return i
		}
		n += utf16Len(r)
	}
	return len(d.text)
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// --- grapheme stepping helpers ---

// nextGrapheme returns the byte offset just past the grapheme cluster
// starting at offset.
func (d *Document) nextGrapheme(offset int) int {
	if offset >= len(d.text) {
		return len(d.text)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(d.text[offset:], -1)
	return offset + len(cluster)
}

// prevGrapheme returns the byte offset of the grapheme cluster preceding
// offset.
func (d *Document) prevGrapheme(offset int) int {
	if offset <= 0 {
		return 0
	}
	prev, cur := 0, 0
	gr := uniseg.NewGraphemes(d.text)
	for gr.Next() {
		cur += len(gr.Bytes())
		if cur >= offset {
			return prev
		}
		prev = cur
	}
	return prev
}

// byteConverter converts snapshot character offsets (bytes) into a
// byte-native control's offsets. The mapping is exact, which is the point
// of the converter path.
type byteConverter struct {
	broken bool
}

func (c byteConverter) ToNative(offset int) (int, error) {
	if c.broken {
		return 0, fmt.Errorf("offset conversion: %w", host.ErrCommunication)
	}
	return offset, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
