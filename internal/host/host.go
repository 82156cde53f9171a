// Package host abstracts the accessibility object model of whatever control
// is backing a document. Navigation code only sees these interfaces; the
// concrete ranges live with the host (see textctl for the in-memory ones).
package host

// Unit is a text granularity for expand and move operations.
type Unit int

const (
	UnitCharacter Unit = iota
	UnitLine
	UnitParagraph
)

// Edge selects an endpoint of a range.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Range is a position or span of text inside a control, mirroring the
// range objects real accessibility APIs hand out. Implementations may talk
// to another process; every method can be expensive.
type Range interface {
	// Clone returns an independent copy of the range.
	Clone() Range

	// Text reads the text covered by the range.
	Text() string

	// Collapse shrinks the range to one of its endpoints.
	Collapse(edge Edge) error

	// Expand grows the range to cover the whole unit containing its start.
	Expand(unit Unit) error

	// Move collapses the range and moves it by count units, returning the
	// number of units actually moved. A zero return means a document
	// boundary. Some controls report a non-zero count without actually
	// moving; callers that care must verify with Compare.
	Move(unit Unit, count int) (int, error)

	// SetEdge sets one endpoint equal to an endpoint of another range.
	SetEdge(edge Edge, src Range, srcEdge Edge)

	// Compare orders one endpoint of this range against an endpoint of
	// another: negative if before, zero if equal, positive if after.
	Compare(edge Edge, other Range, otherEdge Edge) int

	// PlaceCaret commits the range's start as the control's caret.
	PlaceCaret() error
}

// Control is one document-bearing text control.
type Control interface {
	// DocumentRange returns a range spanning the whole document.
	DocumentRange() (Range, error)

	// CaretRange returns a range at the current caret position.
	CaretRange() (Range, error)

	// AppName identifies the hosting application, lowercase.
	AppName() string
}

// OffsetRange is a Range whose position model is a flat offset in the
// control's native code units. Linear-offset controls return one from
// DocumentRange; flat web text objects return one from FlatDocumentRange.
type OffsetRange interface {
	Range

	// Offsets returns the current start and end in native units.
	Offsets() (start, end int)

	// SetOffsets forces both endpoints, bypassing unit arithmetic.
	SetOffsets(start, end int)
}

// FlatRange marks offset ranges obtained from FlatTextProvider: their
// offsets address the whole document in UTF-16 code units.
type FlatRange interface {
	OffsetRange
	FlatText() // marker
}

// OffsetConverter maps snapshot character offsets (Go string byte offsets)
// into a control's native encoding.
type OffsetConverter interface {
	ToNative(offset int) (int, error)
}

// EncodingAware is implemented by controls that know their native text
// encoding well enough to convert offsets exactly. Returning nil means no
// converter is available and the caller should fall back to UTF-16 tables.
type EncodingAware interface {
	Converter() OffsetConverter
}

// FlatTextProvider is implemented by controls (web documents, in practice)
// that expose a whole-document flat text object addressable by a single
// linear offset, bypassing the nested position model.
type FlatTextProvider interface {
	FlatDocumentRange() (OffsetRange, error)
}

// UnitPreference is implemented by ranges of controls whose paragraph
// stepping is actually line granular, so replayed movement must use lines.
type UnitPreference interface {
	StepUnit() Unit
}

// StepUnitFor returns the unit to use for replayed caret stepping over the
// given document range.
func StepUnitFor(r Range) Unit {
	if up, ok := r.(UnitPreference); ok {
		return up.StepUnit()
	}
	return UnitParagraph
}
