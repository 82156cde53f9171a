// internal/types/position.go
package types

// Position represents a caret position within a document.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Direction is the travel direction of a navigation command.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Delta returns the direction as a signed line increment.
func (d Direction) Delta() int {
	return int(d)
}

// String returns "next" or "previous", matching how directions are announced.
func (d Direction) String() string {
	if d == Backward {
		return "previous"
	}
	return "next"
}
