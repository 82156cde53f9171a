// internal/navigator/table.go
package navigator

import (
	"strings"

	"github.com/bethropolis/mdnav/internal/document"
	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/pattern"
)

// Cell is one cell of a pipe-delimited table row. Offsets are byte offsets
// into the row text: Start/End span the raw cell between its delimiters,
// ContentStart/ContentEnd the whitespace-trimmed content, and Text holds
// that trimmed content.
type Cell struct {
	Start        int
	End          int
	ContentStart int
	ContentEnd   int
	Text         string
}

// ParseRow splits a table row on its unescaped pipes. Backslash-escaped
// pipes stay inside their cell. Rows with fewer than two delimiters have no
// cells.
func ParseRow(text string) []Cell {
	var pipes []int
	for i := 0; i < len(text); i++ {
		if text[i] == '|' && (i == 0 || text[i-1] != '\\') {
			pipes = append(pipes, i)
		}
	}
	if len(pipes) < 2 {
		return nil
	}
	cells := make([]Cell, 0, len(pipes)-1)
	for i := 0; i+1 < len(pipes); i++ {
		start, end := pipes[i]+1, pipes[i+1]
		raw := text[start:end]
		trimmed := strings.TrimSpace(raw)
		contentStart := start
		if trimmed != "" {
			contentStart = start + strings.Index(raw, trimmed)
		}
		cells = append(cells, Cell{
			Start:        start,
			End:          end,
			ContentStart: contentStart,
			ContentEnd:   contentStart + len(trimmed),
			Text:         trimmed,
		})
	}
	return cells
}

// columnAt returns the index of the cell whose span contains byte offset
// col, defaulting to the first cell.
func columnAt(cells []Cell, col int) int {
	for i, c := range cells {
		if col >= c.Start && col <= c.End {
			return i
		}
	}
	return 0
}

// NavigateTable moves the caret one cell within the table under the caret:
// exactly one of rowDelta and colDelta is nonzero. Column moves stay within
// the current row; row moves keep the column, clamped to shorter rows.
// Leaving the table announces the edge instead of moving.
func (n *Navigator) NavigateTable(rowDelta, colDelta int) bool {
	snap, err := document.Open(n.ctrl)
	if err != nil {
		logFallback("snapshot", err)
		return n.legacyNavigateTable(rowDelta, colDelta)
	}
	if err := n.navigateTableFast(snap, rowDelta, colDelta); err != nil {
		logFallback("fast table navigation", err)
		return n.legacyNavigateTable(rowDelta, colDelta)
	}
	return true
}

func (n *Navigator) navigateTableFast(snap *document.Snapshot, rowDelta, colDelta int) error {
	current := snap.CurrentText()
	cells := ParseRow(current)
	if !pattern.Table.Matches(current) || len(cells) == 0 {
		n.out.Message(MsgNotInTable)
		return nil
	}
	col := columnAt(cells, snap.CaretColumn())

	if colDelta != 0 {
		target := col + colDelta
		if target < 0 || target >= len(cells) {
			n.out.Message(MsgTableEdge)
			return nil
		}
		return n.moveToCell(snap, snap.Line(), current, cells[target])
	}

	if snap.Step(rowDelta) != 0 {
		text := snap.CurrentText()
		if cells := ParseRow(text); pattern.Table.Matches(text) && len(cells) > 0 {
			if col >= len(cells) {
				col = len(cells) - 1
			}
			return n.moveToCell(snap, snap.Line(), text, cells[col])
		}
	}
	n.out.Message(MsgTableEdge)
	return nil
}

// moveToCell lands the caret at the start of the cell's trimmed content and
// announces the content.
func (n *Navigator) moveToCell(snap *document.Snapshot, i int, lineText string, cell Cell) error {
	lineRange, err := snap.Resolve(i)
	if err != nil {
		return err
	}
	if flat, ok := lineRange.(host.FlatRange); ok && document.IsWebApp(n.ctrl.AppName()) {
		start, _ := flat.Offsets()
		target := start + document.UTF16Length(lineText[:cell.ContentStart])
		flat.SetOffsets(target, target)
		if err := flat.PlaceCaret(); err != nil {
			return err
		}
	} else if err := placeAtColumn(lineRange, lineText[:cell.ContentStart]); err != nil {
		return err
	}
	n.out.Speak(cell.Text)
	return nil
}
