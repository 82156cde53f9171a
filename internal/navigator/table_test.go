package navigator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mdnav/internal/navigator"
	"github.com/bethropolis/mdnav/internal/speech"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want []string
	}{
		{"simple", "| a | b | c |", []string{"a", "b", "c"}},
		{"no trailing pipe", "| a | b", []string{"a"}},
		{"escaped pipe stays in cell", `| a | b\|c | d |`, []string{"a", `b\|c`, "d"}},
		{"empty cell", "| a |  | c |", []string{"a", "", "c"}},
		{"single pipe", "| alone", nil},
		{"no pipes", "plain text", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := navigator.ParseRow(tt.row)
			var got []string
			for _, c := range cells {
				got = append(got, c.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRowOffsets(t *testing.T) {
	row := "| ab | cd |"
	cells := navigator.ParseRow(row)
	require.Len(t, cells, 2)

	assert.Equal(t, 1, cells[0].Start)
	assert.Equal(t, 5, cells[0].End)
	assert.Equal(t, 2, cells[0].ContentStart)
	assert.Equal(t, 4, cells[0].ContentEnd)
	assert.Equal(t, "ab", row[cells[0].ContentStart:cells[0].ContentEnd])
	assert.Equal(t, "cd", row[cells[1].ContentStart:cells[1].ContentEnd])
}

const tableDoc = "before\n| h1 | h2 | h3 |\n| -- | -- | -- |\n| a | b | c |\n| d | e |\nafter\n"

func TestNavigateTableColumns(t *testing.T) {
	ctrl := newLinear(tableDoc)
	ctrl.SetCaret(len("before\n") + 2) // inside h1
	rec := &speech.Recorder{}
	nav := navigator.New(ctrl, rec)

	assert.True(t, nav.NavigateTable(0, 1))
	assert.Equal(t, []string{"h2"}, rec.Spoken)

	rec.Reset()
	assert.True(t, nav.NavigateTable(0, 1))
	assert.Equal(t, []string{"h3"}, rec.Spoken)

	rec.Reset()
	assert.True(t, nav.NavigateTable(0, 1))
	assert.Equal(t, []string{navigator.MsgTableEdge}, rec.Messages)

	rec.Reset()
	assert.True(t, nav.NavigateTable(0, -1))
	assert.Equal(t, []string{"h2"}, rec.Spoken)
}

func TestNavigateTableRows(t *testing.T) {
	ctrl := newLinear(tableDoc)
	ctrl.SetCaret(len("before\n") + 7) // inside h2
	rec := &speech.Recorder{}
	nav := navigator.New(ctrl, rec)

	assert.True(t, nav.NavigateTable(1, 0))
	assert.Equal(t, []string{"--"}, rec.Spoken)

	rec.Reset()
	assert.True(t, nav.NavigateTable(1, 0))
	assert.Equal(t, []string{"b"}, rec.Spoken)

	// The last row has fewer columns; the column clamps.
	rec.Reset()
	assert.True(t, nav.NavigateTable(1, 0))
	assert.Equal(t, []string{"e"}, rec.Spoken)

	// Below the table is not a row.
	rec.Reset()
	assert.True(t, nav.NavigateTable(1, 0))
	assert.Equal(t, []string{navigator.MsgTableEdge}, rec.Messages)
}

func TestNavigateTableUpFromFirstRow(t *testing.T) {
	ctrl := newLinear(tableDoc)
	ctrl.SetCaret(len("before\n") + 2)
	rec := &speech.Recorder{}
	nav := navigator.New(ctrl, rec)

	assert.True(t, nav.NavigateTable(-1, 0))
	assert.Equal(t, []string{navigator.MsgTableEdge}, rec.Messages)
}

func TestNavigateTableOutsideTable(t *testing.T) {
	ctrl := newLinear(tableDoc)
	rec := &speech.Recorder{}
	nav := navigator.New(ctrl, rec)

	assert.True(t, nav.NavigateTable(0, 1))
	assert.Equal(t, []string{navigator.MsgNotInTable}, rec.Messages)
}
