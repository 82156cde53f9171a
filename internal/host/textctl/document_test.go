package textctl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mdnav/internal/host"
	"github.com/bethropolis/mdnav/internal/host/textctl"
	"github.com/bethropolis/mdnav/internal/types"
)

func newDoc(text string, kind textctl.Kind) *textctl.Document {
	return textctl.New(text, textctl.Config{
		Kind:     kind,
		AppName:  "testapp",
		Encoding: textctl.EncodingUTF8,
	})
}

func TestDocumentLines(t *testing.T) {
	d := newDoc("one\ntwo\r\nthree", textctl.KindLinear)

	assert.Equal(t, 3, d.LineCount())
	assert.Equal(t, "one\n", d.LineText(0))
	assert.Equal(t, "two\r\n", d.LineText(1))
	assert.Equal(t, "three", d.LineText(2))
	assert.Equal(t, "", d.LineText(3))
}

func TestCaretPosition(t *testing.T) {
	d := newDoc("aé𝄞\nxyz", textctl.KindLinear)

	d.SetCaret(0)
	assert.Equal(t, types.Position{Line: 0, Col: 0}, d.CaretPosition())

	// Columns count runes, not bytes.
	d.SetCaret(1 + 2 + 4) // past a, é, 𝄞
	assert.Equal(t, types.Position{Line: 0, Col: 3}, d.CaretPosition())

	d.SetCaret(len("aé𝄞\nx"))
	assert.Equal(t, types.Position{Line: 1, Col: 1}, d.CaretPosition())

	d.SetCaret(999)
	assert.Equal(t, types.Position{Line: 1, Col: 3}, d.CaretPosition())
}

func TestRangeExpandAndCollapse(t *testing.T) {
	d := newDoc("one\ntwo\nthree\n", textctl.KindLinear)
	d.SetCaret(5) // inside "two"

	r, err := d.CaretRange()
	require.NoError(t, err)
	require.NoError(t, r.Expand(host.UnitLine))
	assert.Equal(t, "two\n", r.Text())

	require.NoError(t, r.Collapse(host.EdgeStart))
	assert.Equal(t, "", r.Text())
	require.NoError(t, r.Expand(host.UnitCharacter))
	assert.Equal(t, "t", r.Text())
}

func TestRangeMoveCharacterGraphemes(t *testing.T) {
	// One grapheme can be several runes; character movement must not split
	// the combining sequence.
	text := "éx" // e + combining acute, then x
	d := newDoc(text, textctl.KindLinear)

	r, err := d.CaretRange()
	require.NoError(t, err)

	n, err := r.Move(host.UnitCharacter, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, r.Expand(host.UnitCharacter))
	assert.Equal(t, "x", r.Text())
}

func TestRangeMoveLineClampsAtEdges(t *testing.T) {
	d := newDoc("a\nb\nc", textctl.KindLinear)
	r, err := d.CaretRange()
	require.NoError(t, err)

	n, err := r.Move(host.UnitLine, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.Move(host.UnitLine, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, n)
	require.NoError(t, r.Expand(host.UnitLine))
	assert.Equal(t, "b\n", r.Text())
}

func TestRangeCompareAndSetEdge(t *testing.T) {
	d := newDoc("abcdef", textctl.KindLinear)

	a, err := d.CaretRange()
	require.NoError(t, err)
	d.SetCaret(3)
	b, err := d.CaretRange()
	require.NoError(t, err)

	assert.Negative(t, a.Compare(host.EdgeStart, b, host.EdgeStart))
	assert.Positive(t, b.Compare(host.EdgeStart, a, host.EdgeStart))

	a.SetEdge(host.EdgeEnd, b, host.EdgeStart)
	assert.Equal(t, "abc", a.Text())
	assert.Zero(t, a.Compare(host.EdgeEnd, b, host.EdgeStart))
}

func TestPlaceCaret(t *testing.T) {
	d := newDoc("one\ntwo\n", textctl.KindLinear)
	r, err := d.DocumentRange()
	require.NoError(t, err)
	require.NoError(t, r.Collapse(host.EdgeEnd))
	require.NoError(t, r.PlaceCaret())
	assert.Equal(t, len("one\ntwo\n"), d.Caret())
}

func TestOffsetRangeUTF16(t *testing.T) {
	d := textctl.New("𝄞ab\ncd", textctl.Config{
		Kind:     textctl.KindLinear,
		AppName:  "testapp",
		Encoding: textctl.EncodingUTF16,
	})
	r, err := d.DocumentRange()
	require.NoError(t, err)
	or, ok := r.(host.OffsetRange)
	require.True(t, ok)

	start, end := or.Offsets()
	assert.Equal(t, 0, start)
	assert.Equal(t, 7, end) // 2 for the surrogate pair + 5 singles

	or.SetOffsets(2, 4)
	assert.Equal(t, "ab", or.Text())
}

func TestFlatDocumentRange(t *testing.T) {
	d := textctl.New("ab\ncd", textctl.Config{Kind: textctl.KindFlat, AppName: "chrome"})

	flat, err := d.FlatDocumentRange()
	require.NoError(t, err)
	_, ok := flat.(host.FlatRange)
	assert.True(t, ok, "flat document range must carry the flat text marker")

	// Plain document ranges of any kind must not.
	lin := newDoc("ab", textctl.KindLinear)
	r, err := lin.DocumentRange()
	require.NoError(t, err)
	_, ok = r.(host.FlatRange)
	assert.False(t, ok)
}

func TestFlatDeniedForNonFlatKinds(t *testing.T) {
	d := newDoc("ab", textctl.KindLinear)
	_, err := d.FlatDocumentRange()
	assert.ErrorIs(t, err, host.ErrCapability)
}

func TestConverter(t *testing.T) {
	d := newDoc("abc", textctl.KindLinear)
	conv := d.Converter()
	require.NotNil(t, conv)
	n, err := conv.ToNative(2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stepping := newDoc("abc", textctl.KindStepping)
	assert.Nil(t, stepping.Converter())
}

func TestBrokenConverter(t *testing.T) {
	d := textctl.New("abc", textctl.Config{
		Kind:            textctl.KindLinear,
		AppName:         "testapp",
		Encoding:        textctl.EncodingUTF8,
		BrokenConverter: true,
	})
	conv := d.Converter()
	require.NotNil(t, conv)
	_, err := conv.ToNative(1)
	assert.ErrorIs(t, err, host.ErrCommunication)
}

func TestDeniedCapabilities(t *testing.T) {
	d := textctl.New("abc", textctl.Config{
		Kind:              textctl.KindStepping,
		AppName:           "testapp",
		DenyDocumentRange: true,
		DenyCaretRange:    true,
	})
	_, err := d.DocumentRange()
	assert.ErrorIs(t, err, host.ErrCapability)
	_, err = d.CaretRange()
	assert.ErrorIs(t, err, host.ErrCapability)
}
