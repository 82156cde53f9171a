// internal/tui/drawing.go
package tui

import (
	"fmt"  // Import fmt
	"math" // Import math for Log10
	"strings"

	"github.com/bethropolis/mdnav/internal/host/textctl"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// calculateVisualColumn converts a rune index within a line into the
// visual column where it starts.
func calculateVisualColumn(line string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRuneIndex := 0

	gr := uniseg.NewGraphemes(line)
	for gr.Next() { // Iterate through grapheme clusters (user-perceived characters)
		if currentRuneIndex >= runeIndex {
			break // We've reached or passed the target rune index
		}
		visualWidth += gr.Width() // Use uniseg's width calculation
		currentRuneIndex += len(gr.Runes())
	}

	return visualWidth
}

// gutterWidth computes the line number gutter width for the given document
// and screen width, 0 when the screen is too narrow.
func gutterWidth(doc *textctl.Document, screenWidth int) int {
	lineCount := doc.LineCount()
	if lineCount == 0 {
		lineCount = 1 // Avoid Log10(0)
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	w := maxDigits + 1 // Space between number and text
	if w >= screenWidth {
		return 0
	}
	return w
}

// DrawDocument draws the visible portion of the document.
func DrawDocument(tuiManager *TUI, doc *textctl.Document, viewY, viewX int) {
	defaultStyle := tcell.StyleDefault
	lineNumberStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	width, height := tuiManager.Size()
	statusBarHeight := 1
	viewHeight := height - statusBarHeight

	if viewHeight <= 0 || width <= 0 {
		return
	}

	lineCount := doc.LineCount()
	gutter := gutterWidth(doc, width)
	maxDigits := gutter - 1
	textAreaWidth := width - gutter
	cursorLine := doc.CaretPosition().Line

	// --- Draw Loop ---
	for screenY := 0; screenY < viewHeight; screenY++ {
		docLineIdx := screenY + viewY

		// --- A: Fill the entire line with the default style ---
		for fillX := 0; fillX < width; fillX++ {
			tuiManager.screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}

		// --- B: Draw Line Number Gutter ---
		if gutter > 0 && docLineIdx >= 0 && docLineIdx < lineCount {
			currentLineStyle := lineNumberStyle
			if docLineIdx == cursorLine {
				currentLineStyle = lineNumberStyle.Bold(true)
			}
			lineNumStr := fmt.Sprintf("%*d", maxDigits, docLineIdx+1)
			for i, r := range lineNumStr {
				if i < maxDigits {
					tuiManager.screen.SetContent(i, screenY, r, nil, currentLineStyle)
				}
			}
		}

		// Check if document line exists
		if docLineIdx < 0 || docLineIdx >= lineCount {
			// Line is below document content, already filled.
			continue
		}

		// --- C: Draw Document Text ---
		lineStr := strings.TrimRight(doc.LineText(docLineIdx), "\r\n")
		gr := uniseg.NewGraphemes(lineStr)

		currentVisualX := 0
		for gr.Next() { // Iterate through grapheme clusters
			clusterRunes := gr.Runes()
			clusterWidth := gr.Width()
			clusterVisualStart := currentVisualX
			clusterVisualEnd := currentVisualX + clusterWidth

			// Screen X relative to text area, accounting for horizontal
			// scroll and offset by the gutter width
			screenX := (clusterVisualStart - viewX) + gutter

			if clusterVisualEnd > viewX && clusterVisualStart < viewX+textAreaWidth {
				if screenX >= gutter && screenX < width {
					mainRune := clusterRunes[0]
					combining := clusterRunes[1:]

					if mainRune == '\t' {
						// Basic tab expansion
						tabSpaces := 4
						visualScreenX := currentVisualX - viewX + gutter
						spacesToDraw := tabSpaces - (visualScreenX % tabSpaces)
						for i := 0; i < spacesToDraw && screenX+i < width; i++ {
							tuiManager.screen.SetContent(screenX+i, screenY, ' ', nil, defaultStyle)
						}
					} else {
						tuiManager.screen.SetContent(screenX, screenY, mainRune, combining, defaultStyle)
						// Fill remaining cells for wide characters
						for cw := 1; cw < clusterWidth; cw++ {
							fillX := screenX + cw
							if fillX < width {
								tuiManager.screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
							}
						}
					}
				}
			}

			currentVisualX += clusterWidth
			// Stop drawing if we go past the visible text area edge
			if currentVisualX >= viewX+textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor positions the terminal cursor using visual width calculations.
func DrawCursor(tuiManager *TUI, doc *textctl.Document, viewY, viewX int) {
	pos := doc.CaretPosition()

	width, height := tuiManager.Size()
	gutter := gutterWidth(doc, width)

	lineStr := strings.TrimRight(doc.LineText(pos.Line), "\r\n")
	cursorVisualCol := calculateVisualColumn(lineStr, pos.Col)

	// Screen position based on viewport and visual column
	screenX := (cursorVisualCol - viewX) + gutter
	screenY := pos.Line - viewY

	statusBarHeight := 1
	viewHeight := height - statusBarHeight
	textAreaWidth := width - gutter

	// Check against screen boundaries AND ensure it's not within the gutter itself
	if screenX < gutter || screenX >= width || screenY < 0 || screenY >= viewHeight || viewHeight <= 0 || textAreaWidth <= 0 {
		tuiManager.screen.HideCursor()
	} else {
		tuiManager.screen.ShowCursor(screenX, screenY)
	}
}
