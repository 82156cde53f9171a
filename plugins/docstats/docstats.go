// plugins/docstats/docstats.go
package docstats

import (
	"fmt"
	"strings"

	"github.com/bethropolis/mdnav/internal/pattern"
	"github.com/bethropolis/mdnav/internal/plugin" // Import the plugin interface definitions
)

// Ensure DocStats implements plugin.Plugin
var _ plugin.Plugin = (*DocStats)(nil)

// DocStats summarizes the loaded document: line, word and heading counts.
// Useful for getting a feel for an unfamiliar file before navigating it.
type DocStats struct {
	api plugin.EditorAPI // Store the API for later use
}

// New creates a new instance of the DocStats plugin.
func New() *DocStats {
	return &DocStats{}
}

// Name returns the unique name of the plugin.
func (p *DocStats) Name() string {
	return "DocStats"
}

// Initialize is called when the plugin loads.
// We register our command here.
func (p *DocStats) Initialize(api plugin.EditorAPI) error {
	p.api = api // Store the API

	err := api.RegisterCommand("stats", p.executeStats)
	if err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *DocStats) Shutdown() error {
	return nil
}

// executeStats is the function called when the :stats command runs.
func (p *DocStats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("docstats plugin not initialized with API")
	}

	doc, err := p.api.ActiveControl().DocumentRange()
	if err != nil {
		return fmt.Errorf("cannot read document: %w", err)
	}
	text := doc.Text()

	lines := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		lines++
	}
	words := len(strings.Fields(text))
	headings := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if pattern.Heading.Matches(line) {
			headings++
		}
	}

	msg := fmt.Sprintf("Lines: %d, Words: %d, Headings: %d", lines, words, headings)
	p.api.SetStatusMessage(msg)
	p.api.Speaker().Message(msg)

	return nil
}
