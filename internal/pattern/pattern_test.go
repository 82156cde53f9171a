package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/mdnav/internal/pattern"
)

func TestLinePatterns(t *testing.T) {
	tests := []struct {
		name  string
		pat   *pattern.Pattern
		line  string
		match bool
	}{
		{"heading h1", pattern.Heading, "# Title\n", true},
		{"heading h6", pattern.Heading, "###### Deep\n", true},
		{"heading indented", pattern.Heading, "  ## Indented\n", true},
		{"heading no space", pattern.Heading, "#NoSpace\n", false},
		{"heading seven hashes", pattern.Heading, "####### Too deep\n", false},

		{"bullet star", pattern.ListItem, "* item\n", true},
		{"bullet dash", pattern.ListItem, "- item\n", true},
		{"bullet plus", pattern.ListItem, "+ item\n", true},
		{"numbered", pattern.ListItem, "12. item\n", true},
		{"nested bullet", pattern.ListItem, "    - nested\n", true},
		{"plain text", pattern.ListItem, "just text\n", false},
		{"star no space", pattern.ListItem, "*emphasis*\n", false},

		{"blockquote", pattern.Blockquote, "> quoted\n", true},
		{"blockquote indented", pattern.Blockquote, "  > quoted\n", true},
		{"blockquote bare", pattern.Blockquote, ">no space\n", false},

		{"table row", pattern.Table, "| a | b |\n", true},
		{"table indented", pattern.Table, "  | a |\n", true},
		{"not a table", pattern.Table, "a | b\n", false},

		{"fence plain", pattern.CodeFence, "```\n", true},
		{"fence info", pattern.CodeFence, "```go\n", true},
		{"fence long", pattern.CodeFence, "````\n", true},
		{"fence indented", pattern.CodeFence, "  ```\n", true},
		{"two backticks", pattern.CodeFence, "``\n", false},

		{"separator dashes", pattern.Separator, "---\n", true},
		{"separator spaced", pattern.Separator, "- - -\n", true},
		{"separator stars", pattern.Separator, "***\n", true},
		{"separator underscores", pattern.Separator, "___\n", true},
		{"separator long", pattern.Separator, "----------\n", true},
		{"two dashes", pattern.Separator, "--\n", false},

		{"checkbox unchecked", pattern.Checkbox, "- [ ] todo\n", true},
		{"checkbox checked", pattern.Checkbox, "- [x] done\n", true},
		{"checkbox upper", pattern.Checkbox, "* [X] done\n", true},
		{"checkbox numbered", pattern.Checkbox, "1. [ ] todo\n", true},
		{"list without box", pattern.Checkbox, "- plain item\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, tt.pat.Matches(tt.line))
		})
	}
}

func TestHeadingLevel(t *testing.T) {
	assert.True(t, pattern.HeadingLevel(2).Matches("## Sub\n"))
	assert.False(t, pattern.HeadingLevel(2).Matches("# Top\n"))
	assert.False(t, pattern.HeadingLevel(2).Matches("### Deeper\n"))
	assert.True(t, pattern.HeadingLevel(1).Matches("# Top\n"))
}

func TestInlinePatterns(t *testing.T) {
	tests := []struct {
		name string
		pat  *pattern.Pattern
		line string
		want []string
	}{
		{"link", pattern.Link, "see [docs](https://x.test) here", []string{"[docs](https://x.test)"}},
		{"image not link", pattern.Link, "![alt](img.png)", nil},
		{"image", pattern.Image, "![alt](img.png)", []string{"![alt](img.png)"}},
		{"bold stars", pattern.Bold, "a **strong** b", []string{"**strong**"}},
		{"bold underscores", pattern.Bold, "a __strong__ b", []string{"__strong__"}},
		{"italic", pattern.Italic, "a *slanted* b", []string{"*slanted*"}},
		{"strikethrough", pattern.Strikethrough, "a ~~gone~~ b", []string{"~~gone~~"}},
		{"footnote ref", pattern.Footnote, "claim[^1] made", []string{"[^1]"}},
		{"inline code", pattern.InlineCode, "run `go doc` now", []string{"`go doc`"}},
		{"math inline", pattern.Math, "it is $e^x$ here", []string{"$e^x$"}},
		{"math display", pattern.Math, "$$a+b$$", []string{"$$a+b$$"}},
		{"two links", pattern.Link, "[a](1) and [b](2)", []string{"[a](1)", "[b](2)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, loc := range tt.pat.FindAll(tt.line) {
				got = append(got, tt.line[loc[0]:loc[1]])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
