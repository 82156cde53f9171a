// internal/pattern/pattern.go
package pattern

import (
	"fmt"
	"regexp"
)

// Kind is the semantic category of a Markdown construct.
type Kind int

const (
	KindUnknown Kind = iota
	KindHeading
	KindListItem
	KindBlockquote
	KindTable
	KindCodeFence
	KindInlineCode
	KindLink
	KindImage
	KindSeparator
	KindCheckbox
	KindBold
	KindItalic
	KindStrikethrough
	KindFootnote
	KindMath
)

// acceptFunc vets a raw regex match against its surrounding bytes. The
// stdlib regexp engine has no lookaround, so constraints like "a backtick
// run must not be longer" or "a link must not be an image" are checked here
// instead of in the expression itself.
type acceptFunc func(text string, loc []int) bool

// Pattern is a compiled matcher for one Markdown construct.
type Pattern struct {
	kind   Kind
	re     *regexp.Regexp
	accept acceptFunc
}

// Kind returns the construct category this pattern recognizes.
func (p *Pattern) Kind() Kind { return p.kind }

// Matches reports whether the line contains (for block patterns: starts
// with) this construct. All block patterns are anchored with ^, so a plain
// search is equivalent to an anchored match.
func (p *Pattern) Matches(line string) bool {
	return len(p.FindAll(line)) > 0
}

// FindAll returns the byte-offset spans [start, end) of every accepted
// match in line, in order.
func (p *Pattern) FindAll(line string) [][]int {
	raw := p.re.FindAllStringIndex(line, -1)
	if raw == nil {
		return nil
	}
	if p.accept == nil {
		return raw
	}
	out := raw[:0]
	for _, loc := range raw {
		if p.accept(line, loc) {
			out = append(out, loc)
		}
	}
	return out
}

func notPrecededBy(b byte) acceptFunc {
	return func(text string, loc []int) bool {
		return loc[0] == 0 || text[loc[0]-1] != b
	}
}

// delimiterNeighborsDiffer rejects matches whose delimiter run extends
// beyond the match, e.g. `*a*` inside `**a**` or `x` inside ``x``.
func delimiterNeighborsDiffer(text string, loc []int) bool {
	d := text[loc[0]]
	if loc[0] > 0 && text[loc[0]-1] == d {
		return false
	}
	if loc[1] < len(text) && text[loc[1]] == d {
		return false
	}
	return true
}

var (
	Heading    = &Pattern{kind: KindHeading, re: regexp.MustCompile(`^\s*#{1,6}\s`)}
	ListItem   = &Pattern{kind: KindListItem, re: regexp.MustCompile(`^\s*([*\-+]|\d+\.)\s`)}
	Blockquote = &Pattern{kind: KindBlockquote, re: regexp.MustCompile(`^\s*>\s`)}
	Table      = &Pattern{kind: KindTable, re: regexp.MustCompile(`^\s*\|`)}
	CodeFence  = &Pattern{kind: KindCodeFence, re: regexp.MustCompile("^\\s*`{3,}")}
	Separator  = &Pattern{kind: KindSeparator, re: regexp.MustCompile(`^\s*(?:-\s*-\s*-|\*\s*\*\s*\*|_\s*_\s*_)[-*_\s]*$`)}
	Checkbox   = &Pattern{kind: KindCheckbox, re: regexp.MustCompile(`^\s*(?:[*\-+]|\d+\.)\s*\[[ xX]\]`)}

	InlineCode = &Pattern{
		kind:   KindInlineCode,
		re:     regexp.MustCompile("`[^`\n]+`"),
		accept: delimiterNeighborsDiffer,
	}
	Link = &Pattern{
		kind:   KindLink,
		re:     regexp.MustCompile(`\[.+?\]\(.+?\)`),
		accept: notPrecededBy('!'),
	}
	Image = &Pattern{kind: KindImage, re: regexp.MustCompile(`!\[.+?\]\(.+?\)`)}
	Bold  = &Pattern{kind: KindBold, re: regexp.MustCompile(`\*\*\S(?:.*?\S)?\*\*|__\S(?:.*?\S)?__`)}
	Italic = &Pattern{
		kind:   KindItalic,
		re:     regexp.MustCompile(`\*[^\s*](?:[^*]*[^\s*])?\*|_[^\s_](?:[^_]*[^\s_])?_`),
		accept: delimiterNeighborsDiffer,
	}
	Strikethrough = &Pattern{kind: KindStrikethrough, re: regexp.MustCompile(`~~\S(?:.*?\S)?~~`)}
	Footnote      = &Pattern{kind: KindFootnote, re: regexp.MustCompile(`\[\^.+?\]:?`)}
	Math          = &Pattern{kind: KindMath, re: regexp.MustCompile(`\$\$[^$]+\$\$|\$[^$\n]+\$`)}
)

// headingLevels holds the per-level heading matchers, built once at startup.
var headingLevels [6]*Pattern

func init() {
	for i := range headingLevels {
		headingLevels[i] = &Pattern{
			kind: KindHeading,
			re:   regexp.MustCompile(fmt.Sprintf(`^\s*#{%d}\s`, i+1)),
		}
	}
}

// HeadingLevel returns the matcher for headings of exactly the given level (1-6).
func HeadingLevel(level int) *Pattern {
	if level < 1 || level > 6 {
		panic(fmt.Sprintf("pattern: heading level %d out of range", level))
	}
	return headingLevels[level-1]
}
