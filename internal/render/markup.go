package render

import (
	"regexp"
	"strings"
)

const (
	sectionPrefix = "SECTION:"
	entryPrefix   = "CVENTRY:"
	itemPrefix    = "CVITEM:"

	// ItemBullet prefixes every item block.
	ItemBullet = "• "
)

type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

// Applied in order; later rules strip whatever markup the earlier ones left.
var rewrites = []rewrite{
	{regexp.MustCompile(`\\section\{([^}]+)\}`), "SECTION: ${1}"},
	{regexp.MustCompile(`\\cventry\{([^}]+)\}\{([^}]+)\}\{([^}]+)\}\{([^}]+)\}\{([^}]+)\}\{([^}]*)\}`), "CVENTRY: ${1} | ${2} | ${3} | ${4}\n${6}"},
	{regexp.MustCompile(`\\cvitem\{([^}]+)\}\{([^}]+)\}`), "CVITEM: ${1}: ${2}"},
	{regexp.MustCompile(`\\[a-zA-Z]+\{[^}]*\}`), ""},
	{regexp.MustCompile(`\\[a-zA-Z]+`), ""},
}

// BlockKind identifies how a line is styled.
type BlockKind int

const (
	KindSpacer BlockKind = iota
	KindSection
	KindEntry
	KindItem
	KindBody
)

func (k BlockKind) String() string {
	switch k {
	case KindSpacer:
		return "spacer"
	case KindSection:
		return "section"
	case KindEntry:
		return "entry"
	case KindItem:
		return "item"
	default:
		return "body"
	}
}

// Block is one styled line of the document.
type Block struct {
	Kind BlockKind
	Text string
}

// Transform rewrites the supported markup commands into tagged lines and drops
// every other command. The fifth \cventry argument is not carried over.
func Transform(text string) string {
	for _, rw := range rewrites {
		text = rw.pattern.ReplaceAllString(text, rw.replacement)
	}
	return text
}

// Parse transforms text and classifies each line into a Block.
func Parse(text string) []Block {
	lines := strings.Split(Transform(text), "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			blocks = append(blocks, Block{Kind: KindSpacer})
		case strings.HasPrefix(line, sectionPrefix):
			blocks = append(blocks, Block{Kind: KindSection, Text: strings.TrimSpace(strings.TrimPrefix(line, sectionPrefix))})
		case strings.HasPrefix(line, entryPrefix):
			blocks = append(blocks, Block{Kind: KindEntry, Text: strings.TrimSpace(strings.TrimPrefix(line, entryPrefix))})
		case strings.HasPrefix(line, itemPrefix):
			blocks = append(blocks, Block{Kind: KindItem, Text: ItemBullet + strings.TrimSpace(strings.TrimPrefix(line, itemPrefix))})
		default:
			blocks = append(blocks, Block{Kind: KindBody, Text: line})
		}
	}
	return blocks
}
