package llm

import (
	"regexp"
	"strings"
)

var (
	thinkBlock      = regexp.MustCompile(`(?s)<think>.*?</think>`)
	anyTag          = regexp.MustCompile(`<[^>]+>`)
	resumeStart     = regexp.MustCompile(`(?i)NAME:`)
	excessBlankRuns = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// CleanOutput strips reasoning blocks and tags from a model reply, drops any
// preamble before the first NAME: marker and collapses runs of blank lines.
func CleanOutput(text string) string {
	text = thinkBlock.ReplaceAllString(text, "")
	text = anyTag.ReplaceAllString(text, "")
	if loc := resumeStart.FindStringIndex(text); loc != nil {
		text = text[loc[0]:]
	}
	text = excessBlankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
