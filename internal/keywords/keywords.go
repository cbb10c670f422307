// Package keywords pulls skill terms and capitalized words out of free text.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxCapitalized caps how many capitalized words contribute to a keyword set.
const DefaultMaxCapitalized = 5

var capitalizedWord = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// Extractor derives a keyword set from text.
type Extractor struct {
	// Vocabulary terms match as case-insensitive substrings.
	Vocabulary []string
	// MaxCapitalized limits capitalized-word matches taken in text order.
	// Zero uses DefaultMaxCapitalized; negative disables them.
	MaxCapitalized int
}

// New returns an Extractor over a copy of vocabulary.
func New(vocabulary []string, maxCapitalized int) *Extractor {
	vocab := make([]string, 0, len(vocabulary))
	for _, term := range vocabulary {
		if t := strings.ToLower(strings.TrimSpace(term)); t != "" {
			vocab = append(vocab, t)
		}
	}
	return &Extractor{Vocabulary: vocab, MaxCapitalized: maxCapitalized}
}

// Extract returns the sorted, de-duplicated union of vocabulary hits and the
// first capitalized words in text. Vocabulary hits are returned lower-cased;
// capitalized words keep their original casing.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return []string{}
	}
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	out := []string{}
	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}

	for _, term := range e.Vocabulary {
		term = strings.ToLower(term)
		if term != "" && strings.Contains(lower, term) {
			add(term)
		}
	}

	limit := e.MaxCapitalized
	if limit == 0 {
		limit = DefaultMaxCapitalized
	}
	if limit > 0 {
		for _, word := range capitalizedWord.FindAllString(text, limit) {
			add(word)
		}
	}

	sort.Strings(out)
	return out
}
