// Package analysis compares resume and job keyword sets.
package analysis

import (
	"fmt"
	"strings"
)

// MaxRenderedGaps bounds how many gap keywords appear in the rendered report.
const MaxRenderedGaps = 10

const noneIdentified = "None identified"

var recommendations = []string{
	"Emphasize matching skills in your experience descriptions",
	"Consider adding projects that demonstrate missing skills",
	"Use keywords from the job description in your resume",
	"Quantify your achievements where possible",
}

// KeywordExtractor yields a sorted keyword set for a text.
type KeywordExtractor interface {
	Extract(text string) []string
}

// Report holds the keyword comparison between a resume and a job description.
type Report struct {
	ResumeKeywords []string `json:"resumeKeywords"`
	JobKeywords    []string `json:"jobKeywords"`
	Matching       []string `json:"matching"`
	Gaps           []string `json:"gaps"`
}

// Analyzer builds reports from an injected keyword extractor.
type Analyzer struct {
	Keywords KeywordExtractor
}

// Analyze computes matching keywords (in both sets) and gaps (job only).
func (a *Analyzer) Analyze(resumeText, jobDescription string) Report {
	resumeKeywords := a.Keywords.Extract(resumeText)
	jobKeywords := a.Keywords.Extract(jobDescription)

	inResume := make(map[string]struct{}, len(resumeKeywords))
	for _, k := range resumeKeywords {
		inResume[k] = struct{}{}
	}

	matching := []string{}
	gaps := []string{}
	for _, k := range jobKeywords {
		if _, ok := inResume[k]; ok {
			matching = append(matching, k)
		} else {
			gaps = append(gaps, k)
		}
	}

	return Report{
		ResumeKeywords: resumeKeywords,
		JobKeywords:    jobKeywords,
		Matching:       matching,
		Gaps:           gaps,
	}
}

// Render formats the report as the fixed multi-line summary shown to users.
func (r Report) Render() string {
	gaps := r.Gaps
	if len(gaps) > MaxRenderedGaps {
		gaps = gaps[:MaxRenderedGaps]
	}

	var b strings.Builder
	b.WriteString("RESUME ANALYSIS\n\n")
	fmt.Fprintf(&b, "Matching Skills Found: %d\n", len(r.Matching))
	b.WriteString(joinOrNone(r.Matching))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Skills to Highlight: %d\n", len(r.Gaps))
	b.WriteString(joinOrNone(gaps))
	b.WriteString("\n\nRecommendations:\n")
	for _, rec := range recommendations {
		b.WriteString("- ")
		b.WriteString(rec)
		b.WriteString("\n")
	}
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return noneIdentified
	}
	return strings.Join(items, ", ")
}
