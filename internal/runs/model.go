package runs

import "time"

// Run status values.
const (
	StatusSucceeded    = "succeeded"
	StatusEditFailed   = "edit_failed"
	StatusRenderFailed = "render_failed"
	StatusRejected     = "rejected"
	StatusFailed       = "failed"
)

// Source values describe where the resume text came from.
const (
	SourceText   = "text"
	SourceUpload = "upload"
)

// Run is the metadata recorded for one tailoring pipeline run. It never holds
// resume or job description text.
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Status     string    `json:"status"`
	MatchCount int       `json:"matchCount"`
	GapCount   int       `json:"gapCount"`
	ArtifactID string    `json:"artifactId,omitempty"`
	Model      string    `json:"model"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}
