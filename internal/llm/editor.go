package llm

import (
	"context"
	"errors"
	"time"

	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/telemetry"
)

// Editor rewrites a resume for a job description through a Client.
type Editor struct {
	Client Client
	Prompt *Prompt
	// Model labels metrics and logs.
	Model string
}

// NewEditor returns an Editor; a nil prompt uses the embedded template.
func NewEditor(client Client, prompt *Prompt, model string) *Editor {
	if prompt == nil {
		prompt = DefaultPrompt()
	}
	return &Editor{Client: client, Prompt: prompt, Model: model}
}

// Edit sends the filled prompt to the model and returns the cleaned reply.
func (e *Editor) Edit(ctx context.Context, resumeText, jobDescription string) (string, error) {
	if e.Client == nil {
		return "", Unavailable(e.Model, errors.New("no model client configured"))
	}
	prompt, err := e.Prompt.Render(PromptInput{JobDescription: jobDescription, ResumeText: resumeText})
	if err != nil {
		return "", err
	}

	start := time.Now()
	raw, err := e.Client.Complete(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveModelRequest(e.Model, "error", elapsed)
		telemetry.Warn("llm.edit.failed", map[string]any{
			"model":       e.Model,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err.Error(),
		})
		return "", err
	}
	metrics.ObserveModelRequest(e.Model, "ok", elapsed)

	cleaned := CleanOutput(raw)
	telemetry.Info("llm.edit.complete", map[string]any{
		"model":       e.Model,
		"duration_ms": elapsed.Milliseconds(),
		"raw_len":     len(raw),
		"cleaned_len": len(cleaned),
	})
	return cleaned, nil
}
