// Package tailor runs the resume tailoring pipeline.
package tailor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-tailor/internal/analysis"
	"resume-tailor/internal/artifacts"
	"resume-tailor/internal/extract"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/render"
	"resume-tailor/internal/runs"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/telemetry"
)

const (
	// PDFFileName is the download name of every generated resume.
	PDFFileName    = "tailored_resume.pdf"
	pdfContentType = "application/pdf"
)

// Editor rewrites a resume for a job description.
type Editor interface {
	Edit(ctx context.Context, resumeText, jobDescription string) (string, error)
}

// Analyzer compares resume and job keywords.
type Analyzer interface {
	Analyze(resumeText, jobDescription string) analysis.Report
}

// ArtifactWriter stores generated files.
type ArtifactWriter interface {
	Put(ctx context.Context, fileName, contentType string, data []byte) (artifacts.Artifact, error)
}

// Upload is a resume file submitted instead of pasted text.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Input is one tailoring request.
type Input struct {
	ResumeText     string
	JobDescription string
	Upload         *Upload
}

// Result is the outcome of a run that passed validation. Edit and render
// failures are carried here so the analysis is still returned.
type Result struct {
	RunID        string
	Source       string
	EditedResume string
	Analysis     analysis.Report
	Report       string
	Artifact     *artifacts.Artifact
	EditErr      *Error
	RenderErr    *Error
}

// Service orchestrates extraction, editing, analysis and PDF generation.
type Service struct {
	Editor    Editor
	Analyzer  Analyzer
	Artifacts ArtifactWriter
	Runs      runs.Repo
	Model     string

	// RenderPDF defaults to render.WritePDF.
	RenderPDF func(w io.Writer, text string) error
	Now       func() time.Time
}

// Run executes the pipeline. Returned errors are *Error with KindValidation,
// KindExtraction or KindInternal; model and render failures land in Result.
func (s *Service) Run(ctx context.Context, in Input) (res Result, err error) {
	start := s.now()
	res.RunID = uuid.NewString()
	res.Source = runs.SourceText
	if in.Upload != nil {
		res.Source = runs.SourceUpload
	}
	metrics.IncRunStarted()

	defer func() {
		if rec := recover(); rec != nil {
			err = newError(KindInternal, fmt.Errorf("panic: %v", rec), "Error: %v", rec)
			res = Result{RunID: res.RunID, Source: res.Source}
		}
		s.finish(ctx, start, res, err)
	}()

	resumeText := in.ResumeText
	if in.Upload != nil {
		text, extractErr := extract.ExtractTextFromBytes(ctx, in.Upload.Data, in.Upload.ContentType, in.Upload.FileName)
		if extractErr != nil {
			return Result{RunID: res.RunID, Source: res.Source}, newError(KindExtraction, extractErr, "Error reading PDF: %v", extractErr)
		}
		resumeText = text
	}

	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(in.JobDescription) == "" {
		return Result{RunID: res.RunID, Source: res.Source}, newError(KindValidation, nil, MsgMissingInput)
	}

	edited, editErr := s.Editor.Edit(ctx, resumeText, in.JobDescription)
	if editErr != nil {
		if !errors.Is(editErr, llm.ErrModelUnavailable) {
			editErr = llm.Unavailable(s.Model, editErr)
		}
		res.EditErr = newError(KindModel, editErr, "%s", editErr.Error())
	} else {
		res.EditedResume = edited
	}

	res.Analysis = s.Analyzer.Analyze(resumeText, in.JobDescription)
	res.Report = res.Analysis.Render()

	if res.EditErr == nil && strings.TrimSpace(res.EditedResume) != "" {
		art, renderErr := s.renderArtifact(ctx, res.EditedResume)
		if renderErr != nil {
			res.RenderErr = newError(KindRender, renderErr, "Error creating PDF: %v", renderErr)
		} else {
			res.Artifact = &art
		}
	}
	return res, nil
}

func (s *Service) renderArtifact(ctx context.Context, text string) (artifacts.Artifact, error) {
	renderPDF := s.RenderPDF
	if renderPDF == nil {
		renderPDF = render.WritePDF
	}
	var buf bytes.Buffer
	if err := renderPDF(&buf, text); err != nil {
		return artifacts.Artifact{}, err
	}
	if s.Artifacts == nil {
		return artifacts.Artifact{}, fmt.Errorf("%w: no artifact store configured", render.ErrRender)
	}
	return s.Artifacts.Put(ctx, PDFFileName, pdfContentType, buf.Bytes())
}

func (s *Service) finish(ctx context.Context, start time.Time, res Result, err error) {
	elapsed := s.now().Sub(start)
	status := statusOf(res, err)

	metrics.IncRunFinished(status)
	metrics.ObserveRunDurationMs(float64(elapsed.Milliseconds()))

	fields := map[string]any{
		"run_id":      res.RunID,
		"source":      res.Source,
		"status":      status,
		"model":       s.Model,
		"duration_ms": elapsed.Milliseconds(),
		"match_count": len(res.Analysis.Matching),
		"gap_count":   len(res.Analysis.Gaps),
	}
	if err != nil {
		fields["error"] = err.Error()
		telemetry.Warn("tailor.run.failed", fields)
	} else {
		telemetry.Info("tailor.run.complete", fields)
	}

	if s.Runs == nil {
		return
	}
	run := runs.Run{
		ID:         res.RunID,
		Source:     res.Source,
		Status:     status,
		MatchCount: len(res.Analysis.Matching),
		GapCount:   len(res.Analysis.Gaps),
		Model:      s.Model,
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  start.UTC(),
	}
	if res.Artifact != nil {
		run.ArtifactID = res.Artifact.ID
	}
	if recErr := s.Runs.Create(context.WithoutCancel(ctx), run); recErr != nil {
		telemetry.Warn("tailor.run.record_failed", map[string]any{
			"run_id": res.RunID,
			"error":  recErr.Error(),
		})
	}
}

func statusOf(res Result, err error) string {
	var pipeErr *Error
	switch {
	case errors.As(err, &pipeErr) && pipeErr.Kind == KindValidation:
		return runs.StatusRejected
	case err != nil:
		return runs.StatusFailed
	case res.EditErr != nil:
		return runs.StatusEditFailed
	case res.RenderErr != nil:
		return runs.StatusRenderFailed
	default:
		return runs.StatusSucceeded
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
