package health

import (
	"context"
	"testing"

	"resume-tailor/internal/llm"
)

type stubChecker struct {
	status      llm.ModelStatus
	hasDeadline bool
}

func (s *stubChecker) CheckModel(ctx context.Context) llm.ModelStatus {
	_, s.hasDeadline = ctx.Deadline()
	return s.status
}

func TestStatusWithoutChecker(t *testing.T) {
	report := NewService(nil).Status(context.Background())
	if !report.OK || report.Model != nil {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestStatusReportsUnreachableModel(t *testing.T) {
	checker := &stubChecker{status: llm.ModelStatus{Host: "http://localhost:11434", Model: "m", Error: "connection refused"}}
	report := NewService(checker).Status(context.Background())

	if !report.OK {
		t.Fatal("service must stay ok when the model is down")
	}
	if report.Model == nil || report.Model.Reachable || report.Model.Error == "" {
		t.Fatalf("unexpected model status %+v", report.Model)
	}
	if !checker.hasDeadline {
		t.Fatal("expected bounded check")
	}
}
