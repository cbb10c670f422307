package health

import (
	"context"
	"time"

	"resume-tailor/internal/llm"
)

const defaultCheckTimeout = 5 * time.Second

// ModelChecker reports model reachability.
type ModelChecker interface {
	CheckModel(ctx context.Context) llm.ModelStatus
}

// Report is the health payload.
type Report struct {
	OK    bool             `json:"ok"`
	Model *llm.ModelStatus `json:"model,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	Model   ModelChecker
	Timeout time.Duration
}

// NewService constructs a new health service.
func NewService(model ModelChecker) *Service {
	return &Service{Model: model, Timeout: defaultCheckTimeout}
}

// Status checks the model on demand. The service itself stays healthy when
// the model is down; callers read Model.Reachable and Model.Installed.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true}
	if s == nil || s.Model == nil {
		return report
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status := s.Model.CheckModel(ctx)
	report.Model = &status
	return report
}
