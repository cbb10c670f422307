package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts a text completion provider.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrModelUnavailable indicates the model endpoint could not serve a completion.
var ErrModelUnavailable = errors.New("model unavailable")

// UnavailableError describes a failed model call together with the steps to fix it.
type UnavailableError struct {
	Provider string
	Model    string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("Error connecting to %s: %v\n\nPlease ensure %s is running (ollama serve) and the %s model is installed.\nRun: ollama pull %s",
		e.Provider, e.Err, e.Provider, e.Model, e.Model)
}

// Unwrap exposes both ErrModelUnavailable and the transport cause.
func (e *UnavailableError) Unwrap() []error {
	return []error{ErrModelUnavailable, e.Err}
}

// Unavailable wraps err as an UnavailableError for the Ollama provider.
func Unavailable(model string, err error) error {
	return &UnavailableError{Provider: "Ollama", Model: model, Err: err}
}

// ModelStatus reports whether the configured model can be reached and is installed.
type ModelStatus struct {
	Host      string   `json:"host"`
	Model     string   `json:"name"`
	Reachable bool     `json:"reachable"`
	Installed bool     `json:"installed"`
	Available []string `json:"available"`
	Error     string   `json:"error,omitempty"`
}

// Ready reports whether completions are expected to succeed.
func (s ModelStatus) Ready() bool {
	return s.Reachable && s.Installed
}
