// Package ollama adapts a local Ollama server to the llm.Client contract.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"resume-tailor/internal/llm"
)

const (
	DefaultHost  = "http://localhost:11434"
	DefaultModel = "deepseek-r1:latest"
)

// Options configures the client. Zero values fall back to defaults.
type Options struct {
	Host        string
	Model       string
	Timeout     time.Duration
	Temperature float64
	TopP        float64
	MaxTokens   int
	HTTPClient  *http.Client
}

// Client sends single-turn chat completions to Ollama.
type Client struct {
	api         *api.Client
	host        string
	model       string
	temperature float64
	topP        float64
	maxTokens   int
}

// New constructs a Client for the configured host and model.
func New(opts Options) (*Client, error) {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = DefaultHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		api:         api.NewClient(u, httpClient),
		host:        u.String(),
		model:       model,
		temperature: opts.Temperature,
		topP:        opts.TopP,
		maxTokens:   opts.MaxTokens,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Host returns the normalized server URL.
func (c *Client) Host() string {
	return c.host
}

// Complete sends prompt as a single user message and returns the reply text.
// Transport and endpoint failures wrap llm.ErrModelUnavailable.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream:  &stream,
		Options: c.options(),
	}

	var reply strings.Builder
	err := c.api.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", llm.Unavailable(c.model, describe(err))
	}
	return reply.String(), nil
}

func (c *Client) options() map[string]any {
	opts := make(map[string]any)
	if c.temperature > 0 {
		opts["temperature"] = c.temperature
	}
	if c.topP > 0 {
		opts["top_p"] = c.topP
	}
	if c.maxTokens > 0 {
		opts["num_predict"] = c.maxTokens
	}
	return opts
}

// CheckModel asks the server for its installed models. It never returns an
// error; failures are reported in the status.
func (c *Client) CheckModel(ctx context.Context) llm.ModelStatus {
	status := llm.ModelStatus{Host: c.host, Model: c.model, Available: []string{}}

	list, err := c.api.List(ctx)
	if err != nil {
		status.Error = describe(err).Error()
		return status
	}
	status.Reachable = true

	for _, m := range list.Models {
		name := m.Name
		if name == "" {
			name = m.Model
		}
		status.Available = append(status.Available, name)
		if sameModel(name, c.model) {
			status.Installed = true
		}
	}
	sort.Strings(status.Available)
	if !status.Installed {
		status.Error = fmt.Sprintf("model %s is not installed; run: ollama pull %s", c.model, c.model)
	}
	return status
}

// sameModel treats a missing tag as ":latest".
func sameModel(a, b string) bool {
	return withTag(a) == withTag(b)
}

func withTag(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.Contains(name, ":") {
		return name + ":latest"
	}
	return name
}

func describe(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("ollama http status %d: %w", statusErr.StatusCode, err)
	}
	return err
}
