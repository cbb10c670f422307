package llm

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed prompts/tailor_v1.txt
var tailorPromptV1 string

// PromptInput carries the fields available to the prompt template.
type PromptInput struct {
	JobDescription string
	ResumeText     string
}

// Prompt is a parsed tailoring prompt template.
type Prompt struct {
	tmpl *template.Template
}

// DefaultPrompt returns the embedded tailoring prompt.
func DefaultPrompt() *Prompt {
	return &Prompt{tmpl: template.Must(template.New("tailor_v1").Parse(tailorPromptV1))}
}

// ParsePrompt parses a custom template body.
func ParsePrompt(name, body string) (*Prompt, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("prompt template %s is empty", name)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
	}
	return &Prompt{tmpl: tmpl}, nil
}

// LoadPrompt reads a template from path, or returns the embedded prompt when path is empty.
func LoadPrompt(path string) (*Prompt, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPrompt(), nil
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template: %w", err)
	}
	return ParsePrompt(path, string(body))
}

// Render fills the template.
func (p *Prompt) Render(input PromptInput) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, input); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
