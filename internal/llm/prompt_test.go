package llm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPromptRender(t *testing.T) {
	out, err := DefaultPrompt().Render(PromptInput{JobDescription: "Go engineer role", ResumeText: "Jane Doe resume"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	jobIdx := strings.Index(out, "Go engineer role")
	resumeIdx := strings.Index(out, "Jane Doe resume")
	if jobIdx < 0 || resumeIdx < 0 || jobIdx > resumeIdx {
		t.Fatalf("expected job description before resume, got %q", out)
	}
	for _, marker := range []string{"NAME:", "EMAIL:", "EXPERIENCE:", "SKILLS:", "Start with NAME: immediately:"} {
		if !strings.Contains(out, marker) {
			t.Fatalf("expected %q in prompt", marker)
		}
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte("JD={{.JobDescription}} CV={{.ResumeText}}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := LoadPrompt(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out, err := p.Render(PromptInput{JobDescription: "a", ResumeText: "b"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "JD=a CV=b" {
		t.Fatalf("unexpected prompt %q", out)
	}
}

func TestLoadPromptErrors(t *testing.T) {
	if _, err := LoadPrompt(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected missing file error")
	}
	if _, err := ParsePrompt("bad", "{{.JobDescription"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := ParsePrompt("empty", "  "); err == nil {
		t.Fatal("expected empty template error")
	}
	p, err := LoadPrompt("")
	if err != nil || p == nil {
		t.Fatalf("expected default prompt, got %v", err)
	}
}

func TestRenderUnknownFieldFails(t *testing.T) {
	p, err := ParsePrompt("unknown", "{{.Salary}}")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := p.Render(PromptInput{}); err == nil {
		t.Fatal("expected render error for unknown field")
	}
}
