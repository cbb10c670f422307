package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ollama/ollama/api"

	"resume-tailor/internal/llm"
)

type mockServer struct {
	*httptest.Server
	mu       sync.Mutex
	lastChat api.ChatRequest
}

func (m *mockServer) last() api.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastChat
}

func newMockOllamaServer(t *testing.T, reply string, models []string) *mockServer {
	t.Helper()
	m := &mockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat":
			var req api.ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode chat request: %v", err)
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			m.mu.Lock()
			m.lastChat = req
			m.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(api.ChatResponse{
				Model:   req.Model,
				Message: api.Message{Role: "assistant", Content: reply},
				Done:    true,
			})
		case "/api/tags":
			var list api.ListResponse
			for _, name := range models {
				list.Models = append(list.Models, api.ListModelResponse{Name: name, Model: name})
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(list)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	t.Cleanup(m.Close)
	return m
}

func TestCompleteSendsSingleUserMessage(t *testing.T) {
	srv := newMockOllamaServer(t, "NAME: Jane", nil)
	client, err := New(Options{Host: srv.URL, Model: "deepseek-r1:latest", Temperature: 0.3, TopP: 0.8, MaxTokens: 1500, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	out, err := client.Complete(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "NAME: Jane" {
		t.Fatalf("unexpected reply %q", out)
	}

	req := srv.last()
	if req.Model != "deepseek-r1:latest" {
		t.Fatalf("unexpected model %q", req.Model)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "the prompt" {
		t.Fatalf("unexpected messages %+v", req.Messages)
	}
	if req.Stream == nil || *req.Stream {
		t.Fatalf("expected stream=false, got %v", req.Stream)
	}
	if req.Options["temperature"] != 0.3 || req.Options["top_p"] != 0.8 || req.Options["num_predict"] != float64(1500) {
		t.Fatalf("unexpected options %+v", req.Options)
	}
}

func TestCompleteServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'missing' not found"}`))
	}))
	defer srv.Close()

	client, err := New(Options{Host: srv.URL, Model: "missing"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Complete(context.Background(), "p")
	if !errors.Is(err, llm.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "ollama pull missing") {
		t.Fatalf("expected remediation in %q", err.Error())
	}
}

func TestCompleteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(Options{Host: url, Model: "m", Timeout: time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Complete(context.Background(), "p"); !errors.Is(err, llm.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestCheckModel(t *testing.T) {
	srv := newMockOllamaServer(t, "", []string{"llama3.2:latest", "deepseek-r1:latest"})

	client, err := New(Options{Host: srv.URL, Model: "deepseek-r1"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	status := client.CheckModel(context.Background())
	if !status.Reachable || !status.Installed || status.Error != "" {
		t.Fatalf("expected ready status, got %+v", status)
	}
	if !reflect.DeepEqual(status.Available, []string{"deepseek-r1:latest", "llama3.2:latest"}) {
		t.Fatalf("unexpected available list %v", status.Available)
	}
}

func TestCheckModelNotInstalled(t *testing.T) {
	srv := newMockOllamaServer(t, "", []string{"llama3.2:latest"})

	client, _ := New(Options{Host: srv.URL, Model: "deepseek-r1:latest"})
	status := client.CheckModel(context.Background())
	if !status.Reachable || status.Installed {
		t.Fatalf("expected reachable but not installed, got %+v", status)
	}
	if !strings.Contains(status.Error, "ollama pull deepseek-r1:latest") {
		t.Fatalf("unexpected error %q", status.Error)
	}
}

func TestCheckModelUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, _ := New(Options{Host: url, Model: "m", Timeout: time.Second})
	status := client.CheckModel(context.Background())
	if status.Reachable || status.Installed || status.Error == "" {
		t.Fatalf("expected unreachable status, got %+v", status)
	}
	if status.Available == nil {
		t.Fatal("available should be an empty list, not nil")
	}
}

func TestNewDefaults(t *testing.T) {
	client, err := New(Options{Host: "localhost:11434"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Model() != DefaultModel {
		t.Fatalf("expected default model, got %q", client.Model())
	}
	if client.Host() != "http://localhost:11434" {
		t.Fatalf("unexpected host %q", client.Host())
	}
	if len(client.options()) != 0 {
		t.Fatalf("expected no options for zero values, got %v", client.options())
	}
}
