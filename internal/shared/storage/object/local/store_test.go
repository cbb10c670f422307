package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"resume-tailor/internal/shared/storage/object"
)

func TestSaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	n, err := store.Save(ctx, "artifacts/a.pdf", "application/pdf", strings.NewReader("%PDF-1.3"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 bytes written, got %d", n)
	}

	rc, err := store.Open(ctx, "artifacts/a.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "%PDF-1.3" {
		t.Fatalf("unexpected body %q", body)
	}

	if err := store.Delete(ctx, "artifacts/a.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Open(ctx, "artifacts/a.pdf"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "artifacts/a.pdf"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../escape.pdf", "/etc/passwd", ""} {
		if _, err := store.Save(context.Background(), key, "", strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
