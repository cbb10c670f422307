package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		doc.Cell(200, 14, text)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	return buf.Bytes()
}

func TestExtractPDFJoinsPages(t *testing.T) {
	data := buildPDF(t, "Hello", "World")

	text, err := ExtractTextFromBytes(context.Background(), data, "application/pdf", "resume.pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text == "" {
		t.Fatal("expected non-empty text")
	}
	if text != strings.TrimSpace(text) {
		t.Fatalf("expected trimmed text, got %q", text)
	}
	first := strings.Index(text, "Hello")
	second := strings.Index(text, "World")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected pages in order, got %q", text)
	}
	if !strings.Contains(text[first:second], "\n") {
		t.Fatalf("expected newline between pages, got %q", text)
	}
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("%PDF-1.4 not really"), "application/pdf", "broken.pdf")
	if err == nil {
		t.Fatal("expected error for malformed pdf")
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestExtractPlainText(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("  Jane Doe\nEngineer \n"), "", "resume.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Jane Doe\nEngineer" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if !strings.Contains(err.Error(), "application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		fileName string
		data     []byte
		want     string
	}{
		{name: "declared pdf", mimeType: "application/pdf; charset=binary", want: MimePDF},
		{name: "extension docx", mimeType: "application/octet-stream", fileName: "cv.DOCX", want: MimeDOCX},
		{name: "magic bytes", fileName: "upload", data: []byte("%PDF-1.7\n"), want: MimePDF},
		{name: "sniffed text", fileName: "upload", data: []byte("plain resume text"), want: MimePlain},
		{name: "declared other", mimeType: "image/png", fileName: "photo", data: []byte{0x89, 'P', 'N', 'G'}, want: "image/png"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMimeType(tt.mimeType, tt.fileName, tt.data); got != tt.want {
				t.Fatalf("NormalizeMimeType() = %q, want %q", got, tt.want)
			}
		})
	}
}
