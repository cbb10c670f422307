// Package render turns lightly marked-up resume text into a styled PDF.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// ErrRender wraps every failure to produce a PDF.
var ErrRender = errors.New("render pdf")

// WritePDF renders text as a Letter-sized PDF into w.
func WritePDF(w io.Writer, text string) error {
	doc := fpdf.New("P", "pt", PageSize, "")
	doc.SetMargins(MarginLeft, MarginTop, MarginRight)
	doc.SetAutoPageBreak(true, MarginBottom)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := doc.GetPageSize()
	contentWidth := pageWidth - MarginLeft - MarginRight

	for _, block := range Parse(text) {
		if block.Kind == KindSpacer {
			doc.Ln(SpacerHeight)
			continue
		}
		style := StyleMap[block.Kind]
		if style.SpaceBefore > 0 && doc.GetY() > MarginTop {
			doc.Ln(style.SpaceBefore)
		}

		fontStyle := ""
		if style.Bold {
			fontStyle = "B"
		}
		doc.SetFont(style.Font, fontStyle, style.Size)
		doc.SetTextColor(style.Color[0], style.Color[1], style.Color[2])

		doc.SetLeftMargin(MarginLeft + style.Indent)
		doc.SetX(MarginLeft + style.Indent)
		doc.MultiCell(contentWidth-style.Indent, style.Leading, tr(block.Text), "", "L", false)
		doc.SetLeftMargin(MarginLeft)
		doc.SetX(MarginLeft)

		if style.SpaceAfter > 0 {
			doc.Ln(style.SpaceAfter)
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// WriteTempPDF renders text into a new file under dir (os.TempDir when empty).
// It returns the absolute path and a cleanup func that removes the file.
func WriteTempPDF(dir, text string) (string, func() error, error) {
	f, err := os.CreateTemp(dir, "resume-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("%w: create temp file: %v", ErrRender, err)
	}
	path, err := filepath.Abs(f.Name())
	if err != nil {
		path = f.Name()
	}
	cleanup := func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	if err := WritePDF(f, text); err != nil {
		_ = f.Close()
		_ = cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = cleanup()
		return "", nil, fmt.Errorf("%w: close temp file: %v", ErrRender, err)
	}
	return path, cleanup, nil
}
