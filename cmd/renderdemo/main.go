package main

// Render a markup resume to PDF:
//   go run ./cmd/renderdemo -in resume.tex -out ./out/sample_resume.pdf

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-tailor/internal/extract"
	"resume-tailor/internal/render"
)

const sampleMarkup = `Jordan Lee
Senior Backend Engineer | jordan.lee@example.com | Austin, TX

\section{Summary}
Backend engineer with 8+ years of experience building resilient APIs and data services.

\section{Experience}
\cventry{2021--Present}{Senior Backend Engineer}{Acme Logistics}{Austin, TX}{Full-time}{Owns the routing platform.}
\cvitem{Latency}{Designed a routing service that reduced shipment latency by 18%.}
\cvitem{Tracing}{Implemented distributed tracing to cut incident triage time by 35%.}
\cventry{2018--2021}{Backend Engineer}{Blue Harbor Systems}{Seattle, WA}{Full-time}{}
\cvitem{Pipelines}{Built event-driven ingestion pipelines for compliance data feeds.}

\section{Skills}
\cvitem{Languages}{Go, Python, SQL}
\cvitem{Platforms}{AWS, Docker, Kubernetes}
`

func main() {
	inPath := flag.String("in", "", "markup file to render (defaults to a built-in sample)")
	outPath := flag.String("out", "./out/sample_resume.pdf", "output path for generated PDF")
	flag.Parse()

	markup := sampleMarkup
	if strings.TrimSpace(*inPath) != "" {
		data, err := os.ReadFile(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
			os.Exit(1)
		}
		markup = string(data)
	}

	var buf bytes.Buffer
	if err := render.WritePDF(&buf, markup); err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if err := validateRenderedPDF(buf.Bytes(), markup); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s\n", *outPath)
}

// validateRenderedPDF reads the PDF back and checks every section heading survived.
func validateRenderedPDF(pdfBytes []byte, markup string) error {
	text, err := extract.ExtractPDF(pdfBytes)
	if err != nil {
		return err
	}
	for _, block := range render.Parse(markup) {
		if block.Kind != render.KindSection {
			continue
		}
		if !strings.Contains(text, block.Text) {
			return fmt.Errorf("section %q missing from rendered text", block.Text)
		}
	}
	if leftover := strings.Index(text, `\`); leftover != -1 {
		return fmt.Errorf("unresolved markup near offset %d", leftover)
	}
	return nil
}
