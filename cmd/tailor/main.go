package main

// One-shot tailoring run from files:
//   go run ./cmd/tailor -resume resume.pdf -jd job.txt -out tailored.pdf

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume-tailor/internal/bootstrap"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/tailor"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf, docx or txt)")
	jdPath := flag.String("jd", "", "Path to job description file")
	outPath := flag.String("out", "", "Path to write the tailored PDF (optional)")
	model := flag.String("model", cfg.OllamaModel, "Ollama model")
	host := flag.String("host", cfg.OllamaHost, "Ollama host")
	asJSON := flag.Bool("json", false, "Print the full result as JSON")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" || strings.TrimSpace(*jdPath) == "" {
		exitErr("both -resume and -jd are required")
	}

	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}

	cfg.OllamaModel = *model
	cfg.OllamaHost = *host
	cfg.DatabaseURL = ""
	cfg.ObjectStoreType = "local"
	tmpDir, err := os.MkdirTemp("", "resume-tailor-*")
	if err != nil {
		exitErr(fmt.Sprintf("temp dir: %v", err))
	}
	defer os.RemoveAll(tmpDir)
	cfg.LocalStoreDir = tmpDir

	app, err := bootstrap.Build(cfg)
	if err != nil {
		exitErr(fmt.Sprintf("bootstrap: %v", err))
	}

	ctx := context.Background()
	res, err := app.TailorService.Run(ctx, tailor.Input{
		JobDescription: string(jdBytes),
		Upload: &tailor.Upload{
			FileName: filepath.Base(*resumePath),
			Data:     resumeBytes,
		},
	})
	if err != nil {
		exitErr(err.Error())
	}

	if res.Artifact != nil {
		if *outPath != "" {
			if err := copyArtifact(ctx, app, res.Artifact.ID, *outPath); err != nil {
				exitErr(fmt.Sprintf("write pdf: %v", err))
			}
		}
		_ = app.Artifacts.Release(ctx, res.Artifact.ID)
	}

	if *asJSON {
		payload, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			exitErr(fmt.Sprintf("format json: %v", err))
		}
		fmt.Println(string(payload))
		return
	}

	if res.EditErr != nil {
		fmt.Println(res.EditErr.Message)
	} else {
		fmt.Println(res.EditedResume)
	}
	fmt.Println()
	fmt.Println(res.Report)
	if res.RenderErr != nil {
		fmt.Println()
		fmt.Println(res.RenderErr.Message)
	}
	if res.Artifact != nil && *outPath != "" {
		fmt.Printf("\nPDF written to %s\n", *outPath)
	}
}

func copyArtifact(ctx context.Context, app *bootstrap.App, id, outPath string) error {
	_, rc, err := app.Artifacts.Open(ctx, id)
	if err != nil {
		return err
	}
	defer rc.Close()

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
