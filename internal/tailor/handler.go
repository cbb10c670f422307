package tailor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/analysis"
	"resume-tailor/internal/artifacts"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Runner executes a tailoring request.
type Runner interface {
	Run(ctx context.Context, in Input) (Result, error)
}

// ArtifactStore serves and releases generated files.
type ArtifactStore interface {
	Open(ctx context.Context, id string) (artifacts.Artifact, io.ReadCloser, error)
	Release(ctx context.Context, id string) error
}

// Handler wires HTTP handlers to the tailoring service.
type Handler struct {
	Svc            Runner
	Artifacts      ArtifactStore
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc Runner, store ArtifactStore, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, Artifacts: store, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches tailoring routes. Middleware in limit is applied to
// the run endpoint only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limit ...gin.HandlerFunc) {
	run := append(append([]gin.HandlerFunc{}, limit...), h.run)
	rg.POST("/tailor", run...)
	rg.GET("/artifacts/:id/download", h.download)
	rg.DELETE("/artifacts/:id", h.release)
}

type tailorRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type artifactResponse struct {
	artifacts.Artifact
	DownloadURL string `json:"downloadUrl"`
}

type tailorResponse struct {
	RunID        string            `json:"runId"`
	Source       string            `json:"source"`
	EditedResume string            `json:"editedResume"`
	Analysis     string            `json:"analysis"`
	Keywords     analysis.Report   `json:"keywords"`
	Artifact     *artifactResponse `json:"artifact,omitempty"`
	EditError    *errorBody        `json:"editError,omitempty"`
	RenderError  *errorBody        `json:"renderError,omitempty"`
}

func (h *Handler) run(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	in, err := h.bindInput(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large",
				"request exceeds "+strconv.FormatInt(h.MaxUploadBytes, 10)+" bytes", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	res, err := h.Svc.Run(c.Request.Context(), in)
	if err != nil {
		var pipeErr *Error
		if !errors.As(err, &pipeErr) {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Error: "+err.Error(), nil)
			return
		}
		c.Set(middleware.RunIDKey, res.RunID)
		switch pipeErr.Kind {
		case KindValidation:
			respond.Error(c, http.StatusBadRequest, "validation_error", pipeErr.Message, nil)
		case KindExtraction:
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_error", pipeErr.Message, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", pipeErr.Message, nil)
		}
		return
	}
	c.Set(middleware.RunIDKey, res.RunID)

	resp := tailorResponse{
		RunID:        res.RunID,
		Source:       res.Source,
		EditedResume: res.EditedResume,
		Analysis:     res.Report,
		Keywords:     res.Analysis,
		EditError:    toErrorBody(res.EditErr),
		RenderError:  toErrorBody(res.RenderErr),
	}
	if res.Artifact != nil {
		resp.Artifact = &artifactResponse{
			Artifact:    *res.Artifact,
			DownloadURL: downloadURL(c, res.Artifact.ID),
		}
	}
	respond.OK(c, resp)
}

func (h *Handler) bindInput(c *gin.Context) (Input, error) {
	contentType := c.ContentType()
	if contentType == gin.MIMEJSON {
		var req tailorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return Input{}, err
			}
			return Input{}, errors.New("invalid request body")
		}
		return Input{ResumeText: req.ResumeText, JobDescription: req.JobDescription}, nil
	}

	if err := c.Request.ParseMultipartForm(h.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Input{}, err
		}
		return Input{}, errors.New("invalid form body")
	}

	in := Input{
		ResumeText:     c.PostForm("resumeText"),
		JobDescription: c.PostForm("jobDescription"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return in, nil
		}
		return Input{}, errors.New("unable to read file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return Input{}, errors.New("unable to read file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Input{}, errors.New("unable to read file")
	}
	in.Upload = &Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}
	return in, nil
}

func (h *Handler) download(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	art, rc, err := h.Artifacts.Open(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, artifacts.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "artifact not found or expired", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open artifact", nil)
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, art.SizeBytes, art.ContentType, rc, map[string]string{
		"Content-Disposition": `attachment; filename="` + art.FileName + `"`,
	})
}

func (h *Handler) release(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := h.Artifacts.Release(c.Request.Context(), id); err != nil {
		if errors.Is(err, artifacts.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "artifact not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to release artifact", nil)
		return
	}
	respond.NoContent(c)
}

func toErrorBody(err *Error) *errorBody {
	if err == nil {
		return nil
	}
	return &errorBody{Code: string(err.Kind), Message: err.Message}
}

func downloadURL(c *gin.Context, id string) string {
	prefix := strings.TrimSuffix(c.FullPath(), "/tailor")
	return prefix + "/artifacts/" + id + "/download"
}

