package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/analysis"
	"resume-tailor/internal/artifacts"
	"resume-tailor/internal/keywords"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/llm/ollama"
	"resume-tailor/internal/runs"
	"resume-tailor/internal/services/health"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/shared/server"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/storage/db"
	"resume-tailor/internal/shared/storage/object"
	localstore "resume-tailor/internal/shared/storage/object/local"
	s3store "resume-tailor/internal/shared/storage/object/s3"
	"resume-tailor/internal/shared/telemetry"
	"resume-tailor/internal/tailor"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	Store         object.ObjectStore
	Artifacts     *artifacts.Store
	RunsRepo      runs.Repo
	Model         *ollama.Client
	Editor        *llm.Editor
	TailorService *tailor.Service
	TailorHandler *tailor.Handler
	RunsHandler   *runs.Handler
	Health        *health.Service
}

// Build prepares dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.SetLevel(cfg.LogLevel)
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		TailorHandler: app.TailorHandler,
		RunsHandler:   app.RunsHandler,
		Health:        app.Health,
		RateLimiter:   middleware.NewRateLimiter(nil),
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "migrations failed", "error": err.Error()})
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := metrics.RegisterDBStats(sqlDB, "runs"); err != nil {
		telemetry.Warn("bootstrap.db.metrics", map[string]any{"error": err.Error()})
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("s3 object store: %w", err)
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	cfg := app.Config

	if app.DB != nil {
		app.RunsRepo = &runs.PGRepo{DB: app.DB}
	} else {
		app.RunsRepo = runs.NewMemoryRepo()
	}

	model, err := ollama.New(ollama.Options{
		Host:        cfg.OllamaHost,
		Model:       cfg.OllamaModel,
		Timeout:     cfg.OllamaTimeout,
		Temperature: cfg.OllamaTemperature,
		TopP:        cfg.OllamaTopP,
		MaxTokens:   cfg.OllamaMaxTokens,
	})
	if err != nil {
		return err
	}
	prompt, err := llm.LoadPrompt(cfg.PromptTemplateFile)
	if err != nil {
		return err
	}

	app.Model = model
	app.Editor = llm.NewEditor(llm.WithRetry(model, cfg.OllamaRetryAttempts, 0), prompt, model.Model())
	app.Artifacts = artifacts.NewStore(app.Store, cfg.ArtifactTTL, cfg.ArtifactMaxEntries)
	app.TailorService = &tailor.Service{
		Editor:    app.Editor,
		Analyzer:  &analysis.Analyzer{Keywords: keywords.New(cfg.SkillVocabulary, cfg.MaxCapitalizedKeywords)},
		Artifacts: app.Artifacts,
		Runs:      app.RunsRepo,
		Model:     model.Model(),
	}
	app.TailorHandler = tailor.NewHandler(app.TailorService, app.Artifacts, cfg.MaxUploadBytes)
	app.RunsHandler = runs.NewHandler(app.RunsRepo)
	app.Health = health.NewService(model)
	return nil
}
