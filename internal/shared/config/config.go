package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSkillVocabulary is the skill list used when SKILL_VOCABULARY is unset.
var DefaultSkillVocabulary = []string{
	"python", "javascript", "react", "node.js", "sql", "aws", "docker",
	"kubernetes", "machine learning", "data analysis", "project management",
	"agile", "scrum", "communication", "leadership", "teamwork",
}

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	LogLevel        string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	DatabaseURL     string

	OllamaHost          string
	OllamaModel         string
	OllamaTimeout       time.Duration
	OllamaTemperature   float64
	OllamaTopP          float64
	OllamaMaxTokens     int
	OllamaRetryAttempts int
	PromptTemplateFile  string

	SkillVocabulary        []string
	MaxCapitalizedKeywords int

	ArtifactTTL        time.Duration
	ArtifactMaxEntries int
	ArtifactSweepEvery time.Duration
	MaxUploadBytes     int64

	TailorRatePerSec float64
	TailorBurst      int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL not set in production; run history stays in memory")
	}

	vocabulary := splitAndTrim(getEnv("SKILL_VOCABULARY", ""))
	if len(vocabulary) == 0 {
		vocabulary = append([]string(nil), DefaultSkillVocabulary...)
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:     dbURL,

		OllamaHost:          getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:         getEnv("OLLAMA_MODEL", "deepseek-r1:latest"),
		OllamaTimeout:       time.Duration(getEnvInt("OLLAMA_TIMEOUT_SECONDS", 300)) * time.Second,
		OllamaTemperature:   getEnvFloat("OLLAMA_TEMPERATURE", 0.3),
		OllamaTopP:          getEnvFloat("OLLAMA_TOP_P", 0.8),
		OllamaMaxTokens:     getEnvInt("OLLAMA_MAX_TOKENS", 1500),
		OllamaRetryAttempts: getEnvInt("OLLAMA_RETRY_ATTEMPTS", 0),
		PromptTemplateFile:  getEnv("PROMPT_TEMPLATE_FILE", ""),

		SkillVocabulary:        vocabulary,
		MaxCapitalizedKeywords: getEnvInt("MAX_CAPITALIZED_KEYWORDS", 5),

		ArtifactTTL:        getEnvDuration("ARTIFACT_TTL", time.Hour),
		ArtifactMaxEntries: getEnvInt("ARTIFACT_MAX_ENTRIES", 100),
		ArtifactSweepEvery: getEnvDuration("ARTIFACT_SWEEP_INTERVAL", time.Minute),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		TailorRatePerSec: getEnvFloat("TAILOR_RATE_PER_SEC", 0.2),
		TailorBurst:      getEnvInt("TAILOR_BURST", 3),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config env %s invalid float: %v", key, err)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config env %s invalid duration: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
