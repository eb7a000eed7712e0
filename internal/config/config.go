package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	GitHub    GitHubConfig
	Editorial EditorialConfig
	Pipeline  PipelineConfig
	Cover     CoverConfig
	Ledger    LedgerConfig
	Logging   LoggingConfig
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type GitHubConfig struct {
	Token      string
	TargetRepo string
	Branch     string
	PostDir    string
}

type EditorialConfig struct {
	EnableAutoTriage bool
	DefaultPersona   string
	EnabledPersonas  []string
	TargetLanguage   string
}

type PipelineConfig struct {
	MaxArticlesPerRun int
	CandidateLimit    int
	MinContentLength  int
	MaxArticleAge     time.Duration
	SourcesFile       string
}

type CoverConfig struct {
	UploadURL       string
	ImageBaseURL    string
	FreeImageURL    string
	ImagenModel     string
	DefaultCoverURL string
}

type LedgerConfig struct {
	Backend  string
	FilePath string
	Redis    RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_API_BASE", "https://api.hotker.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			EnableFallback: getEnvBool("GEMINI_ENABLE_FALLBACK", true),
		},
		GitHub: GitHubConfig{
			Token:      getEnv("GITHUB_TOKEN", ""),
			TargetRepo: getEnv("TARGET_REPO", "hotker/hexo-blog"),
			Branch:     getEnv("TARGET_BRANCH", "main"),
			PostDir:    getEnv("POST_DIR", "source/_posts"),
		},
		Editorial: EditorialConfig{
			EnableAutoTriage: getEnvBool("ENABLE_AUTO_TRIAGE", true),
			DefaultPersona:   getEnv("DEFAULT_PERSONA", "geek"),
			EnabledPersonas:  parseCommaSeparated(getEnv("ENABLED_PERSONAS", "")),
			TargetLanguage:   getEnv("TARGET_LANGUAGE", "zh"),
		},
		Pipeline: PipelineConfig{
			MaxArticlesPerRun: getEnvInt("MAX_ARTICLES_PER_RUN", 2),
			CandidateLimit:    getEnvInt("CANDIDATE_LIMIT", 5),
			MinContentLength:  getEnvInt("MIN_CONTENT_LENGTH", 200),
			MaxArticleAge:     time.Duration(getEnvInt("MAX_ARTICLE_AGE_HOURS", 72)) * time.Hour,
			SourcesFile:       getEnv("SOURCES_FILE", "sources.yaml"),
		},
		Cover: CoverConfig{
			UploadURL:       getEnv("COVER_UPLOAD_URL", ""),
			ImageBaseURL:    getEnv("COVER_IMAGE_BASE_URL", ""),
			FreeImageURL:    getEnv("COVER_FREE_IMAGE_URL", "https://image.pollinations.ai/prompt"),
			ImagenModel:     getEnv("COVER_IMAGEN_MODEL", "imagen-3.0-generate-002"),
			DefaultCoverURL: getEnv("DEFAULT_COVER_URL", ""),
		},
		Ledger: LedgerConfig{
			Backend:  getEnv("LEDGER_BACKEND", "file"),
			FilePath: getEnv("LEDGER_FILE", "state/published.json"),
			Redis: RedisConfig{
				Host:     getEnv("REDIS_HOST", "localhost"),
				Port:     getEnvInt("REDIS_PORT", 6379),
				Password: getEnv("REDIS_PASSWORD", ""),
				DB:       getEnvInt("REDIS_DB", 0),
			},
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is required")
	}
	if c.GitHub.TargetRepo == "" || !strings.Contains(c.GitHub.TargetRepo, "/") {
		return fmt.Errorf("TARGET_REPO must be in owner/repo form")
	}
	if c.Pipeline.MaxArticlesPerRun <= 0 {
		return fmt.Errorf("MAX_ARTICLES_PER_RUN must be positive")
	}
	switch c.Ledger.Backend {
	case "file", "redis":
	default:
		return fmt.Errorf("LEDGER_BACKEND must be file or redis, got %q", c.Ledger.Backend)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
