package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Auth        AuthConfig
	LLM         LLMConfig
	Terminology TerminologyConfig
	OCR         OCRConfig
	Upload      UploadConfig
	Pipeline    PipelineConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	// JWTSecret verifies tokens minted by the external identity provider.
	JWTSecret string
}

type LLMConfig struct {
	GroqKey          string
	GroqBaseURL      string
	AnthropicKey     string
	DefaultProvider  string
	DefaultModel     string
	FallbackProvider string
	FallbackModel    string
	MaxRetries       int
}

type TerminologyConfig struct {
	BaseURL        string
	MinScore       int
	MaxConcurrent  int
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

type OCRConfig struct {
	TesseractPath string
	Language      string
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type PipelineConfig struct {
	// StrictOCR aborts a prescription run on OCR failure instead of
	// degrading to empty text.
	StrictOCR   bool
	TargetWidth int
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxRetries, err := getEnvInt("LLM_MAX_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}

	minScore, err := getEnvInt("RXNORM_MIN_SCORE", 80)
	if err != nil {
		return nil, fmt.Errorf("invalid RXNORM_MIN_SCORE: %w", err)
	}

	maxConcurrent, err := getEnvInt("RXNORM_MAX_CONCURRENT", 4)
	if err != nil {
		return nil, fmt.Errorf("invalid RXNORM_MAX_CONCURRENT: %w", err)
	}

	maxUpload, err := getEnvInt("UPLOAD_MAX_MB", 16)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_MB: %w", err)
	}

	targetWidth, err := getEnvInt("PIPELINE_TARGET_WIDTH", 1200)
	if err != nil {
		return nil, fmt.Errorf("invalid PIPELINE_TARGET_WIDTH: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           port,
			AllowedOrigins: strings.Split(getEnv("SERVER_ALLOWED_ORIGINS", "*"), ","),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "vitalsync"),
			Timeout:  10 * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		},
		LLM: LLMConfig{
			GroqKey:          getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:      getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			DefaultProvider:  getEnv("LLM_DEFAULT_PROVIDER", "groq"),
			DefaultModel:     getEnv("LLM_DEFAULT_MODEL", "llama3-8b-8192"),
			FallbackProvider: getEnv("LLM_FALLBACK_PROVIDER", ""),
			FallbackModel:    getEnv("LLM_FALLBACK_MODEL", "claude-3-haiku-20240307"),
			MaxRetries:       maxRetries,
		},
		Terminology: TerminologyConfig{
			BaseURL:        getEnv("RXNORM_BASE_URL", "https://rxnav.nlm.nih.gov/REST"),
			MinScore:       minScore,
			MaxConcurrent:  maxConcurrent,
			RequestTimeout: 10 * time.Second,
			CacheTTL:       24 * time.Hour,
		},
		OCR: OCRConfig{
			TesseractPath: getEnv("TESSERACT_PATH", ""),
			Language:      getEnv("OCR_LANGUAGE", "eng"),
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes: int64(maxUpload) << 20,
		},
		Pipeline: PipelineConfig{
			StrictOCR:   getEnv("PIPELINE_STRICT_OCR", "") == "true",
			TargetWidth: targetWidth,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Mongo.URI == "" {
		missing = append(missing, "MONGODB_URI")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}
	if c.LLM.GroqKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
