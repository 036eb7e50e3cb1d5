package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	OpenAIAPIKey       string  `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIModel        string  `envconfig:"OPENAI_MODEL" default:"gpt-4-turbo-preview"`
	OpenAITemperature  float32 `envconfig:"OPENAI_TEMPERATURE" default:"0.7"`
	OpenAIMaxTokens    int     `envconfig:"OPENAI_MAX_TOKENS" default:"2000"`
	EmbeddingModel     string  `envconfig:"EMBEDDING_MODEL" default:"text-embedding-3-small"`
	EmbeddingDimension int     `envconfig:"EMBEDDING_DIMENSION" default:"1536"`

	// APIKey is the shared secret clients present in X-API-Key. Empty
	// disables authentication, for local development only.
	APIKey string `envconfig:"API_KEY"`

	KnowledgeBasePath string `envconfig:"KNOWLEDGE_BASE_PATH" default:"./knowledge_base"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"vedicai-knowledge"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	// ReingestInterval enables the periodic reingest worker when positive.
	ReingestInterval time.Duration `envconfig:"REINGEST_INTERVAL"`

	SentryDSN         string  `envconfig:"SENTRY_DSN"`
	SentryEnvironment string  `envconfig:"SENTRY_ENVIRONMENT" default:"development"`
	SentrySampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE" default:"1.0"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("VEDICAI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasSentry() bool {
	return c.SentryDSN != ""
}
