// Package config centralises all environment configuration for the server
// and the CLI. Business‑logic layers receive an already‑built Config via
// dependency‑injection and never read the environment themselves.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime option the binaries need.
// Keep it flat and simple; prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// GitHub
	GitHubAPIURL  string
	GitHubToken   string
	GitHubTimeout time.Duration

	// Repository used when a request names none.
	DefaultRepoOwner string
	DefaultRepoName  string

	// Completion service
	LLMProvider    string // "openai" | "vertex"
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMPingTimeout time.Duration

	// Vertex AI backend
	ProjectID       string
	Location        string
	CredentialsFile string

	// Deterministic fallback
	FallbackDelay time.Duration

	// Optional recent-repository history store
	MongoURI string
	DBName   string
}

const (
	ProviderOpenAI = "openai"
	ProviderVertex = "vertex"
)

// Load parses the environment (and an optional .env file) into Config.
// Nothing here is mandatory: the service runs unauthenticated against GitHub
// and degrades to the fallback responder when no completion service answers.
func Load() Config {
	// godotenv.Load() is a no‑op if .env doesn't exist, so it is safe in production.
	_ = godotenv.Load()

	provider := getEnv("LLM_PROVIDER", ProviderOpenAI)
	defaultModel := "local-model"
	if provider == ProviderVertex {
		defaultModel = "gemini-2.0-flash-lite-001"
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		ReadTimeout:      getDuration("READ_TIMEOUT_SEC", 10),
		WriteTimeout:     getDuration("WRITE_TIMEOUT_SEC", 90),
		GitHubAPIURL:     getEnv("GITHUB_API_URL", "https://api.github.com/"),
		GitHubToken:      os.Getenv("GITHUB_TOKEN"),
		GitHubTimeout:    getDuration("GITHUB_TIMEOUT_SEC", 10),
		DefaultRepoOwner: os.Getenv("DEFAULT_REPO_OWNER"),
		DefaultRepoName:  os.Getenv("DEFAULT_REPO_NAME"),
		LLMProvider:      provider,
		LLMBaseURL:       getEnv("LLM_BASE_URL", "http://localhost:1234/v1"),
		LLMAPIKey:        os.Getenv("LLM_API_KEY"),
		LLMModel:         getEnv("LLM_MODEL", defaultModel),
		LLMTimeout:       getDuration("LLM_TIMEOUT_SEC", 60),
		LLMPingTimeout:   getDuration("LLM_PING_TIMEOUT_SEC", 3),
		ProjectID:        os.Getenv("GCP_PROJECT_ID"),
		Location:         getEnv("GCP_LOCATION", "us-central1"),
		CredentialsFile:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FallbackDelay:    getMillis("FALLBACK_DELAY_MS", 1000),
		MongoURI:         os.Getenv("MONGODB_URI"),
		DBName:           getEnv("MONGODB_DB", "repo_tools"),
	}
}

// HasDefaultRepo reports whether both halves of the default repository are set.
func (c Config) HasDefaultRepo() bool {
	return c.DefaultRepoOwner != "" && c.DefaultRepoName != ""
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	return time.Duration(getInt(key, defaultSec)) * time.Second
}

// getMillis reads an integer (milliseconds) from env, falling back to defaultMs.
func getMillis(key string, defaultMs int) time.Duration {
	return time.Duration(getInt(key, defaultMs)) * time.Millisecond
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}
