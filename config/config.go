package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the MindVerse backend.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Auth      AuthConfig      `yaml:"auth"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
	UploadDir  string `yaml:"upload_dir"`
	DataDir    string `yaml:"data_dir"`
}

// ChunkingConfig holds document chunking configuration.
type ChunkingConfig struct {
	MaxWords int `yaml:"max_words"`
}

// RetrieveConfig holds query-time retrieval configuration.
type RetrieveConfig struct {
	TopK            int `yaml:"top_k"`
	CacheSize       int `yaml:"cache_size"`
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "gemini", "mock"
	Model     string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// LLMConfig holds answer/summary generation configuration.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "gemini", "openai", "mock"
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// AuthConfig holds access token configuration.
type AuthConfig struct {
	JWTSecretEnv  string `yaml:"jwt_secret_env"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// IngestConfig holds batch ingestion configuration.
type IngestConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       "5000",
			CORSOrigin: "*",
			UploadDir:  "uploads",
			DataDir:    "data",
		},
		Chunking: ChunkingConfig{
			MaxWords: 300,
		},
		Retrieve: RetrieveConfig{
			TopK:            3,
			CacheSize:       100,
			CacheTTLSeconds: 300,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		LLM: LLMConfig{
			Provider:    "gemini",
			Model:       "gemini-1.5-pro",
			APIKeyEnv:   "GEMINI_API_KEY",
			Temperature: 0.7,
			MaxTokens:   1024,
		},
		Auth: AuthConfig{
			JWTSecretEnv:  "JWT_SECRET_KEY",
			TokenTTLHours: 24,
		},
		Ingest: IngestConfig{
			Includes: []string{"**/*.pdf", "**/*.txt", "**/*.md"},
			Excludes: []string{"**/node_modules/**", "**/.git/**"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for mindverse.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "mindverse.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".mindverse", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// UserDBPath returns the path to the user database.
func UserDBPath(dataDir string) string {
	return filepath.Join(dataDir, "mindverse.db")
}

// EnsureDir ensures a directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
