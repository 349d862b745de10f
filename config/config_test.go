package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "5000" {
		t.Errorf("expected Port=5000, got %s", cfg.Server.Port)
	}
	if cfg.Chunking.MaxWords != 300 {
		t.Errorf("expected MaxWords=300, got %d", cfg.Chunking.MaxWords)
	}
	if cfg.Retrieve.TopK != 3 {
		t.Errorf("expected TopK=3, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("expected embedding provider openai, got %s", cfg.Embedding.Provider)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("expected llm provider gemini, got %s", cfg.LLM.Provider)
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("expected TokenTTLHours=24, got %d", cfg.Auth.TokenTTLHours)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "mindverse.yaml")

	content := `
server:
  port: "8080"
chunking:
  max_words: 150
retrieve:
  top_k: 5
embedding:
  provider: mock
  dimension: 8
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected Port=8080, got %s", cfg.Server.Port)
	}
	if cfg.Chunking.MaxWords != 150 {
		t.Errorf("expected MaxWords=150, got %d", cfg.Chunking.MaxWords)
	}
	if cfg.Retrieve.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Embedding.Provider != "mock" || cfg.Embedding.Dimension != 8 {
		t.Errorf("embedding overrides not applied: %+v", cfg.Embedding)
	}
	// Untouched sections keep their defaults.
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("expected default llm provider, got %s", cfg.LLM.Provider)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Errorf("expected defaults for empty dir, got port %s", cfg.Server.Port)
	}

	content := "server:\n  port: \"9000\"\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "mindverse.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("expected port 9000 from mindverse.yaml, got %s", cfg.Server.Port)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "saved.yaml")

	cfg := DefaultConfig()
	cfg.Chunking.MaxWords = 42
	if err := cfg.Save(configPath); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Chunking.MaxWords != 42 {
		t.Errorf("expected MaxWords=42 after round trip, got %d", loaded.Chunking.MaxWords)
	}
}
