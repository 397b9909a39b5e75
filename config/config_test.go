package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEWSROOM_MODEL", "")
	t.Setenv("NEWSROOM_ADDR", "")

	cfg := Load("")
	if cfg.ServerAddr != ":8080" {
		t.Fatalf("server addr = %q", cfg.ServerAddr)
	}
	if cfg.MaxIterations != 2 {
		t.Fatalf("max iterations = %d", cfg.MaxIterations)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_addr: \":9090\"\nmax_iterations: 4\nllm:\n  model: \"gpt-4o\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.ServerAddr != ":9090" {
		t.Fatalf("server addr = %q", cfg.ServerAddr)
	}
	if cfg.MaxIterations != 4 {
		t.Fatalf("max iterations = %d", cfg.MaxIterations)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
	// Untouched fields keep their defaults.
	if cfg.PromptsPath != "config/prompts.yaml" {
		t.Fatalf("prompts path = %q", cfg.PromptsPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "key-from-env")
	t.Setenv("NEWSROOM_MODEL", "model-from-env")

	cfg := Load("")
	if cfg.LLM.APIKey != "key-from-env" {
		t.Fatalf("api key = %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "model-from-env" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
}

func TestGithubTokenFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GITHUB_TOKEN", "gh-token")

	cfg := Load("")
	if cfg.LLM.APIKey != "gh-token" {
		t.Fatalf("api key = %q, want GITHUB_TOKEN fallback", cfg.LLM.APIKey)
	}
}
