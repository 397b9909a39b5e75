package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	openAIKeyEnv   = "OPENAI_API_KEY"
	githubTokenEnv = "GITHUB_TOKEN"
	modelEnv       = "NEWSROOM_MODEL"
	baseURLEnv     = "NEWSROOM_BASE_URL"
	serverAddrEnv  = "NEWSROOM_ADDR"
)

// Config holds the runtime settings for the newsroom service.
type Config struct {
	ServerAddr    string        `yaml:"server_addr"`
	PromptsPath   string        `yaml:"prompts_path"`
	MaxIterations int           `yaml:"max_iterations"`
	Logging       LoggingConfig `yaml:"logging"`
	LLM           LLMConfig     `yaml:"llm"`
}

// LoggingConfig controls log level and the optional append-only log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// LLMConfig defines how to reach the generation backend. BaseURL covers
// OpenAI-compatible gateways (GitHub Models, DeepSeek).
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides on top of defaults.
func Load(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(openAIKeyEnv); v != "" {
		c.LLM.APIKey = v
	} else if v := os.Getenv(githubTokenEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(modelEnv); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(baseURLEnv); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.ServerAddr = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.ServerAddr != "" {
		base.ServerAddr = override.ServerAddr
	}
	if override.PromptsPath != "" {
		base.PromptsPath = override.PromptsPath
	}
	if override.MaxIterations > 0 {
		base.MaxIterations = override.MaxIterations
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}
	if override.LLM.Provider != "" {
		base.LLM.Provider = override.LLM.Provider
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.BaseURL != "" {
		base.LLM.BaseURL = override.LLM.BaseURL
	}
	return base
}

func defaultConfig() Config {
	return Config{
		ServerAddr:    ":8080",
		PromptsPath:   "config/prompts.yaml",
		MaxIterations: 2,
		Logging: LoggingConfig{
			Level: "info",
			File:  "logs/newsroom.log",
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
	}
}
