// Package config provides configuration management with CLI > env > file precedence.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/tnglemongrass/aider/go-kluster/internal/prompts"
)

// Environment variable names.
const (
	EnvAPIKey  = "API_KEY"
	EnvAPIBase = "KLUSTER_API_BASE"
	EnvModel   = "KLUSTER_MODEL"
)

// FileName is the YAML config file looked up in $HOME and the working directory.
const FileName = ".kluster.yml"

// Config holds all configuration options for kluster.
type Config struct {
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api-key"`
	APIBase    string `yaml:"api-base"`
	Prompt     string `yaml:"prompt"`
	Markdown   bool   `yaml:"markdown"`
	Verbose    bool   `yaml:"verbose"`
	ListModels bool   `yaml:"-"`
}

// DefaultConfig returns a Config that reproduces the fixed single-request run.
func DefaultConfig() *Config {
	return &Config{
		Model:   prompts.DefaultModel,
		APIBase: "https://api.kluster.ai/v1",
		Prompt:  prompts.BreakfastSandwich,
	}
}

// Load builds a Config by merging CLI flags, environment variables, and config files.
// Precedence: CLI args > env vars > config files ($HOME then cwd, cwd wins).
func Load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	if home, err := os.UserHomeDir(); err == nil {
		_ = cfg.loadYAML(filepath.Join(home, FileName))
	}
	_ = cfg.loadYAML(FileName)

	// .env never overrides variables already set in the process.
	_ = godotenv.Load()

	cfg.applyEnv()

	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvAPIBase); v != "" {
		c.APIBase = v
	}
}

func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("kluster", flag.ContinueOnError)
	fs.StringVar(&c.Model, "model", c.Model, "Model name to use")
	fs.StringVar(&c.APIKey, "api-key", c.APIKey, "API key (prompted for when empty)")
	fs.StringVar(&c.APIBase, "api-base", c.APIBase, "API base URL")
	fs.StringVar(&c.Prompt, "prompt", c.Prompt, "User message to send")
	fs.BoolVar(&c.Markdown, "markdown", c.Markdown, "Render the reply as markdown")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Enable debug logging on stderr")
	fs.BoolVar(&c.ListModels, "list-models", c.ListModels, "List available models and exit")
	return fs.Parse(args)
}
