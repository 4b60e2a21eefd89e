package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

type ServerConfig struct {
	ListenHost   string `yaml:"listen_host"`
	ListenPort   int    `yaml:"listen_port"`
	ResponsesDir string `yaml:"responses_dir"`
}

type SearxngConfig struct {
	BaseURL string `yaml:"base_url"`
}

type SearchConfig struct {
	Provider   string        `yaml:"provider"`
	MaxResults int           `yaml:"max_results"`
	APIKey     string        `yaml:"api_key"`
	BaseURL    string        `yaml:"base_url"`
	Searxng    SearxngConfig `yaml:"searxng"`
}

type GeneratorConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MetricsConfig struct {
	Port int `yaml:"port"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Search    SearchConfig    `yaml:"search"`
	Generator GeneratorConfig `yaml:"generator"`
	Transport RedisConfig     `yaml:"transport"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	LogLevel  string          `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenHost:   "0.0.0.0",
			ListenPort:   8000,
			ResponsesDir: "responses",
		},
		Search: SearchConfig{
			Provider:   "tavily",
			MaxResults: 5,
		},
		Generator: GeneratorConfig{
			Provider:    "gemini",
			Temperature: 0.7,
		},
		LogLevel: "info",
	}
}

// ReadConfig reads the YAML file at path over the defaults.
// A missing file is not an error.
func ReadConfig(path string) (*Config, error) {
	conf := Default()

	file, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(file, conf); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}

	if conf.Search.MaxResults <= 0 {
		conf.Search.MaxResults = 5
	}
	if conf.Server.ResponsesDir == "" {
		conf.Server.ResponsesDir = "responses"
	}

	return conf, nil
}

// ApplyEnv fills API keys not set in the file from the environment,
// using lookup (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				return v
			}
		}
		return ""
	}

	if c.Search.APIKey == "" && strings.EqualFold(c.Search.Provider, "tavily") {
		c.Search.APIKey = get("TAVILY_API_KEY")
	}

	if c.Generator.APIKey == "" {
		switch strings.ToLower(c.Generator.Provider) {
		case "gemini", "":
			c.Generator.APIKey = get("GOOGLE_API_KEY", "GEMINI_API_KEY")
		case "openai":
			c.Generator.APIKey = get("OPENAI_API_KEY")
		case "cohere":
			c.Generator.APIKey = get("COHERE_API_KEY")
		}
	}
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: '%s'", ErrInvalidLogLevel, level)
	}
}
