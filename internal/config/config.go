package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Branding BrandingConfig `yaml:"branding"`
	LogLevel string         `yaml:"log_level"`
}

type ServerConfig struct {
	Port          int    `yaml:"port"`
	TemplatesGlob string `yaml:"templates_glob"`
	StaticDir     string `yaml:"static_dir"`
	LoginPath     string `yaml:"login_path"`
}

type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type BrandingConfig struct {
	ConfigPath    string `yaml:"config_path"`
	DefaultClient string `yaml:"default_client"`
}

// Load builds the configuration from compiled defaults, an optional YAML
// file, and environment-variable overrides, in that order of precedence.
func Load(configPath string) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:          getEnvInt("SERVER_PORT", 8080),
			TemplatesGlob: getEnv("TEMPLATES_GLOB", "web/templates/*.html"),
			StaticDir:     getEnv("STATIC_DIR", "web/static"),
			LoginPath:     getEnv("LOGIN_PATH", "/login"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "https://rtoappbyourself.onrender.com"),
			Timeout: 10 * time.Second,
		},
		Branding: BrandingConfig{
			ConfigPath:    getEnv("BRANDING_CONFIG_PATH", "web/config/business-config.json"),
			DefaultClient: getEnv("DEFAULT_CLIENT", "default"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Env vars take precedence over the YAML file
	if baseURL := os.Getenv("BACKEND_BASE_URL"); baseURL != "" {
		config.Backend.BaseURL = baseURL
	}
	if timeoutStr := os.Getenv("BACKEND_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
		}
		config.Backend.Timeout = timeout
	}
	if brandingPath := os.Getenv("BRANDING_CONFIG_PATH"); brandingPath != "" {
		config.Branding.ConfigPath = brandingPath
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}

	if config.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required (set BACKEND_BASE_URL env var or config file)")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
