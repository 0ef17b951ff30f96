package branding

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"go.uber.org/zap"
)

// Theme holds the four colors a client's pages are rendered with.
type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

// BusinessConfig is one client's branding entry.
type BusinessConfig struct {
	Logo      string `json:"logo"`
	BrandName string `json:"brandName"`
	Theme     Theme  `json:"theme"`
}

// CSSVariables renders the theme as CSS custom property declarations for
// injection into the page head.
func (t Theme) CSSVariables() template.CSS {
	return template.CSS(fmt.Sprintf(
		"--color-primary: %s; --color-secondary: %s; --color-accent: %s; --color-bg: %s;",
		t.Primary, t.Secondary, t.Accent, t.Background,
	))
}

// fallback is used when the mapping cannot be loaded or has no default entry.
var fallback = BusinessConfig{
	Logo:      "/logos/default.png",
	BrandName: "Vehicle Records",
	Theme: Theme{
		Primary:    "#2563EB",
		Secondary:  "#3B82F6",
		Accent:     "#059669",
		Background: "#F8FAFC",
	},
}

// Store resolves branding entries by client identifier. It is loaded once at
// startup and immutable afterwards; every resolution succeeds, falling back
// to the default entry and finally to a compiled-in config.
type Store struct {
	configs       map[string]BusinessConfig
	defaultClient string
	logger        *zap.Logger
}

// NewStore reads the client-id to BusinessConfig mapping from the JSON file
// at path. A missing or malformed file is not fatal: resolution then always
// yields the compiled-in fallback.
func NewStore(path, defaultClient string, logger *zap.Logger) *Store {
	if defaultClient == "" {
		defaultClient = "default"
	}
	store := &Store{
		configs:       map[string]BusinessConfig{},
		defaultClient: defaultClient,
		logger:        logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read branding config, using fallback", zap.String("path", path), zap.Error(err))
		return store
	}

	if err := json.Unmarshal(data, &store.configs); err != nil {
		logger.Warn("Failed to parse branding config, using fallback", zap.String("path", path), zap.Error(err))
		store.configs = map[string]BusinessConfig{}
		return store
	}

	logger.Info("Loaded branding config",
		zap.String("path", path),
		zap.Int("clients", len(store.configs)))
	return store
}

// ForClient resolves the branding entry for a client identifier. An empty or
// unknown identifier resolves to the default entry; a missing default entry
// resolves to the compiled-in fallback.
func (s *Store) ForClient(client string) BusinessConfig {
	if client == "" {
		client = s.defaultClient
	}
	if cfg, ok := s.configs[client]; ok {
		return cfg
	}
	if cfg, ok := s.configs[s.defaultClient]; ok {
		return cfg
	}
	return fallback
}

// Fallback exposes the compiled-in default, used by tests and error pages.
func Fallback() BusinessConfig {
	return fallback
}
