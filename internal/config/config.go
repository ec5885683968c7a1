package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName  = ".config/notionctl"
	configFileName = "config.json"

	DefaultBaseURL       = "https://api.notion.com/v1"
	DefaultNotionVersion = "2022-06-28"
)

// Environment variables that take precedence over config.json.
const (
	EnvBaseURL       = "NOTION_API_BASE_URL"
	EnvNotionVersion = "NOTION_API_NOTION_VERSION"
	EnvToken         = "NOTION_API_TOKEN"
)

type Config struct {
	API APIConfig `json:"api,omitempty"`
}

type APIConfig struct {
	BaseURL       string `json:"base_url,omitempty"`
	NotionVersion string `json:"notion_version,omitempty"`
	Token         string `json:"token,omitempty"`
}

// TokenSource says where the effective API token comes from.
type TokenSource string

const (
	TokenFromEnv    TokenSource = "env"
	TokenFromConfig TokenSource = "config"
	TokenMissing    TokenSource = "none"
)

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:       DefaultBaseURL,
			NotionVersion: DefaultNotionVersion,
		},
	}
}

// Load returns the effective configuration: config.json with environment
// overrides applied.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	normalize(&cfg)
	return cfg, nil
}

// LoadFile returns config.json alone. A missing file yields the defaults.
func LoadFile() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if err := readConfig(path, &cfg); err != nil {
		return cfg, err
	}
	normalize(&cfg)
	return cfg, nil
}

// Save writes cfg.API into config.json, keeping any keys it does not know.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	normalize(&cfg)

	raw := map[string]any{}
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && len(existing) > 0:
		if err := json.Unmarshal(existing, &raw); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read config %s: %w", path, err)
	}
	raw["api"] = mergeAPI(raw["api"], cfg.API)

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func Path() (string, error) {
	return pathFor(configFileName)
}

func pathFor(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, name), nil
}

// ResolveTokenSource reports whether the token used by Load comes from the
// environment or from the saved file.
func ResolveTokenSource(file Config) TokenSource {
	switch {
	case EnvTokenSet():
		return TokenFromEnv
	case strings.TrimSpace(file.API.Token) != "":
		return TokenFromConfig
	default:
		return TokenMissing
	}
}

func EnvTokenSet() bool {
	return strings.TrimSpace(os.Getenv(EnvToken)) != ""
}

func readConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func mergeAPI(existing any, api APIConfig) map[string]any {
	merged := map[string]any{}
	if m, ok := existing.(map[string]any); ok {
		for k, v := range m {
			merged[k] = v
		}
	}
	merged["base_url"] = api.BaseURL
	merged["notion_version"] = api.NotionVersion
	if api.Token == "" {
		delete(merged, "token")
	} else {
		merged["token"] = api.Token
	}
	return merged
}

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvBaseURL, &cfg.API.BaseURL},
		{EnvNotionVersion, &cfg.API.NotionVersion},
		{EnvToken, &cfg.API.Token},
	}
	for _, o := range overrides {
		if s := os.Getenv(o.env); s != "" {
			*o.target = s
		}
	}
}

func normalize(cfg *Config) {
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	cfg.API.NotionVersion = strings.TrimSpace(cfg.API.NotionVersion)
	if cfg.API.NotionVersion == "" {
		cfg.API.NotionVersion = DefaultNotionVersion
	}
	cfg.API.Token = strings.TrimSpace(cfg.API.Token)
}
