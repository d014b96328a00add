// Package config builds the single configuration object handed to every
// handler factory at startup. Values come from an optional YAML file with
// environment variables taking precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TodoistConfig holds the OAuth client credentials and provider endpoints.
// The endpoint URLs are overridable so tests can point the client at a
// local httptest server.
type TodoistConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	AuthURL      string `yaml:"auth_url"`
	TokenURL     string `yaml:"token_url"`
	SyncURL      string `yaml:"sync_url"`
	RestURL      string `yaml:"rest_url"`
}

// Config is constructed once in main and passed by reference into each
// component; nothing reads it from process globals.
type Config struct {
	ListenAddr    string        `yaml:"listen_addr"`
	BaseURL       string        `yaml:"base_url"`
	DatabasePath  string        `yaml:"database_path"`
	SessionSecret string        `yaml:"session_secret"`
	Todoist       TodoistConfig `yaml:"todoist"`
}

// Load reads the YAML file at path (skipped when path is empty or missing),
// applies env overrides, then validates.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr:   "127.0.0.1:8080",
		BaseURL:      "http://localhost:8080",
		DatabasePath: "taskfence.db",
		Todoist: TodoistConfig{
			AuthURL:  "https://todoist.com/oauth/authorize",
			TokenURL: "https://todoist.com/oauth/access_token",
			SyncURL:  "https://todoist.com/api/v8/sync",
			RestURL:  "https://beta.todoist.com/API/v8",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.Todoist.ClientID == "" || cfg.Todoist.ClientSecret == "" {
		return nil, fmt.Errorf("todoist client credentials missing (set TODOIST_CLIENT_ID and TODOIST_CLIENT_SECRET)")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret missing (set TASKFENCE_SESSION_SECRET)")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.ListenAddr, "TASKFENCE_LISTEN_ADDR")
	setFromEnv(&cfg.BaseURL, "TASKFENCE_BASE_URL")
	setFromEnv(&cfg.DatabasePath, "TASKFENCE_DB_PATH")
	setFromEnv(&cfg.SessionSecret, "TASKFENCE_SESSION_SECRET")
	setFromEnv(&cfg.Todoist.ClientID, "TODOIST_CLIENT_ID")
	setFromEnv(&cfg.Todoist.ClientSecret, "TODOIST_CLIENT_SECRET")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
