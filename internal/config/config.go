package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Bounds the presentation layer applies when creating share links. The
// share registry itself does not enforce them.
const (
	MinShareExpiryHours = 1
	MaxShareExpiryHours = 168
	MinShareDownloads   = 1
	MaxShareDownloads   = 100
)

type Config struct {
	// Origin is the advertised base for generated share URLs.
	Origin   string `json:"origin"`
	LogLevel string `json:"log_level"`

	// Seed credentials for the distinguished super admin account.
	SuperAdminEmail    string `json:"super_admin_email"`
	SuperAdminName     string `json:"super_admin_name"`
	SuperAdminPassword string `json:"super_admin_password"`

	MinPasswordLength int `json:"min_password_length"`

	SessionTimeoutMinutes int `json:"session_timeout_minutes"`
	SessionPollSeconds    int `json:"session_poll_seconds"`

	// Simulated upload pacing.
	UploadChunkSizeKB  int `json:"upload_chunk_size_kb"`
	UploadChunkDelayMS int `json:"upload_chunk_delay_ms"`
}

func Default() Config {
	return Config{
		Origin:                "http://localhost:7630",
		LogLevel:              "info",
		SuperAdminEmail:       "admin@example.com",
		SuperAdminName:        "Super Admin",
		SuperAdminPassword:    "admin123",
		MinPasswordLength:     6,
		SessionTimeoutMinutes: 30,
		SessionPollSeconds:    60,
		UploadChunkSizeKB:     256,
		UploadChunkDelayMS:    120,
	}
}

func DefaultPath() (string, error) {
	cfgRoot, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(cfgRoot, "media-management", "config.json"), nil
}

func PathFromEnv() (string, error) {
	if p := strings.TrimSpace(os.Getenv("MEDIA_MANAGEMENT_CONFIG")); p != "" {
		return p, nil
	}
	return DefaultPath()
}

func LoadOrDefault(configPath string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Save(configPath string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	buf, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(configPath, buf, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Origin) == "" {
		return fmt.Errorf("origin must not be empty")
	}
	if strings.TrimSpace(cfg.SuperAdminEmail) == "" {
		return fmt.Errorf("super admin email must not be empty")
	}
	if cfg.MinPasswordLength < 1 {
		return fmt.Errorf("min password length must be positive")
	}
	if len(cfg.SuperAdminPassword) < cfg.MinPasswordLength {
		return fmt.Errorf("super admin password shorter than minimum length %d", cfg.MinPasswordLength)
	}
	if cfg.SessionTimeoutMinutes <= 0 {
		return fmt.Errorf("session timeout must be positive")
	}
	if cfg.SessionPollSeconds <= 0 {
		return fmt.Errorf("session poll interval must be positive")
	}
	if cfg.UploadChunkSizeKB <= 0 {
		return fmt.Errorf("upload chunk size must be positive")
	}
	if cfg.UploadChunkDelayMS < 0 {
		return fmt.Errorf("upload chunk delay must not be negative")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	return nil
}
