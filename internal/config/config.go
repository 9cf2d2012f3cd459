package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the station configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Checkin   CheckinConfig   `yaml:"checkin"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains the local HTTP server settings for the kiosk UI
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// BackendConfig points at the remote invitation service
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIToken       string `yaml:"api_token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CheckinConfig tunes the eligibility windows and the scan cooldown
type CheckinConfig struct {
	EarlyGraceMinutes   int `yaml:"early_grace_minutes"`
	LateGraceMinutes    int `yaml:"late_grace_minutes"`
	ScanCooldownSeconds int `yaml:"scan_cooldown_seconds"`
}

// SendGridConfig contains host arrival notification settings
type SendGridConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains operator token settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig holds the cron specs for the background jobs
type SchedulerConfig struct {
	RefreshActive string `yaml:"refresh_active"`
	SweepExpired  string `yaml:"sweep_expired"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("BACKEND_BASE_URL"); val != "" {
		c.Backend.BaseURL = val
	}
	if val := os.Getenv("BACKEND_API_TOKEN"); val != "" {
		c.Backend.APIToken = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks required fields and fills defaults
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8085
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 10
	}
	if c.Checkin.EarlyGraceMinutes < 0 || c.Checkin.LateGraceMinutes < 0 {
		return fmt.Errorf("checkin grace periods must not be negative")
	}
	if c.Checkin.EarlyGraceMinutes == 0 {
		c.Checkin.EarlyGraceMinutes = 120
	}
	if c.Checkin.LateGraceMinutes == 0 {
		c.Checkin.LateGraceMinutes = 1440
	}
	if c.Checkin.ScanCooldownSeconds <= 0 {
		c.Checkin.ScanCooldownSeconds = 3
	}
	if c.SendGrid.Enabled && c.SendGrid.APIKey == "" {
		return fmt.Errorf("sendgrid.api_key is required when sendgrid.enabled is true")
	}
	if c.Scheduler.RefreshActive == "" {
		c.Scheduler.RefreshActive = "0 */5 * * * *"
	}
	if c.Scheduler.SweepExpired == "" {
		c.Scheduler.SweepExpired = "0 0 * * * *"
	}
	return nil
}

// GetServerAddress returns the listen address for the kiosk HTTP server
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// EarlyGrace returns the early check-in window as a duration
func (c *CheckinConfig) EarlyGrace() time.Duration {
	return time.Duration(c.EarlyGraceMinutes) * time.Minute
}

// LateGrace returns the late check-in window as a duration
func (c *CheckinConfig) LateGrace() time.Duration {
	return time.Duration(c.LateGraceMinutes) * time.Minute
}

// ScanCooldown returns the duplicate-scan quiet period as a duration
func (c *CheckinConfig) ScanCooldown() time.Duration {
	return time.Duration(c.ScanCooldownSeconds) * time.Second
}

// Timeout returns the backend request timeout as a duration
func (c *BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
