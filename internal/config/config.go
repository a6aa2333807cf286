package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ServerName identifies this service in config reports and health output.
	ServerName = "Twilio Audio Downloader MCP Server"
	// Version is the service version surfaced to callers.
	Version = "0.1.0"

	// EnvPrefix namespaces the server knobs (AUDIOFETCH_HOST, ...).
	EnvPrefix = "AUDIOFETCH"
)

// Config is the process-wide configuration, read once at startup. AccountSID
// and AuthToken are secrets and never appear in Snapshot or logs.
type Config struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`

	AccountSID string `mapstructure:"account_sid" yaml:"-"`
	AuthToken  string `mapstructure:"auth_token" yaml:"-"`
	BaseURL    string `mapstructure:"base_url" yaml:"base_url"`
}

// Load builds the configuration: defaults, then an optional YAML file, then
// environment overrides. A .env file in the working directory is folded into
// the environment first, best-effort.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:     "localhost",
		Port:     8080,
		LogLevel: "info",
		BaseURL:  "https://api.twilio.com",
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Secrets keep their provider-native names.
	_ = v.BindEnv("account_sid", "TWILIO_ACCOUNT_SID")
	_ = v.BindEnv("auth_token", "TWILIO_AUTH_TOKEN")
	_ = v.BindEnv("base_url", "TWILIO_BASE_URL")
	for _, key := range []string{"host", "port", "log_level", "log_file"} {
		_ = v.BindEnv(key)
	}

	if s := v.GetString("host"); s != "" {
		cfg.Host = s
	}
	if p := v.GetInt("port"); p != 0 {
		cfg.Port = p
	}
	if s := v.GetString("log_level"); s != "" {
		cfg.LogLevel = s
	}
	if s := v.GetString("log_file"); s != "" {
		cfg.LogFile = s
	}
	if s := v.GetString("account_sid"); s != "" {
		cfg.AccountSID = s
	}
	if s := v.GetString("auth_token"); s != "" {
		cfg.AuthToken = s
	}
	if s := v.GetString("base_url"); s != "" {
		cfg.BaseURL = s
	}
	return cfg, nil
}

// EnvPairs snapshots the process environment as a key/value map, the explicit
// input the credential router is built from.
func EnvPairs() map[string]string {
	pairs := make(map[string]string, len(os.Environ()))
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			pairs[k] = v
		}
	}
	return pairs
}

// Addr returns the bind address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TwilioConfigured reports whether both provider secrets are present.
func (c *Config) TwilioConfigured() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}
