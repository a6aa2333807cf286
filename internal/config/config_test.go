package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loykin/audiofetch/internal/credential"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"AUDIOFETCH_HOST", "AUDIOFETCH_PORT", "AUDIOFETCH_LOG_LEVEL",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_BASE_URL"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "localhost" || cfg.Port != 8080 {
		t.Fatalf("unexpected defaults: %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel)
	}
	if cfg.BaseURL != "https://api.twilio.com" {
		t.Fatalf("unexpected default base url: %s", cfg.BaseURL)
	}
	if cfg.TwilioConfigured() {
		t.Fatal("twilio must not be configured by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUDIOFETCH_HOST", "0.0.0.0")
	t.Setenv("AUDIOFETCH_PORT", "9090")
	t.Setenv("AUDIOFETCH_LOG_LEVEL", "debug")
	t.Setenv("TWILIO_ACCOUNT_SID", "ACtest")
	t.Setenv("TWILIO_AUTH_TOKEN", "tok")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != 9090 || cfg.LogLevel != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if !cfg.TwilioConfigured() {
		t.Fatal("expected twilio configured")
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
}

func TestLoad_YAMLFileThenEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := "host: filehost\nport: 7000\nlog_level: warn\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AUDIOFETCH_PORT", "7100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "filehost" || cfg.LogLevel != "warn" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Port != 7100 {
		t.Fatalf("env must win over file, got port %d", cfg.Port)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestSnapshot_NeverLeaksSecrets(t *testing.T) {
	cfg := &Config{
		Host:       "localhost",
		Port:       8080,
		LogLevel:   "info",
		AccountSID: "ACsupersecret",
		AuthToken:  "tokensecret",
	}
	router := credential.Build(map[string]string{
		"AUTH_A": "https://files.example.org|carol:pw123",
	}, cfg.AccountSID, cfg.AuthToken)

	snap := cfg.Snapshot(router)
	if !snap.TwilioConfigured {
		t.Fatal("expected twilio_configured true")
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, secret := range []string{"ACsupersecret", "tokensecret", "carol", "pw123"} {
		if strings.Contains(string(raw), secret) {
			t.Fatalf("snapshot leaked %q: %s", secret, raw)
		}
	}
	if len(snap.AdditionalAuthDomains) != 1 || snap.AdditionalAuthDomains[0] != "files.example.org" {
		t.Fatalf("unexpected auth domains: %v", snap.AdditionalAuthDomains)
	}
}

func TestSnapshot_StaticFields(t *testing.T) {
	cfg := &Config{Host: "h", Port: 1, LogLevel: "info"}
	snap := cfg.Snapshot(credential.Build(nil, "", ""))
	if snap.ServerName != ServerName || snap.Version != Version {
		t.Fatalf("unexpected identity: %s %s", snap.ServerName, snap.Version)
	}
	if len(snap.SupportedProtocols) != 2 {
		t.Fatalf("unexpected protocols: %v", snap.SupportedProtocols)
	}
	if len(snap.SupportedAudioFormats) != 9 {
		t.Fatalf("unexpected formats: %v", snap.SupportedAudioFormats)
	}
	if snap.TwilioConfigured {
		t.Fatal("unexpected twilio_configured")
	}
}

func TestEnvPairs(t *testing.T) {
	t.Setenv("AUTH_UNITTEST", "https://pairs.example|u:p")
	pairs := EnvPairs()
	if pairs["AUTH_UNITTEST"] != "https://pairs.example|u:p" {
		t.Fatalf("missing env pair: %q", pairs["AUTH_UNITTEST"])
	}
}
