package config

import (
	"github.com/loykin/audiofetch/internal/contenttype"
	"github.com/loykin/audiofetch/internal/credential"
)

// Snapshot is the externally-safe projection of the running configuration.
// It never carries secret values, only the fact that they are configured.
type Snapshot struct {
	ServerName            string   `json:"server_name"`
	Version               string   `json:"version"`
	Host                  string   `json:"host"`
	Port                  int      `json:"port"`
	LogLevel              string   `json:"log_level"`
	TwilioConfigured      bool     `json:"twilio_configured"`
	AdditionalAuthDomains []string `json:"additional_auth_domains"`
	SupportedProtocols    []string `json:"supported_protocols"`
	SupportedAudioFormats []string `json:"supported_audio_formats"`
}

// Snapshot projects the current configuration and routing table. Pure, no
// I/O, no failure path.
func (c *Config) Snapshot(router *credential.Router) Snapshot {
	return Snapshot{
		ServerName:            ServerName,
		Version:               Version,
		Host:                  c.Host,
		Port:                  c.Port,
		LogLevel:              c.LogLevel,
		TwilioConfigured:      c.TwilioConfigured(),
		AdditionalAuthDomains: router.Domains(),
		SupportedProtocols:    []string{"http", "https"},
		SupportedAudioFormats: contenttype.Formats(),
	}
}
