package common

import (
	"regexp"
	"strings"
)

// MaskReplacement is the literal substituted for any detected secret.
const MaskReplacement = "***MASKED***"

// SensitivePattern describes one class of secret to detect and mask.
type SensitivePattern struct {
	Name        string         // pattern name (e.g., "password", "auth_token")
	Regex       *regexp.Regexp // expression matching the secret in free text
	Replacement string         // replacement applied on regex match
	Keys        []string       // attribute keys masked wholesale (case-insensitive)
}

// DefaultSensitivePatterns covers the secrets this server handles: Basic
// credentials, provider account SID/token pairs and generic password/token
// key-value text.
var DefaultSensitivePatterns = []SensitivePattern{
	{
		Name:        "password",
		Regex:       regexp.MustCompile(`(?i)(password|passwd|pwd)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		Replacement: `${1}":"` + MaskReplacement + `"`,
		Keys:        []string{"password", "passwd", "pwd"},
	},
	{
		Name:        "auth_token",
		Regex:       regexp.MustCompile(`(?i)(token|auth[_-]?token)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		Replacement: `${1}":"` + MaskReplacement + `"`,
		Keys:        []string{"token", "auth_token", "auth-token"},
	},
	{
		Name:        "account_sid",
		Regex:       regexp.MustCompile(`(?i)(account[_-]?sid)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		Replacement: `${1}":"` + MaskReplacement + `"`,
		Keys:        []string{"account_sid", "account-sid"},
	},
	{
		Name:        "authorization",
		Regex:       regexp.MustCompile(`(?i)(authorization)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		Replacement: `${1}":"` + MaskReplacement + `"`,
		Keys:        []string{"authorization"},
	},
	{
		Name:        "basic_auth",
		Regex:       regexp.MustCompile(`(?i)Basic\s+[A-Za-z0-9+/]+=*`),
		Replacement: "Basic " + MaskReplacement,
	},
	{
		Name:        "userinfo_url",
		Regex:       regexp.MustCompile(`(https?://)[^/@\s]+:[^/@\s]+@`),
		Replacement: `${1}` + MaskReplacement + "@",
	},
}

// Masker handles masking of sensitive information in logs
type Masker struct {
	patterns []SensitivePattern
	enabled  bool
}

// NewMasker creates a new masker with default patterns
func NewMasker() *Masker {
	return &Masker{patterns: DefaultSensitivePatterns, enabled: true}
}

// SetEnabled enables or disables masking
func (m *Masker) SetEnabled(enabled bool) { m.enabled = enabled }

// IsEnabled returns whether masking is enabled
func (m *Masker) IsEnabled() bool { return m.enabled }

// MaskString masks sensitive information in a string
func (m *Masker) MaskString(input string) string {
	if !m.enabled {
		return input
	}
	result := input
	for _, pattern := range m.patterns {
		result = pattern.Regex.ReplaceAllString(result, pattern.Replacement)
	}
	return result
}

// MaskValue masks a value based on key-value context: sensitive keys are
// masked wholesale, other string values are scrubbed with the text patterns.
func (m *Masker) MaskValue(key string, value any) any {
	if !m.enabled {
		return value
	}
	lowerKey := strings.ToLower(key)
	for _, pattern := range m.patterns {
		for _, sensitiveKey := range pattern.Keys {
			if lowerKey == sensitiveKey {
				return MaskReplacement
			}
		}
	}
	if s, ok := value.(string); ok {
		return m.MaskString(s)
	}
	return value
}

// Global masker instance
var globalMasker = NewMasker()

// SetGlobalMasker sets the global masker instance
func SetGlobalMasker(masker *Masker) {
	globalMasker = masker
}

// GetGlobalMasker returns the global masker instance
func GetGlobalMasker() *Masker {
	return globalMasker
}

// MaskSensitiveData masks sensitive data using the global masker
func MaskSensitiveData(input string) string {
	return globalMasker.MaskString(input)
}
