package redact

import (
	"regexp"
	"strings"
)

var (
	// Matches "Bearer <token>" and Discord's "Bot <token>" authorization values.
	authTokenRe = regexp.MustCompile(`\b((?i:Bearer)|Bot)\s+[^\s"']+`)

	// Common key=value formats that sometimes leak in error strings.
	secretKVRe = regexp.MustCompile(`(?i)\b(api[_-]?key|token|csrf[_-]?token|passwd|password|lgpassword)\b\s*[:=]\s*[^\s"',&]+`)

	secretKeys = map[string]struct{}{
		"token":    {},
		"passwd":   {},
		"password": {},
		"api_key":  {},
		"apikey":   {},
	}
)

// Secrets removes obvious secret-bearing substrings from error/log strings.
func Secrets(s string) string {
	if s == "" {
		return ""
	}
	out := s
	out = authTokenRe.ReplaceAllString(out, "$1 <redacted>")
	out = secretKVRe.ReplaceAllString(out, "<redacted_kv>")
	return strings.TrimSpace(out)
}

// Fields returns a copy of rec safe to log: values under secret-looking keys
// are masked and string values are passed through Secrets.
func Fields(rec map[string]any) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		if _, ok := secretKeys[strings.ToLower(k)]; ok {
			out[k] = "<redacted>"
			continue
		}
		if s, ok := v.(string); ok {
			out[k] = Secrets(s)
			continue
		}
		out[k] = v
	}
	return out
}
