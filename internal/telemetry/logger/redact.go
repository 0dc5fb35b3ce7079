package logger

import (
	"log/slog"
	"strings"
)

// Value prefixes that identify UserHub credential material.
var sensitiveValuePrefixes = []string{
	"uhs_", // session identifier
	"uha_", // API token
}

// Key substrings that suggest sensitive content.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"session_id",
	"credential",
	"bearer",
}

const redactedValue = "***REDACTED***"

// redactSensitive redacts attributes that carry credential material.
// Prefixed values are partially masked so correlated log lines remain
// matchable; key-based hits are fully redacted.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		val := a.Value.String()
		for _, prefix := range sensitiveValuePrefixes {
			if strings.HasPrefix(val, prefix) {
				return slog.String(a.Key, maskValue(val, prefix))
			}
		}

		keyLower := strings.ToLower(a.Key)
		for _, pattern := range sensitiveKeyPatterns {
			if strings.Contains(keyLower, pattern) {
				if val != "" {
					return slog.String(a.Key, redactedValue)
				}
				break
			}
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	return a
}

// maskValue keeps the prefix and the first/last three characters.
func maskValue(value, prefix string) string {
	body := value[len(prefix):]
	if len(body) <= 6 {
		return prefix + "***"
	}
	return prefix + body[:3] + "..." + body[len(body)-3:]
}

// MaskSessionID masks a session identifier for safe manual logging.
func MaskSessionID(id string) string {
	for _, prefix := range sensitiveValuePrefixes {
		if strings.HasPrefix(id, prefix) {
			return maskValue(id, prefix)
		}
	}
	return redactedValue
}
