package core

import (
	"net/url"
	"strings"
)

const RedactedValue = "[REDACTED]"

func RedactSensitiveMap(metadata map[string]any) map[string]any {
	if len(metadata) == 0 {
		return map[string]any{}
	}
	return redactSensitiveMap(metadata)
}

// RedactURL replaces sensitive query parameter values while keeping the
// parameter order of the original URL.
func RedactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.RawQuery == "" {
		return raw
	}
	pairs := strings.Split(parsed.RawQuery, "&")
	for i, pair := range pairs {
		key, _, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		decoded, decodeErr := url.QueryUnescape(key)
		if decodeErr != nil {
			decoded = key
		}
		if shouldRedactKey(decoded) {
			pairs[i] = key + "=" + url.QueryEscape(RedactedValue)
		}
	}
	parsed.RawQuery = strings.Join(pairs, "&")
	return parsed.String()
}

func redactSensitiveMap(source map[string]any) map[string]any {
	target := make(map[string]any, len(source))
	for key, value := range source {
		if shouldRedactKey(key) {
			target[key] = RedactedValue
			continue
		}
		target[key] = redactSensitiveValue(value)
	}
	return target
}

func redactSensitiveValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return redactSensitiveMap(typed)
	case map[string]string:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = item
		}
		return redactSensitiveMap(out)
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = redactSensitiveValue(typed[i])
		}
		return out
	default:
		return value
	}
}

func shouldRedactKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || isTraceabilityKey(key) {
		return false
	}
	sensitiveTokens := []string{
		"password",
		"secret",
		"token",
		"authorization",
		"api_key",
		"apikey",
		"access_key",
		"credential",
		"signature",
	}
	for _, token := range sensitiveTokens {
		if strings.Contains(key, token) {
			return true
		}
	}
	return false
}

func isTraceabilityKey(key string) bool {
	switch key {
	case "operation",
		"app_id",
		"user_id",
		"profile_id",
		"grant_type",
		"token_kind",
		"token_type",
		"known_error_case",
		"status_code",
		"trace_id",
		"fbtrace_id",
		"request_id":
		return true
	default:
		return false
	}
}
