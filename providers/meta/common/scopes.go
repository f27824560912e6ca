package common

import (
	"sort"
	"strings"
)

// NormalizeScopes lower-cases, de-duplicates and sorts permission names.
func NormalizeScopes(scopes []string) []string {
	if len(scopes) == 0 {
		return []string{}
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		normalized := strings.TrimSpace(strings.ToLower(scope))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	sort.Strings(out)
	return out
}

// MissingScopes returns the required scopes absent from granted.
func MissingScopes(granted []string, required ...string) []string {
	have := map[string]struct{}{}
	for _, scope := range NormalizeScopes(granted) {
		have[scope] = struct{}{}
	}
	missing := []string{}
	for _, scope := range NormalizeScopes(required) {
		if _, ok := have[scope]; !ok {
			missing = append(missing, scope)
		}
	}
	return missing
}
