package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix for hexlight environment variables.
const DefaultEnvPrefix = "HEXLIGHT_"

// EnvLoader loads configuration from environment variables.
// HEXLIGHT_ENABLE_TAILWIND=true becomes {"enable_tailwind": true}.
type EnvLoader struct {
	prefix  string
	environ func() []string
	skip    map[string]bool
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "HEXLIGHT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		environ: os.Environ,
		skip: map[string]bool{
			// Consumed by the CLI, not configuration options.
			prefix + "CONFIG": true,
			prefix + "DEBUG":  true,
			prefix + "LOG":    true,
		},
	}
}

// Load reads prefixed environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}

		name, value, ok := strings.Cut(env, "=")
		if !ok || l.skip[name] {
			continue
		}

		key := strings.ToLower(strings.TrimPrefix(name, l.prefix))
		if key == "" {
			continue
		}
		config[key] = parseValue(value)
	}

	if len(config) == 0 {
		return nil, nil
	}
	return config, nil
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	// Digits that would not survive a round trip ("000000", "+1") stay text.
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}

	// Default to string; list options accept comma-separated strings.
	return s
}
