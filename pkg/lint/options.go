package lint

// Options are rule specific settings from configuration, keyed by option name.
type Options map[string]any

// GetOption extracts a typed option with a default value.
func GetOption[T any](opts Options, key string, defaultVal T) T {
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// Int extracts an int option, handling the numeric types config decoders produce.
func (o Options) Int(key string, defaultVal int) int {
	switch n := o[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return defaultVal
	}
}

// String extracts a string option.
func (o Options) String(key, defaultVal string) string {
	return GetOption(o, key, defaultVal)
}

// Bool extracts a bool option.
func (o Options) Bool(key string, defaultVal bool) bool {
	return GetOption(o, key, defaultVal)
}

// Strings extracts a string slice option; YAML and JSON decode lists as []any.
func (o Options) Strings(key string, defaultVal []string) []string {
	switch s := o[key].(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return defaultVal
	}
}
