package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigEntry is one generation parameter. Entries are rendered in slice
// order; omitted parameters simply never become entries.
type ConfigEntry struct {
	Key   string
	Value any
}

// ConfigFormatOptions controls how generation config entries are joined.
type ConfigFormatOptions struct {
	// Indent is inserted after the comma between entries; include a
	// leading newline to place each entry on its own line.
	Indent string
	// KeyQuotes keeps JSON quotes around the parameter keys.
	KeyQuotes bool
	// ValueConnector separates key from value (": " for JSON bodies).
	ValueConnector string
}

// StringifyGenerationConfig renders config entries in order.
func StringifyGenerationConfig(entries []ConfigEntry, opts ConfigFormatOptions) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		key := entry.Key
		if opts.KeyQuotes {
			key = `"` + key + `"`
		}
		parts = append(parts, key+opts.ValueConnector+formatConfigValue(entry.Value))
	}
	return strings.Join(parts, ","+opts.Indent)
}

// formatConfigValue renders a config value the way a JSON body expects.
func formatConfigValue(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case string:
		return `"` + val + `"`
	default:
		return fmt.Sprintf("%v", val)
	}
}
