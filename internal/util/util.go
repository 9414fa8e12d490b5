package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"model2curl/internal/core"

	"github.com/bytedance/sonic"
)

// MarshalJSON wraps Sonic for performance
func MarshalJSON(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalJSONIndent wraps Sonic indented marshaling
func MarshalJSONIndent(v any, prefix, indent string) ([]byte, error) {
	return sonic.MarshalIndent(v, prefix, indent)
}

// GenerateRandomID generates a prefixed random ID (crypto-secure)
func GenerateRandomID(prefix string) string {
	b := make([]byte, 10)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s%s", prefix, hex.EncodeToString(b))
}

// EscapeShellSingleQuotes rewrites every embedded single quote as the
// four-character sequence that closes the quote, inserts an escaped quote,
// and reopens it, keeping the result valid inside a single-quoted shell
// string.
func EscapeShellSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

// ExtractTextContent extracts text from message content field
func ExtractTextContent(content any) string {
	if content == nil {
		return ""
	}

	switch v := content.(type) {
	case string:
		return v
	case []any:
		var textParts []string
		for _, item := range v {
			if itemMap, ok := item.(map[string]any); ok {
				if itemType, ok := itemMap["type"].(string); ok && itemType == core.ContentPartTypeText {
					if text, ok := itemMap["text"].(string); ok {
						textParts = append(textParts, text)
					}
				}
			}
		}
		return strings.Join(textParts, " ")
	case []core.ChatContentPart:
		var textParts []string
		for _, part := range v {
			if part.Type == core.ContentPartTypeText {
				textParts = append(textParts, part.Text)
			}
		}
		return strings.Join(textParts, " ")
	}
	return ""
}

// TruncateString truncates string and adds replacement text in the middle
func TruncateString(s string, prefixLen, suffixLen int, replacement string) string {
	if len(s) > prefixLen+suffixLen {
		return s[:prefixLen] + replacement + s[len(s)-suffixLen:]
	}
	return s
}

// TokenDisplayName masks an access token for log display
func TokenDisplayName(token string) string {
	if token == "" {
		return "anonymous"
	}
	return TruncateString(token, 0, 6, "Token ...")
}

// ParseEnvList parses comma-separated env var to trimmed slice
func ParseEnvList(envVar string) []string {
	if envVar == "" {
		return nil
	}
	parts := strings.Split(envVar, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetEnvWithDefault gets env var with default value
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
