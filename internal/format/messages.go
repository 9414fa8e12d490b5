// Package format provides the structured-text builders that embed chat
// messages and generation parameters inside rendered command bodies.
package format

import (
	"regexp"
	"strings"

	"model2curl/internal/core"
	"model2curl/internal/util"
)

// MessageFormatOptions controls how a message list is serialized for
// embedding inside a command body.
type MessageFormatOptions struct {
	// Indent is prepended to every line after the first so the block
	// lines up with the surrounding body.
	Indent string
	// KeyQuotes keeps JSON quotes around attribute keys. When false,
	// keys are unquoted for object-literal style targets.
	KeyQuotes bool
	// ContentEscaper rewrites the serialized block for the target quoting
	// context (e.g. shell single quotes). Nil means no escaping.
	ContentEscaper func(string) string
}

var keyQuotePattern = regexp.MustCompile(`"([^"]+)":`)

// StringifyMessages serializes chat messages as a tab-indented JSON array
// block ready for direct embedding. Marshaling plain message values cannot
// realistically fail; an error degrades to an empty array block so render
// output stays well formed.
func StringifyMessages(messages []core.ChatMessage, opts MessageFormatOptions) string {
	data, err := util.MarshalJSONIndent(messages, "", "\t")
	if err != nil {
		return "[]"
	}

	block := string(data)
	if opts.Indent != "" {
		block = strings.ReplaceAll(block, "\n", "\n"+opts.Indent)
	}
	if !opts.KeyQuotes {
		block = keyQuotePattern.ReplaceAllString(block, "$1:")
	}
	if opts.ContentEscaper != nil {
		block = opts.ContentEscaper(block)
	}
	return block
}
