package core

// Snippet holds one rendered example command. Empty content means the
// model's pipeline has no curl snippet support and callers should skip
// display.
type Snippet struct {
	Content string `json:"content"`
}

// SnippetOptions carries caller overrides for conversational rendering.
// Pointer fields distinguish "not supplied" from an explicit zero value:
// a nil Temperature is omitted from the rendered config, an explicit 0 is
// kept.
type SnippetOptions struct {
	Streaming   *bool         `json:"stream,omitempty"`
	Messages    []ChatMessage `json:"messages,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
}

// ChatMessage represents a single message in a chat completion request.
// Content is either a plain string or a []ChatContentPart for multimodal
// messages.
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ChatContentPart represents one content block in a multimodal chat message.
type ChatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *ChatImageURL `json:"image_url,omitempty"`
}

// ChatImageURL holds the image reference for an image content part.
type ChatImageURL struct {
	URL string `json:"url"`
}
