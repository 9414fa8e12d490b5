package core

// Content type and header constants
const (
	ContentTypeJSON     = "application/json"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXAPIKey       = "x-api-key"
	HeaderRequestID     = "X-Request-ID"
	AuthBearerPrefix    = "Bearer "
)

// Object type constants
const (
	ModelObjectType     = "model"
	ModelListObjectType = "list"
	SnippetObjectType   = "snippet"
	ModelOwner          = "huggingface"
)

// ID prefix constants
const (
	SnippetIDPrefix = "snip-"
	RequestIDPrefix = "req-"
)

// Role constants
const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
	RoleSystem    = "system"
)

// Chat content part type constants
const (
	ContentPartTypeText     = "text"
	ContentPartTypeImageURL = "image_url"
)
