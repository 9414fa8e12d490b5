package core

// Inference API endpoint constants
const (
	InferenceAPIBaseURL    = "https://api-inference.huggingface.co"
	InferenceModelsPath    = "/models/"
	ChatCompletionsSubpath = "/v1/chat/completions"
)

// Snippet rendering constants
const (
	PlaceholderAPIToken = "{API_TOKEN}"
	DefaultMaxTokens    = 500
	DefaultMaskToken    = "[MASK]"
	NoExampleInput      = "(no example input provided)"
)

// Capability tag constants
const (
	TagConversational = "conversational"
)

// Sample file constants
const (
	SampleAudioFile = "sample1.flac"
	SampleImageFile = "cats.jpg"
)

// ZeroShotCandidateLabels is the fixed illustrative label set embedded in
// zero-shot classification snippets. Order is part of the rendered output.
var ZeroShotCandidateLabels = []string{"refund", "legal", "faq"}
