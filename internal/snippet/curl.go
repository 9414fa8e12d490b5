// Package snippet renders example curl commands for hosted inference
// models. A fixed dispatch table maps each supported pipeline tag to a
// render function; models outside the table render to empty content
// rather than an error.
package snippet

import (
	"fmt"
	"slices"
	"strings"

	"model2curl/internal/core"
	"model2curl/internal/format"
	"model2curl/internal/inputs"
	"model2curl/internal/util"
)

type renderFunc func(model core.ModelDescriptor, accessToken string, opts *core.SnippetOptions) string

// curlRenderers maps each supported pipeline tag to its renderer. The key
// set is the closed support set: HasCurlSnippet answers from this table
// and anything absent renders empty.
var curlRenderers = map[core.PipelineTag]renderFunc{
	core.PipelineTextClassification:         renderBasic,
	core.PipelineTokenClassification:        renderBasic,
	core.PipelineTableQuestionAnswering:     renderBasic,
	core.PipelineQuestionAnswering:          renderBasic,
	core.PipelineZeroShotClassification:     renderZeroShotClassification,
	core.PipelineTranslation:                renderBasic,
	core.PipelineSummarization:              renderBasic,
	core.PipelineFeatureExtraction:          renderBasic,
	core.PipelineTextGeneration:             renderTextGeneration,
	core.PipelineImageTextToText:            renderTextGeneration,
	core.PipelineText2TextGeneration:        renderBasic,
	core.PipelineFillMask:                   renderBasic,
	core.PipelineSentenceSimilarity:         renderBasic,
	core.PipelineAutomaticSpeechRecognition: renderFile,
	core.PipelineAudioToAudio:               renderFile,
	core.PipelineAudioClassification:        renderFile,
	core.PipelineImageClassification:        renderFile,
	core.PipelineImageToText:                renderFile,
	core.PipelineObjectDetection:            renderFile,
	core.PipelineImageSegmentation:          renderFile,
}

// GetCurlSnippet renders the example curl command for a model. Models
// whose pipeline has no renderer yield an empty snippet; the call never
// fails.
func GetCurlSnippet(model core.ModelDescriptor, accessToken string) core.Snippet {
	return GetCurlSnippetWithOptions(model, accessToken, nil)
}

// GetCurlSnippetWithOptions renders the example curl command with caller
// overrides for conversational rendering. Options are ignored by
// non-conversational renderers.
func GetCurlSnippetWithOptions(model core.ModelDescriptor, accessToken string, opts *core.SnippetOptions) core.Snippet {
	fn, ok := curlRenderers[model.PipelineTag]
	if !ok || fn == nil {
		return core.Snippet{}
	}
	return core.Snippet{Content: fn(model, accessToken, opts)}
}

// HasCurlSnippet reports whether the model's pipeline has a curl renderer.
func HasCurlSnippet(model core.ModelDescriptor) bool {
	if model.PipelineTag == "" {
		return false
	}
	fn, ok := curlRenderers[model.PipelineTag]
	return ok && fn != nil
}

// SupportedPipelines returns the pipeline tags with curl snippet support,
// sorted for stable output.
func SupportedPipelines() []core.PipelineTag {
	tags := make([]core.PipelineTag, 0, len(curlRenderers))
	for tag := range curlRenderers {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// bearerToken substitutes the visible placeholder when no token is given;
// the Authorization header is never left blank.
func bearerToken(accessToken string) string {
	if accessToken == "" {
		return core.PlaceholderAPIToken
	}
	return accessToken
}

func modelEndpoint(modelID string) string {
	return core.InferenceAPIBaseURL + core.InferenceModelsPath + modelID
}

func chatEndpoint(modelID string) string {
	return modelEndpoint(modelID) + core.ChatCompletionsSubpath
}

// renderBasic produces the generic single-input POST command.
func renderBasic(model core.ModelDescriptor, accessToken string, _ *core.SnippetOptions) string {
	return fmt.Sprintf(`curl %s \
	-X POST \
	-d '{"inputs": %s}' \
	-H 'Content-Type: application/json' \
	-H "Authorization: Bearer %s"`,
		modelEndpoint(model.ID), inputs.SampleJSON(model), bearerToken(accessToken))
}

// renderTextGeneration renders the chat-completions command for models
// tagged conversational and falls back to the generic form otherwise,
// regardless of which pipeline dispatched here.
func renderTextGeneration(model core.ModelDescriptor, accessToken string, opts *core.SnippetOptions) string {
	if !model.IsConversational() {
		return renderBasic(model, accessToken, opts)
	}

	streaming := true
	var messages []core.ChatMessage
	var entries []format.ConfigEntry

	if opts != nil {
		if opts.Streaming != nil {
			streaming = *opts.Streaming
		}
		if len(opts.Messages) > 0 {
			messages = opts.Messages
		}
		if opts.Temperature != nil {
			entries = append(entries, format.ConfigEntry{Key: "temperature", Value: *opts.Temperature})
		}
	}
	if messages == nil {
		messages = inputs.SampleMessages(model)
	}

	maxTokens := core.DefaultMaxTokens
	if opts != nil && opts.MaxTokens != nil {
		maxTokens = *opts.MaxTokens
	}
	entries = append(entries, format.ConfigEntry{Key: "max_tokens", Value: maxTokens})

	if opts != nil && opts.TopP != nil {
		entries = append(entries, format.ConfigEntry{Key: "top_p", Value: *opts.TopP})
	}

	messagesBlock := format.StringifyMessages(messages, format.MessageFormatOptions{
		Indent:         "\t",
		KeyQuotes:      true,
		ContentEscaper: util.EscapeShellSingleQuotes,
	})
	configBlock := format.StringifyGenerationConfig(entries, format.ConfigFormatOptions{
		Indent:         "\n    ",
		KeyQuotes:      true,
		ValueConnector: ": ",
	})

	return fmt.Sprintf(`curl '%s' \
-H "Authorization: Bearer %s" \
-H 'Content-Type: application/json' \
--data '{
    "model": "%s",
    "messages": %s,
    %s,
    "stream": %t
}'`, chatEndpoint(model.ID), bearerToken(accessToken), model.ID, messagesBlock, configBlock, streaming)
}

// renderZeroShotClassification augments the generic body with the fixed
// candidate_labels parameter the task requires.
func renderZeroShotClassification(model core.ModelDescriptor, accessToken string, _ *core.SnippetOptions) string {
	labels := make([]string, len(core.ZeroShotCandidateLabels))
	for i, label := range core.ZeroShotCandidateLabels {
		labels[i] = `"` + label + `"`
	}

	return fmt.Sprintf(`curl %s \
	-X POST \
	-d '{"inputs": %s, "parameters": {"candidate_labels": [%s]}}' \
	-H 'Content-Type: application/json' \
	-H "Authorization: Bearer %s"`,
		modelEndpoint(model.ID), inputs.SampleJSON(model), strings.Join(labels, ", "), bearerToken(accessToken))
}

// renderFile produces the binary upload command. The body is not JSON, so
// no Content-Type header is set.
func renderFile(model core.ModelDescriptor, accessToken string, _ *core.SnippetOptions) string {
	return fmt.Sprintf(`curl %s \
	-X POST \
	--data-binary '@%s' \
	-H "Authorization: Bearer %s"`,
		modelEndpoint(model.ID), inputs.SampleFilePath(model), bearerToken(accessToken))
}
