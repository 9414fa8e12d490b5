// Package inputs derives the example payloads embedded in rendered
// snippets. One fixed illustrative sample exists per pipeline; nothing is
// fetched or validated here.
package inputs

import (
	"model2curl/internal/core"
	"model2curl/internal/util"
)

// QuestionAnsweringInput pairs a question with its source context.
type QuestionAnsweringInput struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// TableQuestionInput asks a question over a small example table.
type TableQuestionInput struct {
	Query string       `json:"query"`
	Table ExampleTable `json:"table"`
}

// ExampleTable is the repository-stats table used in table QA samples.
type ExampleTable struct {
	Repository          []string `json:"Repository"`
	Stars               []string `json:"Stars"`
	Contributors        []string `json:"Contributors"`
	ProgrammingLanguage []string `json:"Programming language"`
}

// SentenceSimilarityInput compares a source sentence against candidates.
type SentenceSimilarityInput struct {
	SourceSentence string   `json:"source_sentence"`
	Sentences      []string `json:"sentences"`
}

// VisualQuestionInput pairs an image reference with a question about it.
type VisualQuestionInput struct {
	Image    string `json:"image"`
	Question string `json:"question"`
}

// TabularRowsInput is the fish-measurement row set used in tabular samples.
type TabularRowsInput struct {
	Height  []float64 `json:"Height"`
	Length1 []float64 `json:"Length1"`
	Length2 []float64 `json:"Length2"`
	Species []string  `json:"Species"`
}

// SampleImageURL is the hosted image referenced by multimodal chat samples.
const SampleImageURL = "https://cdn.britannica.com/61/93061-050-99147DCE/Statue-of-Liberty-Island-New-York-Bay.jpg"

const summarizationSample = "The tower is 324 metres (1,063 ft) tall, about the same height as an 81-storey building, and the tallest structure in Paris. Its base is square, measuring 125 metres (410 ft) on each side. During its construction, the Eiffel Tower surpassed the Washington Monument to become the tallest man-made structure in the world, a title it held for 41 years until the Chrysler Building in New York City was finished in 1930. It was the first structure to reach a height of 300 metres. Due to the addition of a broadcasting aerial at the top of the tower in 1957, it is now taller than the Chrysler Building by 5.2 metres (17 ft). Excluding transmitters, the Eiffel Tower is the second tallest free-standing structure in France after the Millau Viaduct."

type sampleFunc func(model core.ModelDescriptor) any

// fixed wraps a constant sample value as a provider.
func fixed(v any) sampleFunc {
	return func(core.ModelDescriptor) any { return v }
}

func sampleTableQuestionAnswering(core.ModelDescriptor) any {
	return TableQuestionInput{
		Query: "How many stars does the transformers repository have?",
		Table: ExampleTable{
			Repository:          []string{"Transformers", "Datasets", "Tokenizers"},
			Stars:               []string{"36542", "4512", "3934"},
			Contributors:        []string{"651", "77", "34"},
			ProgrammingLanguage: []string{"Python", "Python", "Rust, Python and NodeJS"},
		},
	}
}

func sampleSentenceSimilarity(core.ModelDescriptor) any {
	return SentenceSimilarityInput{
		SourceSentence: "That is a happy person",
		Sentences: []string{
			"That is a happy dog",
			"That is a very happy person",
			"Today is a sunny day",
		},
	}
}

func sampleTabularPrediction(core.ModelDescriptor) any {
	return TabularRowsInput{
		Height:  []float64{11.52, 12.48},
		Length1: []float64{23.2, 24.0},
		Length2: []float64{25.4, 26.3},
		Species: []string{"Bream", "Bream"},
	}
}

// sampleTextGeneration returns a chat prompt for conversational models and
// a plain continuation prompt otherwise.
func sampleTextGeneration(model core.ModelDescriptor) any {
	if model.IsConversational() {
		return SampleMessages(model)
	}
	return "Can you please let us know more details about your "
}

func sampleFillMask(model core.ModelDescriptor) any {
	return "The answer to the universe is " + model.Mask() + "."
}

var sampleProviders = map[core.PipelineTag]sampleFunc{
	core.PipelineTextClassification:         fixed("I like you. I love you"),
	core.PipelineTokenClassification:        fixed("My name is Sarah Jessica Parker but you can call me Jessica"),
	core.PipelineTableQuestionAnswering:     sampleTableQuestionAnswering,
	core.PipelineQuestionAnswering:          fixed(QuestionAnsweringInput{Question: "What is my name?", Context: "My name is Clara and I live in Berkeley."}),
	core.PipelineZeroShotClassification:     fixed("Hi, I recently bought a device from your company but it is not working as advertised and I would like to get reimbursed!"),
	core.PipelineTranslation:                fixed("Меня зовут Вольфганг и я живу в Берлине"),
	core.PipelineSummarization:              fixed(summarizationSample),
	core.PipelineFeatureExtraction:          fixed("Today is a sunny day and I will get some ice cream."),
	core.PipelineTextGeneration:             sampleTextGeneration,
	core.PipelineText2TextGeneration:        fixed("The answer to the universe is"),
	core.PipelineImageTextToText:            sampleTextGeneration,
	core.PipelineFillMask:                   sampleFillMask,
	core.PipelineSentenceSimilarity:         sampleSentenceSimilarity,
	core.PipelineAutomaticSpeechRecognition: fixed(core.SampleAudioFile),
	core.PipelineAudioToAudio:               fixed(core.SampleAudioFile),
	core.PipelineAudioClassification:        fixed(core.SampleAudioFile),
	core.PipelineImageClassification:        fixed(core.SampleImageFile),
	core.PipelineImageToText:                fixed(core.SampleImageFile),
	core.PipelineObjectDetection:            fixed(core.SampleImageFile),
	core.PipelineImageSegmentation:          fixed(core.SampleImageFile),
	core.PipelineZeroShotImageClassification: fixed(core.SampleImageFile),
	core.PipelineTextToImage:                fixed("Astronaut riding a horse"),
	core.PipelineTextToSpeech:               fixed("The answer to the universe is 42"),
	core.PipelineTextToAudio:                fixed("liquid drum and bass, atmospheric synths, airy sounds"),
	core.PipelineTabularClassification:      sampleTabularPrediction,
	core.PipelineTabularRegression:          sampleTabularPrediction,
	core.PipelineDocumentQuestionAnswering:  fixed(VisualQuestionInput{Image: "cat.png", Question: "What is in this image?"}),
	core.PipelineVisualQuestionAnswering:    fixed(VisualQuestionInput{Image: "cat.png", Question: "What is in this image?"}),
}

// Sample returns the example input for the model's pipeline, or the
// platform fallback string when no sample exists.
func Sample(model core.ModelDescriptor) any {
	if fn, ok := sampleProviders[model.PipelineTag]; ok && fn != nil {
		return fn(model)
	}
	return core.NoExampleInput
}

// SampleJSON returns the example input serialized as single-line JSON,
// ready for embedding in a request body.
func SampleJSON(model core.ModelDescriptor) string {
	data, err := util.MarshalJSON(Sample(model))
	if err != nil {
		return `"` + core.NoExampleInput + `"`
	}
	return string(data)
}

// SampleMessages returns the example chat prompt for conversational
// pipelines. Following the platform samples, text-generation models get a
// plain question and any other conversational pipeline gets a multimodal
// image prompt.
func SampleMessages(model core.ModelDescriptor) []core.ChatMessage {
	if model.PipelineTag == core.PipelineTextGeneration {
		return []core.ChatMessage{{Role: core.RoleUser, Content: "What is the capital of France?"}}
	}
	return []core.ChatMessage{{
		Role: core.RoleUser,
		Content: []core.ChatContentPart{
			{Type: core.ContentPartTypeText, Text: "Describe this image in one sentence."},
			{Type: core.ContentPartTypeImageURL, ImageURL: &core.ChatImageURL{URL: SampleImageURL}},
		},
	}}
}

// SampleFilePath returns the local file placeholder for binary-input
// pipelines, or empty when the pipeline posts JSON.
func SampleFilePath(model core.ModelDescriptor) string {
	switch model.PipelineTag {
	case core.PipelineAutomaticSpeechRecognition, core.PipelineAudioToAudio, core.PipelineAudioClassification:
		return core.SampleAudioFile
	case core.PipelineImageClassification, core.PipelineImageToText, core.PipelineObjectDetection,
		core.PipelineImageSegmentation, core.PipelineZeroShotImageClassification:
		return core.SampleImageFile
	}
	return ""
}
