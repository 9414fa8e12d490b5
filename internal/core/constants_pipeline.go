package core

// PipelineTag classifies a model's intended use on the inference platform.
// The set of tags is closed; tags outside it are carried verbatim but
// never gain snippet support.
type PipelineTag string

// Pipeline tags with curl snippet support.
const (
	PipelineTextClassification         PipelineTag = "text-classification"
	PipelineTokenClassification        PipelineTag = "token-classification"
	PipelineTableQuestionAnswering     PipelineTag = "table-question-answering"
	PipelineQuestionAnswering          PipelineTag = "question-answering"
	PipelineZeroShotClassification     PipelineTag = "zero-shot-classification"
	PipelineTranslation                PipelineTag = "translation"
	PipelineSummarization              PipelineTag = "summarization"
	PipelineFeatureExtraction          PipelineTag = "feature-extraction"
	PipelineTextGeneration             PipelineTag = "text-generation"
	PipelineText2TextGeneration        PipelineTag = "text2text-generation"
	PipelineImageTextToText            PipelineTag = "image-text-to-text"
	PipelineFillMask                   PipelineTag = "fill-mask"
	PipelineSentenceSimilarity         PipelineTag = "sentence-similarity"
	PipelineAutomaticSpeechRecognition PipelineTag = "automatic-speech-recognition"
	PipelineAudioToAudio               PipelineTag = "audio-to-audio"
	PipelineAudioClassification        PipelineTag = "audio-classification"
	PipelineImageClassification        PipelineTag = "image-classification"
	PipelineImageToText                PipelineTag = "image-to-text"
	PipelineObjectDetection            PipelineTag = "object-detection"
	PipelineImageSegmentation          PipelineTag = "image-segmentation"
)

// Pipeline tags recognized by the platform but without curl snippet support.
const (
	PipelineTextToImage                 PipelineTag = "text-to-image"
	PipelineTextToSpeech                PipelineTag = "text-to-speech"
	PipelineTextToAudio                 PipelineTag = "text-to-audio"
	PipelineTextToVideo                 PipelineTag = "text-to-video"
	PipelineZeroShotImageClassification PipelineTag = "zero-shot-image-classification"
	PipelineDocumentQuestionAnswering   PipelineTag = "document-question-answering"
	PipelineVisualQuestionAnswering     PipelineTag = "visual-question-answering"
	PipelineTabularClassification       PipelineTag = "tabular-classification"
	PipelineTabularRegression           PipelineTag = "tabular-regression"
)
