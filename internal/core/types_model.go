package core

import "slices"

// ModelDescriptor identifies a hosted model and the capabilities that
// drive snippet rendering. Descriptors are caller-owned input; nothing
// in this module mutates them.
type ModelDescriptor struct {
	ID          string      `json:"id"`
	Tags        []string    `json:"tags,omitempty"`
	PipelineTag PipelineTag `json:"pipeline_tag,omitempty"`
	MaskToken   string      `json:"mask_token,omitempty"`
}

// HasTag reports whether the descriptor carries the given capability tag.
func (m *ModelDescriptor) HasTag(tag string) bool {
	return slices.Contains(m.Tags, tag)
}

// IsConversational reports whether the model is tagged for multi-turn chat.
func (m *ModelDescriptor) IsConversational() bool {
	return m.HasTag(TagConversational)
}

// Mask returns the model's mask token, falling back to the platform
// default when the descriptor leaves it unset.
func (m *ModelDescriptor) Mask() string {
	if m.MaskToken == "" {
		return DefaultMaskToken
	}
	return m.MaskToken
}

// Clone returns a deep copy safe to hand out from caches.
func (m *ModelDescriptor) Clone() *ModelDescriptor {
	if m == nil {
		return nil
	}
	out := *m
	out.Tags = slices.Clone(m.Tags)
	return &out
}

// ModelInfo represents a single model entry in the models list response.
type ModelInfo struct {
	ID          string      `json:"id"`
	Object      string      `json:"object"`
	Created     int64       `json:"created"`
	OwnedBy     string      `json:"owned_by"`
	PipelineTag PipelineTag `json:"pipeline_tag,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// ModelList is the models list response envelope.
type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}

// CatalogConfig holds the served model catalog from models.json.
type CatalogConfig struct {
	Models []ModelDescriptor `json:"models"`
}
