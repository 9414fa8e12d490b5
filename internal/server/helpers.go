package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"model2curl/internal/cache"
	"model2curl/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SnippetRequest is the POST /v1/snippet request body.
type SnippetRequest struct {
	Model       string               `json:"model" binding:"required"`
	AccessToken string               `json:"access_token"`
	Options     *core.SnippetOptions `json:"options"`
}

// SnippetResponse is the snippet rendering response envelope. Supported is
// false for catalog models whose pipeline has no renderer; Content is then
// empty rather than the request failing.
type SnippetResponse struct {
	ID          string           `json:"id"`
	Object      string           `json:"object"`
	Created     int64            `json:"created"`
	Model       string           `json:"model"`
	PipelineTag core.PipelineTag `json:"pipeline_tag,omitempty"`
	Supported   bool             `json:"supported"`
	Content     string           `json:"content"`
}

func newSnippetResponse(model *core.ModelDescriptor, supported bool, content string) SnippetResponse {
	return SnippetResponse{
		ID:          core.SnippetIDPrefix + uuid.NewString(),
		Object:      core.SnippetObjectType,
		Created:     time.Now().Unix(),
		Model:       model.ID,
		PipelineTag: model.PipelineTag,
		Supported:   supported,
		Content:     content,
	}
}

// respondWithError returns a JSON error response
func respondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// lookupModel resolves a model ID through the model cache, falling back to
// the catalog and caching the hit.
func (s *Server) lookupModel(modelID string) *core.ModelDescriptor {
	key := cache.GenerateModelCacheKey(modelID)
	if model, ok := s.cache.GetModelCache(key); ok {
		return model
	}
	model := s.snippetProcessor.FindModel(modelID)
	if model != nil {
		s.cache.SetModelCache(key, model)
	}
	return model
}

// getModelOrError resolves the model or writes a 404.
func (s *Server) getModelOrError(c *gin.Context, modelID string) *core.ModelDescriptor {
	model := s.lookupModel(modelID)
	if model == nil {
		respondWithError(c, http.StatusNotFound, fmt.Sprintf("Model %s not found", modelID))
		return nil
	}
	return model
}

// parseSnippetQueryOptions builds SnippetOptions from query parameters.
// Only parameters present in the query become set fields, preserving the
// supplied-versus-default distinction downstream. Returns nil options when
// no parameter is present.
func parseSnippetQueryOptions(c *gin.Context) (*core.SnippetOptions, error) {
	opts := &core.SnippetOptions{}
	present := false

	if raw, ok := c.GetQuery("stream"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid stream value %q", raw)
		}
		opts.Streaming = &v
		present = true
	}
	if raw, ok := c.GetQuery("max_tokens"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid max_tokens value %q", raw)
		}
		opts.MaxTokens = &v
		present = true
	}
	if raw, ok := c.GetQuery("temperature"); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid temperature value %q", raw)
		}
		opts.Temperature = &v
		present = true
	}
	if raw, ok := c.GetQuery("top_p"); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid top_p value %q", raw)
		}
		opts.TopP = &v
		present = true
	}

	if !present {
		return nil, nil
	}
	return opts, nil
}
