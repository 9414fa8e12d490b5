package server

import (
	"net/http"
	"time"

	"model2curl/internal/core"
	"model2curl/internal/metrics"

	"github.com/gin-gonic/gin"
)

func (s *Server) listModels(c *gin.Context) {
	c.JSON(http.StatusOK, s.modelsData)
}

// renderSnippet handles POST /v1/snippet.
func (s *Server) renderSnippet(c *gin.Context) {
	startTime := time.Now()

	var request SnippetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	model := s.getModelOrError(c, request.Model)
	if model == nil {
		return
	}

	s.respondWithSnippet(c, model, request.AccessToken, request.Options, startTime)
}

// renderSnippetQuery handles GET /v1/snippet?model=<id>.
func (s *Server) renderSnippetQuery(c *gin.Context) {
	startTime := time.Now()

	modelID := c.Query("model")
	if modelID == "" {
		respondWithError(c, http.StatusBadRequest, "model query parameter is required")
		return
	}

	opts, err := parseSnippetQueryOptions(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	model := s.getModelOrError(c, modelID)
	if model == nil {
		return
	}

	s.respondWithSnippet(c, model, c.Query("access_token"), opts, startTime)
}

// respondWithSnippet renders through the processor and writes the envelope.
// A model whose pipeline has no renderer still answers 200, with empty
// content and Supported false.
func (s *Server) respondWithSnippet(c *gin.Context, model *core.ModelDescriptor, accessToken string, opts *core.SnippetOptions, startTime time.Time) {
	result := s.snippetProcessor.ProcessSnippet(*model, accessToken, opts)
	supported := result.Snippet.Content != ""

	if supported {
		metrics.RecordRenderedWithMetrics(s.metricsService, startTime, model.ID, string(model.PipelineTag))
	} else {
		metrics.RecordUnsupportedWithMetrics(s.metricsService, startTime, model.ID, string(model.PipelineTag))
	}

	c.JSON(http.StatusOK, newSnippetResponse(model, supported, result.Snippet.Content))
}
