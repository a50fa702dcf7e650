// Package http contains the REST handlers. Handlers stay thin: they bind
// input, delegate to the AI pipeline or the note store, and translate
// pipeline errors into status codes.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1-RoushanKumar/SafeScribe/internal/ai"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/logging"
	"github.com/1-RoushanKumar/SafeScribe/internal/notes"
)

// UserHeader names the caller for note ownership scoping.
const UserHeader = "X-User"

const defaultOwner = "default"

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	service *ai.Service
	notes   notes.Store
	logger  *logging.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(service *ai.Service, store notes.Store, logger *logging.Logger) *Handlers {
	return &Handlers{
		service: service,
		notes:   store,
		logger:  logger,
	}
}

// Root handles the root endpoint.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "SafeScribe Backend",
		"version": "1.0.0",
		"status":  "running",
	})
}

// Health handles health checks.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// ProcessResearch runs an arbitrary request through the AI pipeline.
func (h *Handlers) ProcessResearch(c *gin.Context) {
	var req ai.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ai.Response{
			Answer:    "Invalid request body: " + err.Error(),
			Operation: ai.OpError,
		})
		return
	}

	resp, err := h.service.Process(c.Request.Context(), req)
	if err != nil {
		h.writeProcessError(c, req.Operation, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SummarizeNote summarizes a stored note. Length comes from the query
// string and defaults to medium.
func (h *Handlers) SummarizeNote(c *gin.Context) {
	note, ok := h.loadNote(c)
	if !ok {
		return
	}

	h.runPipeline(c, ai.Request{
		Operation:     ai.OpSummarise,
		Content:       note.Content,
		SummaryLength: c.DefaultQuery("length", "medium"),
	})
}

// ReadNote rewrites a stored note for text-to-speech playback.
func (h *Handlers) ReadNote(c *gin.Context) {
	note, ok := h.loadNote(c)
	if !ok {
		return
	}

	h.runPipeline(c, ai.Request{
		Operation: ai.OpRead,
		Content:   note.Content,
	})
}

// TranslateNote translates a stored note into the requested language.
func (h *Handlers) TranslateNote(c *gin.Context) {
	note, ok := h.loadNote(c)
	if !ok {
		return
	}

	lang := c.Query("targetLanguage")
	if lang == "" {
		c.JSON(http.StatusBadRequest, ai.Response{
			Answer:    "targetLanguage query parameter is required",
			Operation: ai.OpError,
		})
		return
	}

	h.runPipeline(c, ai.Request{
		Operation:      ai.OpTranslate,
		Content:        note.Content,
		TargetLanguage: lang,
	})
}

// AnswerNote answers a question against a stored note.
func (h *Handlers) AnswerNote(c *gin.Context) {
	note, ok := h.loadNote(c)
	if !ok {
		return
	}

	var body struct {
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Question == "" {
		c.JSON(http.StatusBadRequest, ai.Response{
			Answer:    "question field is required",
			Operation: ai.OpError,
		})
		return
	}

	h.runPipeline(c, ai.Request{
		Operation: ai.OpAnswer,
		Content:   note.Content,
		Question:  body.Question,
	})
}

// ExplainNote produces a detailed explanation of a topic related to a
// stored note. The note itself only gates access; the explanation is
// driven by the topic alone.
func (h *Handlers) ExplainNote(c *gin.Context) {
	_, ok := h.loadNote(c)
	if !ok {
		return
	}

	var body struct {
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Topic == "" {
		c.JSON(http.StatusBadRequest, ai.Response{
			Answer:    "topic field is required",
			Operation: ai.OpError,
		})
		return
	}

	h.runPipeline(c, ai.Request{
		Operation: ai.OpSimilar,
		Question:  body.Topic,
	})
}

// CreateNote stores a new note for the caller.
func (h *Handlers) CreateNote(c *gin.Context) {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "content field is required",
		})
		return
	}

	note := h.notes.Create(owner(c), body.Content)
	c.JSON(http.StatusCreated, note)
}

// ListNotes returns all of the caller's notes, newest first.
func (h *Handlers) ListNotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notes": h.notes.List(owner(c)),
	})
}

// GetNote returns one note.
func (h *Handlers) GetNote(c *gin.Context) {
	note, ok := h.loadNote(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, note)
}

// UpdateNote replaces a note's content.
func (h *Handlers) UpdateNote(c *gin.Context) {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "content field is required",
		})
		return
	}

	note, ok := h.notes.Update(owner(c), c.Param("id"), body.Content)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "note not found",
		})
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note.
func (h *Handlers) DeleteNote(c *gin.Context) {
	if !h.notes.Delete(owner(c), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "note not found",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "note deleted",
	})
}

// runPipeline executes the request and writes the response or the mapped
// error.
func (h *Handlers) runPipeline(c *gin.Context, req ai.Request) {
	resp, err := h.service.Process(c.Request.Context(), req)
	if err != nil {
		h.writeProcessError(c, req.Operation, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeProcessError maps pipeline errors onto status codes. Validation
// problems are the caller's fault, backend problems are a dependency fault.
func (h *Handlers) writeProcessError(c *gin.Context, operation string, err error) {
	var (
		vErr *ai.ValidationError
		oErr *ai.UnsupportedOperationError
		bErr *ai.BackendError
	)

	switch {
	case errors.As(err, &vErr), errors.As(err, &oErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.As(err, &bErr):
		h.logger.Error("AI backend failure",
			zap.String("operation", operation),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
	default:
		h.logger.Error("Unexpected pipeline failure",
			zap.String("operation", operation),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
		})
	}
}

// loadNote fetches the caller's note from the path parameter, writing a 404
// when it does not exist or belongs to someone else.
func (h *Handlers) loadNote(c *gin.Context) (*notes.Note, bool) {
	note, ok := h.notes.Get(owner(c), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "note not found",
		})
		return nil, false
	}
	return note, true
}

func owner(c *gin.Context) string {
	if user := c.GetHeader(UserHeader); user != "" {
		return user
	}
	return defaultOwner
}
