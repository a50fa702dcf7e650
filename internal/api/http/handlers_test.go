package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1-RoushanKumar/SafeScribe/internal/ai"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/logging"
	"github.com/1-RoushanKumar/SafeScribe/internal/notes"
)

type fakeGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

type fakeEnricher struct {
	web *ai.WebSearch
}

func (e *fakeEnricher) Search(ctx context.Context, query string) *ai.WebSearch {
	return e.web
}

type fixture struct {
	router *gin.Engine
	gen    *fakeGenerator
	store  notes.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gen := &fakeGenerator{answer: "generated text"}
	store := notes.NewManager()
	service := ai.NewService(gen, &fakeEnricher{}, logging.NewNop())
	h := NewHandlers(service, store, logging.NewNop())

	router := gin.New()
	router.GET("/health", h.Health)
	router.POST("/api/research/process", h.ProcessResearch)
	router.POST("/api/notes", h.CreateNote)
	router.GET("/api/notes", h.ListNotes)
	router.GET("/api/notes/:id", h.GetNote)
	router.PUT("/api/notes/:id", h.UpdateNote)
	router.DELETE("/api/notes/:id", h.DeleteNote)
	router.POST("/api/notes/:id/ai/summarize", h.SummarizeNote)
	router.POST("/api/notes/:id/ai/read", h.ReadNote)
	router.POST("/api/notes/:id/ai/translate", h.TranslateNote)
	router.POST("/api/notes/:id/ai/answer", h.AnswerNote)
	router.POST("/api/notes/:id/ai/explain", h.ExplainNote)

	return &fixture{router: router, gen: gen, store: store}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) ai.Response {
	t.Helper()
	var resp ai.Response
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestProcessResearchSuccess(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/research/process",
		`{"operation":"summarise","content":"note body","summaryLength":"short"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "generated text", resp.Answer)
	assert.Equal(t, "summarise", resp.Operation)
}

func TestProcessResearchValidationErrors(t *testing.T) {
	f := newFixture(t)

	// Missing operation
	w := f.do(t, http.MethodPost, "/api/research/process", `{"content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown operation names the supported set
	w = f.do(t, http.MethodPost, "/api/research/process", `{"operation":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "summarise, read, answer, translate, similar")

	// Malformed body
	w = f.do(t, http.MethodPost, "/api/research/process", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "error", resp.Operation)
}

func TestProcessResearchBackendError(t *testing.T) {
	f := newFixture(t)
	f.gen.err = &ai.BackendError{Message: "generative backend returned status 503"}

	w := f.do(t, http.MethodPost, "/api/research/process",
		`{"operation":"read","content":"x"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSummarizeNoteDefaultsToMedium(t *testing.T) {
	f := newFixture(t)
	note := f.store.Create("default", "a long note about gardening")

	w := f.do(t, http.MethodPost, "/api/notes/"+note.ID+"/ai/summarize", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.gen.prompts, 1)
	assert.True(t, strings.HasPrefix(f.gen.prompts[0], "Summarize in 3-5 sentences covering key points:"))
	assert.Contains(t, f.gen.prompts[0], "a long note about gardening")
}

func TestSummarizeNoteShortLength(t *testing.T) {
	f := newFixture(t)
	note := f.store.Create("default", "body")

	w := f.do(t, http.MethodPost, "/api/notes/"+note.ID+"/ai/summarize?length=short", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(f.gen.prompts[0], "Summarize in 1-2 sentences:"))
}

func TestTranslateNoteRequiresLanguage(t *testing.T) {
	f := newFixture(t)
	note := f.store.Create("default", "bonjour")

	w := f.do(t, http.MethodPost, "/api/notes/"+note.ID+"/ai/translate", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "error", resp.Operation)

	w = f.do(t, http.MethodPost, "/api/notes/"+note.ID+"/ai/translate?targetLanguage=French", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(f.gen.prompts[0], "Translate to French:"))
}

func TestAnswerNoteRequiresQuestion(t *testing.T) {
	f := newFixture(t)
	note := f.store.Create("default", "meeting notes")

	w := f.do(t, http.MethodPost, "/api/notes/"+note.ID+"/ai/answer", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "error", resp.Operation)

	w = f.do(t, http.MethodPost, "/api/notes/"+note.ID+"/ai/answer",
		`{"question":"What was decided?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, f.gen.prompts[0], "Question: What was decided?")
	assert.Contains(t, f.gen.prompts[0], "Context: meeting notes")
}

func TestExplainNoteUsesTopic(t *testing.T) {
	f := newFixture(t)
	note := f.store.Create("default", "physics notes")

	w := f.do(t, http.MethodPost, "/api/notes/"+note.ID+"/ai/explain",
		`{"topic":"Quantum entanglement"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "similar", resp.Operation)
	assert.Contains(t, f.gen.prompts[0], "Concept/Topic: Quantum entanglement")
	// Note content is not part of the explanation prompt
	assert.NotContains(t, f.gen.prompts[0], "physics notes")
}

func TestNoteAIEndpointsUnknownNote(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{
		"/api/notes/missing/ai/summarize",
		"/api/notes/missing/ai/read",
		"/api/notes/missing/ai/translate?targetLanguage=German",
		"/api/notes/missing/ai/answer",
		"/api/notes/missing/ai/explain",
	} {
		w := f.do(t, http.MethodPost, path, `{"question":"q","topic":"t"}`)
		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
	}
}

func TestNoteOwnershipBehavesLikeNotFound(t *testing.T) {
	f := newFixture(t)
	note := f.store.Create("alice", "private")

	// Default owner cannot see alice's note
	w := f.do(t, http.MethodGet, "/api/notes/"+note.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/notes/"+note.ID, nil)
	req.Header.Set(UserHeader, "alice")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotesCRUD(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/notes", `{"content":"first draft"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created notes.Note
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = f.do(t, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "first draft")

	w = f.do(t, http.MethodPut, "/api/notes/"+created.ID, `{"content":"second draft"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "second draft")

	w = f.do(t, http.MethodDelete, "/api/notes/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/notes/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateNoteRequiresContent(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/notes", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
