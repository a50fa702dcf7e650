package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/config"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/logging"
)

func TestNeedsSearch(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want bool
	}{
		{
			name: "keyword hit",
			req:  Request{Operation: "answer", Question: "What is the latest news on Mars missions?"},
			want: true,
		},
		{
			name: "no keyword",
			req:  Request{Operation: "answer", Question: "What is photosynthesis?"},
			want: false,
		},
		{
			name: "celebrity special case",
			req:  Request{Operation: "answer", Question: "Tom Cruise movies ranked"},
			want: true,
		},
		{
			name: "tom cruise without movies",
			req:  Request{Operation: "answer", Question: "How old is Tom Cruise exactly"},
			want: false,
		},
		{
			name: "keyword in non-answer operation",
			req:  Request{Operation: "summarise", Question: "latest news", Content: "x"},
			want: false,
		},
		{
			name: "empty question",
			req:  Request{Operation: "answer"},
			want: false,
		},
		{
			name: "operation case-insensitive",
			req:  Request{Operation: "ANSWER", Question: "who is the president?"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsSearch(tt.req))
		})
	}
}

func newTestSearcher(endpoint string) *Searcher {
	return NewSearcher(config.SearchConfig{
		Endpoint: endpoint,
		APIKey:   "test-key",
		EngineID: "test-cx",
		Timeout:  5 * time.Second,
	}, logging.NewNop())
}

func TestSearcherCondensesResults(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"key": r.URL.Query().Get("key"),
			"cx":  r.URL.Query().Get("cx"),
			"q":   r.URL.Query().Get("q"),
			"num": r.URL.Query().Get("num"),
		}
		w.Write([]byte(`{"items":[
			{"title":"First","link":"https://a.example","snippet":"alpha"},
			{"title":"Second","snippet":"beta"},
			{"link":"https://c.example"}
		]}`))
	}))
	defer server.Close()

	web := newTestSearcher(server.URL).Search(context.Background(), "latest go release")
	require.NotNil(t, web)

	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "test-cx", gotQuery["cx"])
	assert.Equal(t, "latest go release", gotQuery["q"])
	assert.Equal(t, "5", gotQuery["num"])

	expected := "Title: First\nURL: https://a.example\nSnippet: alpha\n---\n" +
		"Title: Second\nURL: N/A\nSnippet: beta\n---\n" +
		"Title: N/A\nURL: https://c.example\nSnippet: N/A\n---\n"
	assert.Equal(t, expected, web.CombinedSnippets)

	// Only results with a usable link contribute sources, in provider order
	assert.Equal(t, []string{"https://a.example", "https://c.example"}, web.SourceURLs)
}

func TestSearcherNoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"kind":"customsearch#search"}`))
	}))
	defer server.Close()

	web := newTestSearcher(server.URL).Search(context.Background(), "anything")
	require.NotNil(t, web)

	assert.Empty(t, web.CombinedSnippets)
	assert.Empty(t, web.SourceURLs)
}

func TestSearcherDegradesToNil(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		assert.Nil(t, newTestSearcher(server.URL).Search(context.Background(), "q"))
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		assert.Nil(t, newTestSearcher(server.URL).Search(context.Background(), "q"))
	})

	t.Run("unreachable provider", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		assert.Nil(t, newTestSearcher(server.URL).Search(context.Background(), "q"))
	})
}

func TestSearcherBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	searcher := newTestSearcher(server.URL)
	for i := 0; i < 8; i++ {
		assert.Nil(t, searcher.Search(context.Background(), "q"))
	}

	// The breaker trips after five consecutive failures; later attempts
	// degrade without reaching the provider.
	assert.Equal(t, 5, calls)
}
