package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/newsmaint/core"
	"github.com/poiesic/newsmaint/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePostgREST captures requests and plays back canned responses.
type fakePostgREST struct {
	t        *testing.T
	requests []*http.Request
	bodies   []string
	respond  func(w http.ResponseWriter, r *http.Request)
}

func newFakePostgREST(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*fakePostgREST, *httptest.Server) {
	f := &fakePostgREST{t: t, respond: respond}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.requests = append(f.requests, r)
		f.bodies = append(f.bodies, string(body))
		f.respond(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func TestStore_EmbedCandidates(t *testing.T) {
	fake, srv := newFakePostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 7, "title": "T", "ai_summary": "S"},
			{"id": 9, "title": "U", "ai_summary": "V"}
		]`))
	})

	s := New(srv.URL, "service-key", "")
	candidates, err := s.EmbedCandidates(context.Background())
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, core.EmbedCandidate{ID: 7, Title: "T", Summary: "S"}, candidates[0])
	assert.Equal(t, core.EmbedCandidate{ID: 9, Title: "U", Summary: "V"}, candidates[1])

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/v1/latest_news", req.URL.Path)

	q := req.URL.Query()
	assert.Equal(t, "id,title,ai_summary", q.Get("select"))
	assert.Equal(t, "is.null", q.Get("embedding"), "selector must only consider rows without an embedding")
	assert.Contains(t, q.Get("or"), "ai_summary.not.is.null", "selector must only consider rows with a summary")

	assert.Equal(t, "service-key", req.Header.Get("apikey"))
	assert.Equal(t, "Bearer service-key", req.Header.Get("Authorization"))
}

func TestStore_EmbedCandidates_Empty(t *testing.T) {
	_, srv := newFakePostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	s := New(srv.URL, "service-key", "")
	candidates, err := s.EmbedCandidates(context.Background())
	require.NoError(t, err, "empty must be distinguishable from error")
	assert.Empty(t, candidates)
}

func TestStore_EmbedCandidates_ServerError(t *testing.T) {
	_, srv := newFakePostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "boom"}`))
	})

	s := New(srv.URL, "service-key", "")
	_, err := s.EmbedCandidates(context.Background())
	assert.Error(t, err)
}

func TestStore_RepairCandidates_Pages(t *testing.T) {
	pages := [][]core.RepairCandidate{
		{{ID: 1, URL: "https://share.google/a", Title: "A"}, {ID: 2, URL: "https://share.google/b", Title: "B"}},
		{{ID: 3, URL: "https://www.google.com/url?url=x", Title: "C"}},
	}
	call := 0
	fake, srv := newFakePostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		var page []core.RepairCandidate
		if call < len(pages) {
			page = pages[call]
		}
		call++
		_ = json.NewEncoder(w).Encode(page)
	})

	s := New(srv.URL, "service-key", "latest_news")
	candidates, err := s.RepairCandidates(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, candidates, 3)
	assert.Equal(t, core.ID(1), candidates[0].ID)
	assert.Equal(t, core.ID(3), candidates[2].ID)

	// A full first page forces a second fetch; the short second page
	// ends the snapshot.
	require.Len(t, fake.requests, 2)
	q := fake.requests[0].URL.Query()
	assert.Equal(t, "id,url,title", q.Get("select"))
	assert.Contains(t, q.Get("or"), "share.google")
	assert.Contains(t, q.Get("or"), "google.com/url")
	assert.Contains(t, q.Get("or"), "google.com/share")
	assert.Equal(t, "id.asc.nullslast", q.Get("order"))
}

func TestStore_SetEmbedding(t *testing.T) {
	fake, srv := newFakePostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "0-0/1")
		w.WriteHeader(http.StatusNoContent)
	})

	s := New(srv.URL, "service-key", "")
	err := s.SetEmbedding(context.Background(), 7, []float32{0.25, -0.5})
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/rest/v1/latest_news", req.URL.Path)
	assert.Equal(t, "eq.7", req.URL.Query().Get("id"))

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(fake.bodies[0]), &payload))
	require.Len(t, payload, 1, "only the embedding column may be written")
	assert.Contains(t, payload, "embedding")
}

func TestStore_SetCanonicalURL(t *testing.T) {
	fake, srv := newFakePostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "0-0/1")
		w.WriteHeader(http.StatusNoContent)
	})

	s := New(srv.URL, "service-key", "")
	err := s.SetCanonicalURL(context.Background(), 42, "https://news.site/post/42", "news.site")
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "eq.42", fake.requests[0].URL.Query().Get("id"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(fake.bodies[0]), &payload))
	assert.Equal(t, map[string]string{
		"url":    "https://news.site/post/42",
		"source": "news.site",
	}, payload, "only url and source may be written")
}

func TestStore_Update_NoRowMatched(t *testing.T) {
	_, srv := newFakePostgREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "*/0")
		w.WriteHeader(http.StatusNoContent)
	})

	s := New(srv.URL, "service-key", "")
	err := s.SetEmbedding(context.Background(), 404, []float32{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
