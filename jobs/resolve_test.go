package jobs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirectResolver_FollowsChain(t *testing.T) {
	var sawMethod string
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/abc123", func(w http.ResponseWriter, r *http.Request) {
		sawMethod = r.Method
		http.Redirect(w, r, "/hop", http.StatusFound)
	})
	mux.HandleFunc("/hop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/post/42", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/post/42", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	resolver := NewRedirectResolver()
	final, err := resolver.Resolve(context.Background(), srv.URL+"/abc123")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/post/42", final)
	assert.Equal(t, http.MethodHead, sawMethod)
}

func TestRedirectResolver_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resolver := NewRedirectResolver()
	_, err := resolver.Resolve(context.Background(), srv.URL+"/gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestRedirectResolver_RedirectCap(t *testing.T) {
	var srv *httptest.Server
	hops := 0
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hops++
		http.Redirect(w, r, fmt.Sprintf("/loop/%d", hops), http.StatusFound)
	}))
	defer srv.Close()

	resolver := NewRedirectResolver()
	_, err := resolver.Resolve(context.Background(), srv.URL+"/loop/0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirects")
}

func TestRedirectResolver_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed on purpose: connection refused.

	resolver := NewRedirectResolver()
	_, err := resolver.Resolve(context.Background(), srv.URL+"/abc")
	assert.Error(t, err)
}

func TestRedirectResolver_BadURL(t *testing.T) {
	resolver := NewRedirectResolver()
	_, err := resolver.Resolve(context.Background(), "://not a url")
	assert.Error(t, err)
}
