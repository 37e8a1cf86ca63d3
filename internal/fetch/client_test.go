package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookbook/internal/cache"
)

type githubUser struct {
	Login string `json:"login"`
	ID    int    `json:"id"`
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login":"octocat","id":583231}`))
	}))
	defer srv.Close()

	var u githubUser
	require.NoError(t, New().GetJSON(context.Background(), srv.URL+"/users/octocat", &u))
	assert.Equal(t, githubUser{Login: "octocat", ID: 583231}, u)
}

func TestGetJSONErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New()
	var out map[string]any

	err := c.GetJSON(context.Background(), srv.URL+"/missing", &out)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)

	err = c.GetJSON(context.Background(), srv.URL+"/bad", &out)
	assert.ErrorContains(t, err, "decode")
}

func TestGetJSONCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[{"id":1},{"id":2}]`))
	}))
	defer srv.Close()

	c := New(WithCache(cache.New(time.Minute, 0)))
	for i := 0; i < 3; i++ {
		var posts []map[string]int
		require.NoError(t, c.GetJSON(context.Background(), srv.URL+"/posts", &posts))
		assert.Len(t, posts, 2)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!doctype html><html><head><title>
  Example Domain </title></head><body><h1>Hi</h1></body></html>`))
	}))
	defer srv.Close()

	got, err := New().Title(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Example Domain", got)
}

func TestParseTitleMissing(t *testing.T) {
	_, err := ParseTitle(strings.NewReader(`<p>no head here</p>`))
	assert.ErrorIs(t, err, ErrNoTitle)
}

func TestContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out map[string]any
	assert.ErrorIs(t, New().GetJSON(ctx, srv.URL, &out), context.Canceled)
}
