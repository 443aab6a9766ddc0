package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/faqharvest/internal/logger"
	"github.com/ppiankov/faqharvest/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	return NewLoader(NewFetcher(5*time.Second, "test-agent", 1<<20, true, "", "", ""), logger.NewNop())
}

func TestLoader_Load(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html><body><h3>Q?</h3></body></html>`)
	}))
	defer server.Close()

	res := newTestLoader().Load(context.Background(), server.URL)
	require.True(t, res.OK())
	assert.Equal(t, server.URL, res.Doc.URL)
	assert.Len(t, selector.Query(res.Doc.Root, selector.Tag("h3")), 1)
}

func TestLoader_LoadFailureIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	res := newTestLoader().Load(context.Background(), server.URL)
	assert.False(t, res.OK())
	assert.Nil(t, res.Doc)
	var statusErr *StatusError
	assert.ErrorAs(t, res.Err, &statusErr)
}

func TestLoader_LoadUnreachable(t *testing.T) {
	res := newTestLoader().Load(context.Background(), "http://127.0.0.1:1/faq")
	assert.False(t, res.OK())
	assert.Error(t, res.Err)
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pinned.html")
	require.NoError(t, os.WriteFile(path, []byte(`<main><h2>Q?</h2><p>A</p></main>`), 0644))

	res := newTestLoader().LoadFile(path, "https://live.example/faq")
	require.True(t, res.OK())
	assert.Equal(t, "https://live.example/faq", res.Doc.URL)

	missing := newTestLoader().LoadFile(filepath.Join(dir, "nope.html"), "https://live.example/faq")
	assert.False(t, missing.OK())
	assert.ErrorIs(t, missing.Err, os.ErrNotExist)
}

func TestLoadResult_OK(t *testing.T) {
	assert.False(t, LoadResult{}.OK())
	assert.False(t, LoadResult{Doc: &Document{}}.OK())
}
