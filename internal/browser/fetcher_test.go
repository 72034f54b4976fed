package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<p>hi</p>"))
	}))
	defer srv.Close()

	res, err := NewFetcher().Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, srv.URL+"/old", res.URL)
	assert.Equal(t, srv.URL+"/new", res.FinalURL)
	assert.Equal(t, "<p>hi</p>", string(res.Body))
	assert.True(t, IsHTML(res.ContentType))
	assert.Equal(t, defaultUserAgent, gotUA)
}

func TestFetchBadURL(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "://nope")
	assert.ErrorContains(t, err, "creating request")
}

func TestIsHTML(t *testing.T) {
	assert.True(t, IsHTML("application/xhtml+xml"))
	assert.True(t, IsHTML(""))
	assert.False(t, IsHTML("application/json"))
}
