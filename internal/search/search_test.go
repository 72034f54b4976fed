package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<ul id="results">
  <li class="result">
    <a class="result__title" href="/word/1">猫 (ねこ)</a>
    <p class="result__snippet">cat;
       pussy</p>
  </li>
  <li class="result">
    <a href="https://example.com/word/2">子猫</a>
  </li>
  <li class="result"><span>no title here</span></li>
</ul>
</body></html>`

func TestURL(t *testing.T) {
	c := NewClient("", "", "")
	assert.Equal(t, "http://localhost:8080/search?query=cat", c.URL("cat"))
	assert.Equal(t, "http://localhost:8080/search?query=a+b%26c", c.URL("a b&c"))

	c = NewClient("https://html.duckduckgo.com/html/?kl=jp-jp", "q", "")
	assert.Equal(t, "https://html.duckduckgo.com/html/?kl=jp-jp&q=%E7%8C%AB", c.URL("猫"))
}

func TestSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, resultsPage)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/search", "", "")
	results, err := c.Search(context.Background(), "neko")
	require.NoError(t, err)
	assert.Equal(t, "neko", gotQuery)

	require.Len(t, results, 3)
	assert.Equal(t, Result{Title: "猫 (ねこ)", URL: srv.URL + "/word/1", Snippet: "cat; pussy"}, results[0])
	assert.Equal(t, Result{Title: "子猫", URL: "https://example.com/word/2"}, results[1])
	assert.Equal(t, "no title here", results[2].Title)
	assert.Empty(t, results[2].URL)
}

func TestSearchCustomSelector(t *testing.T) {
	c := NewClient("", "", "li.none")
	results, err := c.Parse([]byte(resultsPage), "http://localhost/")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", "").Search(context.Background(), "x")
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestSearchRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", "").Search(context.Background(), "x")
	assert.ErrorContains(t, err, "endpoint returned application/json, want HTML")
}

func TestSearchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, "", "").Search(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectTermType(t *testing.T) {
	tests := []struct {
		term string
		want TermType
	}{
		{"cat", Romaji},
		{"", Romaji},
		{"ねこ", Kana},
		{"ネコ!", Kana},
		{"猫", Kanji},
		{"子ねこ", Kanji},
		{"123", Romaji},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectTermType(tt.term))
		})
	}
}
