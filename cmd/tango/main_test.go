package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTango(t *testing.T, dir string, args ...string) (int, string, string) {
	t.Helper()
	base := []string{
		"-config", filepath.Join(dir, "config.toml"),
		"-data", filepath.Join(dir, "data"),
	}
	var stdout, stderr bytes.Buffer
	code := run(append(base, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	code := run([]string{"-version"}, &stdout, &bytes.Buffer{})
	assert.Equal(t, 0, code)
	assert.Equal(t, "tango "+version+"\n", stdout.String())
}

func TestRecentCommands(t *testing.T) {
	for _, store := range []string{"file", "sqlite"} {
		t.Run(store, func(t *testing.T) {
			dir := t.TempDir()

			code, out, _ := runTango(t, dir, "-store", store, "recent")
			require.Equal(t, 0, code)
			assert.Contains(t, out, "No recent searches.")

			for _, w := range []string{"cat", "dog", "cat"} {
				code, _, errOut := runTango(t, dir, "-store", store, "add", w)
				require.Equal(t, 0, code, errOut)
			}

			code, out, _ = runTango(t, dir, "-store", store, "recent")
			require.Equal(t, 0, code)
			assert.Contains(t, out, "[1] cat")
			assert.Contains(t, out, "[2] dog")
			assert.NotContains(t, out, "[3]")

			code, out, _ = runTango(t, dir, "-store", store, "html")
			require.Equal(t, 0, code)
			assert.Contains(t, out, `<a href="http://localhost:8080/search?query=cat">cat</a>`)

			code, _, _ = runTango(t, dir, "-store", store, "clear")
			require.Equal(t, 0, code)
			_, out, _ = runTango(t, dir, "-store", store, "recent")
			assert.Contains(t, out, "No recent searches.")
		})
	}
}

func TestCapacityFlag(t *testing.T) {
	dir := t.TempDir()
	for _, w := range []string{"a", "b", "c"} {
		code, _, _ := runTango(t, dir, "-store", "file", "-capacity", "2", "add", w)
		require.Equal(t, 0, code)
	}
	_, out, _ := runTango(t, dir, "-store", "file", "-capacity", "2", "recent")
	assert.Contains(t, out, "[1] c")
	assert.Contains(t, out, "[2] b")
	assert.NotContains(t, out, "[3]")
}

func TestSearchCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<div class="result"><a href="/w/1">%s</a></div>`, r.URL.Query().Get("query"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	code, out, errOut := runTango(t, dir, "-store", "file", "-endpoint", srv.URL+"/search", "search", "neko")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "neko")

	_, out, _ = runTango(t, dir, "-store", "file", "recent")
	assert.Contains(t, out, "[1] neko")
}

func TestSearchFailureStillRecordsTerm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	dir := t.TempDir()
	code, _, errOut := runTango(t, dir, "-store", "file", "-endpoint", srv.URL, "search", "inu")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Search failed")

	_, out, _ := runTango(t, dir, "-store", "file", "recent")
	assert.Contains(t, out, "[1] inu")
}

func TestBadInput(t *testing.T) {
	dir := t.TempDir()

	code, _, errOut := runTango(t, dir, "-store", "file", "add")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Usage: tango add <term>")

	code, _, errOut = runTango(t, dir, "-store", "file", "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Unknown command: frobnicate")

	code, _, errOut = runTango(t, dir, "-store", "redis", "recent")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown store")

	code, _, errOut = runTango(t, dir, "-theme", "neon", "recent")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Unknown theme: neon")

	code, _, errOut = runTango(t, dir, "-capacity", "-1", "-store", "memory", "recent")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "capacity must be at least 1")
}
