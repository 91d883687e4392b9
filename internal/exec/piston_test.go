package exec

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLookupLanguage(t *testing.T) {
	lang, ok := LookupLanguage("python3")
	require.True(t, ok)
	assert.Equal(t, "python", lang.Engine)
	assert.Equal(t, "3.10", lang.Version)
	assert.Equal(t, "py", lang.Extension)
	assert.False(t, lang.Compile)

	_, ok = LookupLanguage("not-a-real-lang")
	assert.False(t, ok)
}

func TestTemplatesWrapSnippet(t *testing.T) {
	tests := []struct {
		language string
		contains []string
	}{
		{"python3", []string{"print(1)"}},
		{"java", []string{"public class Main", "print(1)"}},
		{"cpp", []string{"#include <iostream>", "print(1)"}},
		{"c", []string{"#include <stdio.h>", "print(1)"}},
		{"go", []string{"package main", "print(1)"}},
		{"rust", []string{"fn main()", "print(1)"}},
		{"csharp", []string{"using System;", "print(1)"}},
		{"nodejs", []string{"print(1)"}},
		{"ruby", []string{"print(1)"}},
		{"swift", []string{"print(1)"}},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			lang, ok := LookupLanguage(tt.language)
			require.True(t, ok)
			wrapped := lang.Template("print(1)")
			for _, want := range tt.contains {
				assert.Contains(t, wrapped, want)
			}
		})
	}
}

func TestExecuteSuccess(t *testing.T) {
	var gotReq pistonRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"run": map[string]string{"stdout": "1\n", "stderr": ""},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	out, err := c.Execute(context.Background(), "python3", "print(1)")
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	assert.Equal(t, "python", gotReq.Language)
	assert.Equal(t, "3.10", gotReq.Version)
	require.Len(t, gotReq.Files, 1)
	assert.Equal(t, "main.py", gotReq.Files[0].Name)
	assert.Equal(t, "print(1)", gotReq.Files[0].Content)
}

func TestExecuteCombinesStderr(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"run": map[string]string{"stdout": "partial", "stderr": "boom"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	out, err := c.Execute(context.Background(), "python3", "x")
	require.NoError(t, err)
	assert.Equal(t, "partial\nError:\nboom", out)
}

func TestExecuteStderrOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"run": map[string]string{"stdout": "", "stderr": "SyntaxError"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	out, err := c.Execute(context.Background(), "python3", "x")
	require.NoError(t, err)
	assert.Equal(t, "SyntaxError", out)
}

func TestExecuteUnsupportedLanguage(t *testing.T) {
	c := NewClient("http://unused.invalid", time.Second, testLogger())

	_, err := c.Execute(context.Background(), "not-a-real-lang", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

func TestExecuteUpstreamErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "runtime is unavailable"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := c.Execute(context.Background(), "python3", "x")
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "runtime is unavailable", upErr.Error())
}

func TestExecuteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond, testLogger())
	_, err := c.Execute(context.Background(), "python3", "x")
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "Failed to compile code", upErr.Error())
}

func TestExecuteGarbageResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	_, err := c.Execute(context.Background(), "python3", "x")
	require.Error(t, err)

	var upErr *UpstreamError
	assert.True(t, errors.As(err, &upErr))
}

func TestExecuteWrapsCompiledLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req pistonRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Files, 1)
		assert.Equal(t, "main.go", req.Files[0].Name)
		assert.True(t, strings.Contains(req.Files[0].Content, "package main"))
		json.NewEncoder(w).Encode(map[string]any{
			"run": map[string]string{"stdout": "ok"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	out, err := c.Execute(context.Background(), "go", `fmt.Println("ok")`)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}
