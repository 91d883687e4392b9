package exec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrUnsupportedLanguage marks a client error: the language identifier
// is not in the supported table.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// UpstreamError is a service error from the execution engine; Message
// carries the upstream's own description when one was returned.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Failed to compile code"
}

// Client proxies run requests to the Piston execute API. Stateless:
// each request is independent and bounded by the configured timeout.
type Client struct {
	url  string
	http *http.Client
	log  *slog.Logger
}

func NewClient(url string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

type pistonFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type pistonRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
	Stdin    string       `json:"stdin"`
}

type pistonResponse struct {
	Run struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
	} `json:"run"`
	Message string `json:"message"`
}

// Execute wraps the snippet in the language's boilerplate, forwards it
// to the engine and returns the sanitized combined output.
func (c *Client) Execute(ctx context.Context, language, code string) (string, error) {
	lang, ok := LookupLanguage(language)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	payload := pistonRequest{
		Language: lang.Engine,
		Version:  lang.Version,
		Files: []pistonFile{{
			Name:    "main." + lang.Extension,
			Content: lang.Template(code),
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &UpstreamError{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &UpstreamError{}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("exec.request", "language", language, "engine", lang.Engine, "version", lang.Version)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("exec.upstream", "err", err)
		return "", &UpstreamError{}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{}
	}

	var result pistonResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", &UpstreamError{}
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("exec.upstream", "status", resp.StatusCode, "message", result.Message)
		return "", &UpstreamError{Message: result.Message}
	}

	output := result.Run.Stdout
	if result.Run.Stderr != "" {
		if output != "" {
			output += "\nError:\n" + result.Run.Stderr
		} else {
			output = result.Run.Stderr
		}
	}

	return Sanitize(output), nil
}
