// Package genai is the client for the external generative-language service.
// It issues a single generateContent call per prompt and extracts the first
// candidate's text. Every failure mode (transport error, non-2xx status,
// malformed or empty response body) is reported as a distinguishable upstream
// error so callers never render an empty or placeholder completion.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

const defaultModel = "gemini-2.0-flash"

// Client calls the completion service. Construct with NewClient; the zero
// value is not usable.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a completion client. timeout bounds each request; callers
// may impose a shorter deadline through ctx.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      defaultModel,
	}
}

// request/response envelopes for the generateContent API.

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete sends prompt (plus an optional secondary context string) to the
// completion service and returns the extracted completion text. Single
// attempt, no retries.
func (c *Client) Complete(ctx context.Context, prompt, contextText string) (string, error) {
	text := prompt
	if contextText != "" {
		text = fmt.Sprintf("%s my params: %s", prompt, contextText)
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	// The key travels in a header, not the query: transport errors embed the
	// request URL in their message and those end up in logs.
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "completion service unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "completion service response unreadable", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperr.Wrap(apperr.KindUpstream, "completion service error",
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 256)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "completion service returned malformed response", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", apperr.New(apperr.KindUpstream, "completion service returned no candidates")
	}

	completion := parsed.Candidates[0].Content.Parts[0].Text
	if completion == "" {
		return "", apperr.New(apperr.KindUpstream, "completion service returned empty text")
	}

	return completion, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
