package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResponseGenerator is the response-generation collaborator: text in, text
// out. Implementations may be slow or unavailable; callers always invoke it
// under a bounded timeout.
type ResponseGenerator interface {
	GenerateResponse(ctx context.Context, text string) (string, error)
}

type generateRequest struct {
	Message string `json:"message"`
}

type generateResponse struct {
	Answer string `json:"answer"`
}

// HTTPGenerator calls an external chatbot endpoint over HTTP.
type HTTPGenerator struct {
	url    string
	client *http.Client
}

func NewHTTPGenerator(url string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *HTTPGenerator) GenerateResponse(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(generateRequest{Message: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chatbot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chatbot returned status %d: %s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode chatbot response: %w", err)
	}

	return out.Answer, nil
}

// StaticGenerator answers every message with a fixed response. Used in
// development when no chatbot endpoint is configured.
type StaticGenerator struct {
	Answer string
}

func (g *StaticGenerator) GenerateResponse(_ context.Context, _ string) (string, error) {
	return g.Answer, nil
}
