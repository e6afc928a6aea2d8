// Package ollama is a minimal client for the parts of the Ollama HTTP
// API this tool uses: model listing, model inspection, and one-shot
// vision generation.
package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// listTimeout bounds the fail-soft model discovery calls.
	listTimeout = 5 * time.Second
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL, e.g.
// "http://localhost:11434". Request deadlines come from the caller's
// context; the HTTP client itself carries no global timeout because a
// vision generation can legitimately run for minutes.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// ModelInfo is one entry from /api/tags.
type ModelInfo struct {
	Name string `json:"name"`
}

type tagsResponse struct {
	Models []ModelInfo `json:"models"`
}

// ModelDetails is the subset of /api/show used for capability probing.
type ModelDetails struct {
	Modelfile  string          `json:"modelfile"`
	Parameters string          `json:"parameters"`
	Details    json.RawMessage `json:"details"`
}

type showRequest struct {
	Name string `json:"name"`
}

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Stream bool     `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

// ListModels fetches installed model names via GET /api/tags.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model list returned status %d", resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

// ShowModel fetches details for one model via POST /api/show.
func (c *Client) ShowModel(ctx context.Context, name string) (*ModelDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	body, err := json.Marshal(showRequest{Name: name})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/show", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model details request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model details returned status %d", resp.StatusCode)
	}

	var details ModelDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode model details: %w", err)
	}
	return &details, nil
}

// Generate runs a single non-streaming vision prompt against a model.
// The image is sent base64-encoded. Failures are not retried; the
// caller decides whether a failure ends the run.
func (c *Client) Generate(ctx context.Context, model, prompt string, image []byte) (string, error) {
	if model == "" {
		return "", fmt.Errorf("model is required")
	}

	reqBody := generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	}
	if len(image) > 0 {
		reqBody.Images = []string{base64.StdEncoding.EncodeToString(image)}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if err := json.Unmarshal(raw, &ae); err == nil && ae.Error != "" {
			return "", fmt.Errorf("generate returned status %d: %s", resp.StatusCode, ae.Error)
		}
		return "", fmt.Errorf("generate returned status %d", resp.StatusCode)
	}

	var gen generateResponse
	if err := json.Unmarshal(raw, &gen); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	if gen.Error != "" {
		return "", fmt.Errorf("generate failed: %s", gen.Error)
	}
	return gen.Response, nil
}
