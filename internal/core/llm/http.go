package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultAskTimeout bounds a single ask call when the caller supplies no
// tighter deadline
const DefaultAskTimeout = 60 * time.Second

// HTTPProvider implements Provider against the answering service's POST
// endpoint
type HTTPProvider struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

var _ Provider = (*HTTPProvider)(nil)

type askRequest struct {
	Message      string `json:"message"`
	SystemPrompt string `json:"system_prompt"`
}

type askResponse struct {
	Response string `json:"response"`
}

// NewHTTPProvider creates a provider for the ask endpoint at url. A zero
// timeout falls back to DefaultAskTimeout.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = DefaultAskTimeout
	}
	return &HTTPProvider{
		url:     url,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// Ask implements Provider: one POST, no retries
func (p *HTTPProvider) Ask(ctx context.Context, message, systemPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	body, err := json.Marshal(askRequest{Message: message, SystemPrompt: systemPrompt})
	if err != nil {
		return "", fmt.Errorf("encode ask request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build ask request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ask request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ask request returned status %d", resp.StatusCode)
	}

	var decoded askResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode ask response: %w", err)
	}

	return decoded.Response, nil
}

// Name implements Provider
func (p *HTTPProvider) Name() string {
	return "http"
}
