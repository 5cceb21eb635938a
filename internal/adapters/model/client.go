// Package model adapts an external text-generation inference server to the
// Generator port. The server is an opaque capability: it either produces text
// or the call fails with domain.ErrModelUnavailable and the application falls
// back to rules.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
)

const systemPrompt = "You are a helpful pizza delivery customer service assistant. Be friendly, knowledgeable, and helpful."

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Client talks to a text-generation inference endpoint over HTTP.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	maxNewTokens int
	temperature  float64
}

type ClientConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaxNewTokens int
	Temperature  float64
}

func NewClient(cfg ClientConfig) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		maxNewTokens: cfg.MaxNewTokens,
		temperature:  cfg.Temperature,
	}
}

// Generate sends the bounded conversation context to the inference server.
// All failure modes collapse into domain.ErrModelUnavailable so the caller's
// only decision is generate-or-fallback.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Inputs: systemPrompt + " " + prompt,
		Parameters: generateParameters{
			MaxNewTokens: c.maxNewTokens,
			Temperature:  c.temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", domain.ErrModelUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrModelUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: inference returned status %d", domain.ErrModelUnavailable, res.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrModelUnavailable, err)
	}

	text := strings.TrimSpace(out.GeneratedText)
	if text == "" {
		return "", fmt.Errorf("%w: empty generation", domain.ErrModelUnavailable)
	}
	return text, nil
}

// Healthy reports whether the inference server answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrModelUnavailable, err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned status %d", domain.ErrModelUnavailable, res.StatusCode)
	}
	return nil
}
