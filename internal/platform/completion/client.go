// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package completion is a minimal client for an OpenAI-compatible chat
completion endpoint.

It covers exactly what the ask relay needs: one system prompt, one user
prompt, one answer string. Streaming, tool calls, and multi-turn chat are out
of scope.
*/
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generation parameters. Answers should stay close to the supplied context,
// hence the low temperature.
const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 500
	requestTimeout     = 30 * time.Second
)

// ErrEmptyCompletion is returned when the endpoint responds 200 but carries
// no usable answer text.
var ErrEmptyCompletion = errors.New("completion: empty response content")

// Completer is the call surface the ask relay depends on; satisfied by
// [*Client] and by test fakes.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client talks to one configured chat-completion endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

var _ Completer = (*Client)(nil)

// NewClient builds a client for the given endpoint. baseURL is the API root
// (e.g. "https://api.openai.com/v1") without a trailing slash.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one system + user prompt pair and returns the trimmed
// answer text.
func (client *Client) Complete(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: client.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion: encoding request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		client.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("completion: building request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+client.apiKey)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("completion: calling endpoint: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		// Bounded read: error bodies are small, but never trust that.
		body, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return "", fmt.Errorf("completion: endpoint returned %d: %s",
			response.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("completion: decoding response: %w", err)
	}

	if len(decoded.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	answer := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyCompletion
	}
	return answer, nil
}
