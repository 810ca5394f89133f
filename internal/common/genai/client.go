// Package genai talks to an OpenAI-compatible chat-completions API. It
// exposes the two call shapes the attendant needs: structured extraction
// through a forced function call, and free-text rewriting.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bistro-attendant/internal/common/config"
	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
	"bistro-attendant/internal/common/metrics"
)

type Client struct {
	baseURL      string
	apiKey       string
	extractModel string
	rewriteModel string
	maxRetries   int
	timeout      time.Duration
	httpClient   *http.Client
	log          logger.Logger
}

func NewClient(cfg config.GenAIConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		extractModel: cfg.ExtractModel,
		rewriteModel: cfg.RewriteModel,
		maxRetries:   cfg.MaxRetries,
		timeout:      cfg.RequestTimeout,
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		log:          log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type functionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

type toolDef struct {
	Type     string      `json:"type"`
	Function functionDef `json:"function"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Tools       []toolDef     `json:"tools,omitempty"`
	ToolChoice  interface{}   `json:"tool_choice,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Extract forces a call to the named function and returns its raw JSON
// arguments. The caller validates them against its own schema.
func (c *Client) Extract(ctx context.Context, systemPrompt, userPrompt, functionName string, parameters json.RawMessage) (json.RawMessage, error) {
	req := chatRequest{
		Model: c.extractModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Tools: []toolDef{{
			Type: "function",
			Function: functionDef{
				Name:       functionName,
				Parameters: parameters,
			},
		}},
		ToolChoice: map[string]interface{}{
			"type":     "function",
			"function": map[string]string{"name": functionName},
		},
		Temperature: 0,
	}

	resp, err := c.call(ctx, "extract", req)
	if err != nil {
		return nil, err
	}
	for _, tc := range resp.Choices[0].Message.ToolCalls {
		if tc.Function.Name == functionName {
			return json.RawMessage(tc.Function.Arguments), nil
		}
	}
	return nil, stderrors.NewClassificationError(
		fmt.Errorf("response carried no %s tool call", functionName))
}

// Rewrite returns the assistant's plain-text completion for the given
// system and user messages.
func (c *Client) Rewrite(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := chatRequest{
		Model: c.rewriteModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.4,
	}

	resp, err := c.call(ctx, "rewrite", req)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Message.Content, nil
}

// call posts the request with retries and exponential backoff. Context
// expiry is reported as a timeout; HTTP 5xx responses are retried.
func (c *Client) call(ctx context.Context, operation string, req chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, stderrors.NewInternalError("encoding genai request", err)
	}

	var lastErr error
	delay := 500 * time.Millisecond

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("retrying genai call", map[string]interface{}{
				"operation": operation,
				"attempt":   attempt,
				"delay":     delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, stderrors.NewGenAITimeoutError(operation, ctx.Err())
			}
			delay *= 2
		}

		start := time.Now()
		resp, err := c.doOnce(ctx, body)
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		metrics.GenAICallDuration.WithLabelValues(operation, outcome).
			Observe(time.Since(start).Seconds())

		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, stderrors.NewGenAITimeoutError(operation, ctx.Err())
		}
		if !stderrors.IsRetryable(err) {
			return nil, err
		}
	}
	return nil, stderrors.NewGenAIUnavailableError(lastErr)
}

func (c *Client) doOnce(ctx context.Context, body []byte) (*chatResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, stderrors.NewInternalError("building genai request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, stderrors.NewGenAIUnavailableError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, stderrors.NewGenAIUnavailableError(err)
	}

	if httpResp.StatusCode >= 500 {
		return nil, stderrors.NewGenAIUnavailableError(
			fmt.Errorf("genai returned %d: %s", httpResp.StatusCode, truncate(respBody, 200)))
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, stderrors.NewInternalError(
			fmt.Sprintf("genai returned %d", httpResp.StatusCode),
			fmt.Errorf("%s", truncate(respBody, 200)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, stderrors.NewInternalError("decoding genai response", err)
	}
	if parsed.Error != nil {
		return nil, stderrors.NewInternalError("genai error response",
			fmt.Errorf("%s: %s", parsed.Error.Type, parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 {
		return nil, stderrors.NewInternalError("genai response had no choices", nil)
	}
	return &parsed, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
