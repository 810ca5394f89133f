package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro-attendant/internal/common/config"
	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.GenAIConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		ExtractModel:   "test-extract",
		RewriteModel:   "test-rewrite",
		RequestTimeout: 2 * time.Second,
		MaxRetries:     2,
	}, logger.NewTestLogger(t))
}

func toolCallResponse(name, arguments string) string {
	return `{"choices": [{"message": {"tool_calls": [
		{"function": {"name": "` + name + `", "arguments": ` + arguments + `}}
	]}}]}`
}

func TestExtract_ReturnsFunctionArguments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-extract", req["model"])
		assert.NotEmpty(t, req["tools"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(toolCallResponse("classificar", `"{\"campo\": \"valor\"}"`)))
	})

	args, err := client.Extract(context.Background(), "sistema", "pergunta",
		"classificar", json.RawMessage(`{"type": "object"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"campo": "valor"}`, string(args))
}

func TestExtract_MissingToolCall(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "texto solto"}}]}`))
	})

	_, err := client.Extract(context.Background(), "sistema", "pergunta",
		"classificar", json.RawMessage(`{"type": "object"}`))
	require.Error(t, err)
	var se *stderrors.StandardError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, stderrors.ErrCodeClassificationFailed, se.Code)
}

func TestRewrite_ReturnsContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-rewrite", req["model"])

		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "Oi! Estamos abertos."}}]}`))
	})

	got, err := client.Rewrite(context.Background(), "sistema", "rascunho")
	require.NoError(t, err)
	assert.Equal(t, "Oi! Estamos abertos.", got)
}

func TestCall_RetriesServerErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "pronto"}}]}`))
	})

	got, err := client.Rewrite(context.Background(), "sistema", "rascunho")
	require.NoError(t, err)
	assert.Equal(t, "pronto", got)
	assert.Equal(t, 3, attempts)
}

func TestCall_DoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"type": "auth", "message": "bad key"}}`))
	})

	_, err := client.Rewrite(context.Background(), "sistema", "rascunho")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestCall_ContextTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "tarde demais"}}]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Rewrite(ctx, "sistema", "rascunho")
	require.Error(t, err)
	var se *stderrors.StandardError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, stderrors.ErrCodeGenAITimeout, se.Code)
}
