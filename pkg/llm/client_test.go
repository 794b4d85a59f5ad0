package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:      baseURL,
		APIKey:       "test-key",
		DefaultModel: "gemini-2.5-flash",
		Timeout:      5 * time.Second,
		MaxRetries:   1,
		LogLevel:     "error",
	}
}

func completionBody(content string) string {
	payload := map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1730366400,
		"model":   "gemini-2.5-flash",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     10,
			"completion_tokens": 12,
			"total_tokens":      22,
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestClientChat(t *testing.T) {
	var (
		mu       sync.Mutex
		lastPath string
		lastBody []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		lastPath = r.URL.Path
		lastBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("Hello from test")))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := client.Chat(ctx, &ChatRequest{
		Messages: []Message{
			{Role: "system", Content: "be terse"},
			{Role: "user", Content: "hi"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello from test", resp.Text())
	assert.Equal(t, 22, resp.Usage.TotalTokens)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/chat/completions", lastPath)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(lastBody, &payload))
	assert.Equal(t, "gemini-2.5-flash", payload["model"], "default model should apply when the request omits one")
}

func TestClientChat_EmptyRequest(t *testing.T) {
	client, err := NewClient(testConfig("https://example.invalid"))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Chat(context.Background(), nil)
	assert.Error(t, err)

	_, err = client.Chat(context.Background(), &ChatRequest{})
	assert.Error(t, err, "request without messages should be rejected before any network call")
}

func TestClientChatStructured(t *testing.T) {
	type verdict struct {
		Summary string `json:"summary"`
		Score   int    `json:"score"`
	}

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody(`{"summary":"bullish","score":7}`)))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	defer client.Close()

	var out verdict
	require.NoError(t, client.ChatStructured(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "judge"}},
	}, &out))
	assert.Equal(t, "bullish", out.Summary)
	assert.Equal(t, 7, out.Score)

	format, ok := captured["response_format"].(map[string]any)
	require.True(t, ok, "request should carry a response_format")
	assert.Equal(t, "json_schema", format["type"])
}

func TestClientChatStructured_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("not json at all")))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	defer client.Close()

	var out struct {
		Summary string `json:"summary"`
	}
	err = client.ChatStructured(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "judge"}},
	}, &out)
	assert.Error(t, err, "unparsable structured payload must surface as an error")
}

func TestClientChat_RetriesServerErrors(t *testing.T) {
	var calls int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("recovered")))
	}))
	defer server.Close()

	handler := NewRetryHandler(RetryConfig{MaxRetries: 2, InitialBackoff: time.Millisecond})
	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()), WithRetryHandler(handler))
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Text())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls, "first failure should be retried once")
}
