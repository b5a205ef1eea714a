// Package testutil provides test helpers for agentlite (a canned
// chat-completion transport and a prewired test LLM).
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/openai/openai-go/option"

	"github.com/agentlite-go/agentlite"
)

// Transport is an http.RoundTripper that serves one canned chat-completion
// response for every request and records request bodies for assertions.
type Transport struct {
	// StatusCode of the response; 0 means 200.
	StatusCode int
	// Body is the JSON response body.
	Body string
	// Requests collects the raw request bodies, in call order.
	Requests [][]byte
}

// RoundTrip records the request body and returns the canned response.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		_ = req.Body.Close()
		t.Requests = append(t.Requests, body)
	}
	status := t.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(t.Body)),
		Request:    req,
	}, nil
}

// CompletionJSON builds a minimal chat-completion response body with the
// given assistant content and tool calls.
func CompletionJSON(content string, toolCalls ...agentlite.ToolCall) string {
	message := map[string]any{
		"role":    "assistant",
		"content": content,
	}
	if len(toolCalls) > 0 {
		message["tool_calls"] = toolCalls
	}
	body := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]any{
			{"index": 0, "message": message, "finish_reason": "stop"},
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		panic("testutil: marshal completion body: " + err.Error())
	}
	return string(data)
}

// NewTestLLM returns an LLM wired to the given transport, with a dummy
// credential and upstream retries disabled.
func NewTestLLM(model string, tr *Transport, opts ...agentlite.LLMOption) (*agentlite.LLM, error) {
	base := []agentlite.LLMOption{
		agentlite.WithAPIKey("test-key"),
		agentlite.WithHTTPClient(&http.Client{Transport: tr}),
		agentlite.WithRequestOptions(option.WithMaxRetries(0)),
	}
	return agentlite.NewLLM(model, append(base, opts...)...)
}

var _ http.RoundTripper = (*Transport)(nil)
