package agentlite

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLM_CredentialResolution(t *testing.T) {
	t.Run("explicit key wins", func(t *testing.T) {
		t.Setenv(apiKeyEnv, "env-key")
		llm, err := NewLLM("gpt-4o-mini", WithAPIKey("explicit-key"))
		require.NoError(t, err)
		require.NotNil(t, llm)
	})
	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv(apiKeyEnv, "env-key")
		llm, err := NewLLM("gpt-4o-mini")
		require.NoError(t, err)
		require.NotNil(t, llm)
	})
	t.Run("no credential anywhere", func(t *testing.T) {
		t.Setenv(apiKeyEnv, "")
		_, err := NewLLM("gpt-4o-mini")
		require.ErrorIs(t, err, ErrNoCredentials)
	})
}

func TestNewLLM_Defaults(t *testing.T) {
	llm, err := NewLLM("gpt-4o-mini", WithAPIKey("k"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", llm.Model())
	assert.Equal(t, 0.0, llm.Temperature())
	assert.Empty(t, llm.Tools())
}

func TestRegisterTool_LastRegistrationWins(t *testing.T) {
	first, err := NewTool(addNumbers, WithName("add"), WithDescription("first"))
	require.NoError(t, err)
	second, err := NewTool(addNumbers, WithName("add"), WithDescription("second"))
	require.NoError(t, err)

	llm, err := NewLLM("gpt-4o-mini", WithAPIKey("k"))
	require.NoError(t, err)
	llm.RegisterTool(first)
	llm.RegisterTool(second)

	tools := llm.Tools()
	require.Len(t, tools, 1, "same-name registration replaces, registry size stays 1")
	assert.Equal(t, "second", tools[0].Description())

	got, ok := llm.GetTool("add")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestTools_RegistrationOrder(t *testing.T) {
	a, err := NewTool(addNumbers, WithName("alpha"))
	require.NoError(t, err)
	b, err := NewTool(addNumbers, WithName("beta"))
	require.NoError(t, err)
	llm, err := NewLLM("gpt-4o-mini", WithAPIKey("k"), WithTools(b, a))
	require.NoError(t, err)

	tools := llm.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "beta", tools[0].Name())
	assert.Equal(t, "alpha", tools[1].Name())
}

func TestNormalize(t *testing.T) {
	sys := NewSystemMessage("be brief")
	usr := NewUserMessage("hi")

	t.Run("string becomes one user message", func(t *testing.T) {
		msgs, err := normalize("hello")
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, RoleUser, msgs[0].Role())
		assert.Equal(t, "hello", msgs[0].Content())
	})
	t.Run("single message passes through", func(t *testing.T) {
		msgs, err := normalize(sys)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, RoleSystem, msgs[0].Role())
	})
	t.Run("message slice passes through unchanged", func(t *testing.T) {
		in := []Message{sys, usr}
		msgs, err := normalize(in)
		require.NoError(t, err)
		assert.Equal(t, in, msgs)
	})
	t.Run("unsupported shapes fail naming the type", func(t *testing.T) {
		for _, input := range []any{42, 3.14, []string{"hi"}, nil, struct{}{}} {
			_, err := normalize(input)
			require.ErrorIs(t, err, ErrInvalidInput, "input %T", input)
		}
		_, err := normalize(42)
		assert.ErrorContains(t, err, "int")
	})
}

// paramsToMap marshals the assembled request params back to a plain map so
// tests can assert on the exact wire keys.
func paramsToMap(t *testing.T, llm *LLM, messages []Message) map[string]any {
	t.Helper()
	data, err := json.Marshal(llm.buildParams(messages))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestBuildParams_EmptyRegistryOmitsToolKeys(t *testing.T) {
	llm, err := NewLLM("gpt-4o-mini", WithAPIKey("k"), WithTemperature(0.7))
	require.NoError(t, err)

	m := paramsToMap(t, llm, []Message{NewUserMessage("hi")})
	assert.Equal(t, "gpt-4o-mini", m["model"])
	assert.InDelta(t, 0.7, m["temperature"], 1e-9)
	assert.NotContains(t, m, "tools", "empty registry must omit tools entirely")
	assert.NotContains(t, m, "tool_choice")

	msgs, ok := m["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	first, ok := msgs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "hi", first["content"])
}

func TestBuildParams_ToolsAndToolChoiceTogether(t *testing.T) {
	add, err := NewTool(addNumbers, WithName("add"), WithDescription("Add two integers"))
	require.NoError(t, err)
	llm, err := NewLLM("gpt-4o-mini", WithAPIKey("k"), WithTools(add))
	require.NoError(t, err)

	m := paramsToMap(t, llm, []Message{NewUserMessage("what is 1+2?")})
	assert.Equal(t, "auto", m["tool_choice"])

	tools, ok := m["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	tool, ok := tools[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "function", tool["type"])
	fn, ok := tool["function"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "add", fn["name"])
	params, ok := fn["parameters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, params["additionalProperties"])
	assert.Equal(t, []any{"a", "b"}, params["required"])
}

func TestBuildParams_AllMessageVariants(t *testing.T) {
	toolMsg, err := NewToolMessage("8", "call_1", "add")
	require.NoError(t, err)
	history := []Message{
		NewSystemMessage("be brief"),
		NewUserMessage("what is 3+5?"),
		NewAssistantMessage("", []ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: FunctionCall{Name: "add", Arguments: `{"a":3,"b":5}`},
		}}),
		toolMsg,
	}

	llm, err := NewLLM("gpt-4o-mini", WithAPIKey("k"))
	require.NoError(t, err)
	m := paramsToMap(t, llm, history)

	msgs, ok := m["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 4)
	roles := make([]string, len(msgs))
	for i, raw := range msgs {
		entry, ok := raw.(map[string]any)
		require.True(t, ok)
		roles[i], _ = entry["role"].(string)
	}
	assert.Equal(t, []string{"system", "user", "assistant", "tool"}, roles)

	assistant, ok := msgs[2].(map[string]any)
	require.True(t, ok)
	calls, ok := assistant["tool_calls"].([]any)
	require.True(t, ok)
	require.Len(t, calls, 1)

	toolEntry, ok := msgs[3].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "call_1", toolEntry["tool_call_id"])
}

func TestInvoke_InvalidInputShape(t *testing.T) {
	llm, err := NewLLM("gpt-4o-mini", WithAPIKey("k"))
	require.NoError(t, err)
	_, err = llm.Invoke(context.Background(), 12345)
	require.ErrorIs(t, err, ErrInvalidInput)
}
