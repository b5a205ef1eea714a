package agentlite

import "fmt"

// Role identifies the author of a conversation turn.
type Role string

// Roles recognized by the chat-completion wire format.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one immutable conversation turn. Each concrete message type
// carries a fixed role; the role cannot be set to a mismatched value because
// it is not a settable field. Record returns a plain map projection of all
// fields (including the role) suitable for a request payload; it never
// mutates the message.
type Message interface {
	Role() Role
	Content() string
	Record() map[string]any
}

// FunctionCall names the function an assistant tool call wants executed,
// with its arguments as a raw JSON string.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall is one tool-invocation request embedded in an assistant message.
// The package does not execute tool calls; the caller dispatches them (e.g.
// via Tool.Call) and replies with a ToolMessage carrying the same ID.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// SystemMessage sets instructions for the model.
type SystemMessage struct {
	content string
}

// NewSystemMessage returns a system message with the given content.
func NewSystemMessage(content string) SystemMessage {
	return SystemMessage{content: content}
}

// Role returns RoleSystem.
func (m SystemMessage) Role() Role { return RoleSystem }

// Content returns the message text ("" when absent).
func (m SystemMessage) Content() string { return m.content }

// Record returns the payload projection of the message.
func (m SystemMessage) Record() map[string]any {
	return map[string]any{"role": string(RoleSystem), "content": m.content}
}

// UserMessage is a turn authored by the end user.
type UserMessage struct {
	content string
}

// NewUserMessage returns a user message with the given content.
func NewUserMessage(content string) UserMessage {
	return UserMessage{content: content}
}

// Role returns RoleUser.
func (m UserMessage) Role() Role { return RoleUser }

// Content returns the message text ("" when absent).
func (m UserMessage) Content() string { return m.content }

// Record returns the payload projection of the message.
func (m UserMessage) Record() map[string]any {
	return map[string]any{"role": string(RoleUser), "content": m.content}
}

// AssistantMessage is a model reply. ToolCalls is nil when the model answered
// with plain content only.
type AssistantMessage struct {
	content   string
	toolCalls []ToolCall
}

// NewAssistantMessage returns an assistant message with the given content and
// tool calls (pass nil when there are none).
func NewAssistantMessage(content string, toolCalls []ToolCall) AssistantMessage {
	return AssistantMessage{content: content, toolCalls: toolCalls}
}

// Role returns RoleAssistant.
func (m AssistantMessage) Role() Role { return RoleAssistant }

// Content returns the message text ("" when absent).
func (m AssistantMessage) Content() string { return m.content }

// ToolCalls returns the tool-invocation requests carried by the reply, in the
// order the model emitted them. The returned slice is a copy.
func (m AssistantMessage) ToolCalls() []ToolCall {
	if m.toolCalls == nil {
		return nil
	}
	out := make([]ToolCall, len(m.toolCalls))
	copy(out, m.toolCalls)
	return out
}

// Record returns the payload projection of the message. The tool_calls key is
// present only when the message carries tool calls.
func (m AssistantMessage) Record() map[string]any {
	rec := map[string]any{"role": string(RoleAssistant), "content": m.content}
	if len(m.toolCalls) > 0 {
		calls := make([]map[string]any, len(m.toolCalls))
		for i, tc := range m.toolCalls {
			calls[i] = map[string]any{
				"id":   tc.ID,
				"type": tc.Type,
				"function": map[string]any{
					"name":      tc.Function.Name,
					"arguments": tc.Function.Arguments,
				},
			}
		}
		rec["tool_calls"] = calls
	}
	return rec
}

// ToolMessage is the result of one executed tool call, keyed back to the
// originating call by tool_call_id.
type ToolMessage struct {
	content    string
	toolCallID string
	name       string
}

// NewToolMessage returns a tool-result message. toolCallID must match the ID
// of the assistant tool call being answered and name must be the tool's name;
// both are required.
func NewToolMessage(content, toolCallID, name string) (ToolMessage, error) {
	if toolCallID == "" {
		return ToolMessage{}, fmt.Errorf("%w: tool message requires tool_call_id", ErrValidation)
	}
	if name == "" {
		return ToolMessage{}, fmt.Errorf("%w: tool message requires name", ErrValidation)
	}
	return ToolMessage{content: content, toolCallID: toolCallID, name: name}, nil
}

// Role returns RoleTool.
func (m ToolMessage) Role() Role { return RoleTool }

// Content returns the message text ("" when absent).
func (m ToolMessage) Content() string { return m.content }

// ToolCallID returns the ID of the assistant tool call this message answers.
func (m ToolMessage) ToolCallID() string { return m.toolCallID }

// Name returns the name of the tool that produced this result.
func (m ToolMessage) Name() string { return m.name }

// Record returns the payload projection of the message.
func (m ToolMessage) Record() map[string]any {
	return map[string]any{
		"role":         string(RoleTool),
		"content":      m.content,
		"tool_call_id": m.toolCallID,
		"name":         m.name,
	}
}

var (
	_ Message = SystemMessage{}
	_ Message = UserMessage{}
	_ Message = AssistantMessage{}
	_ Message = ToolMessage{}
)
