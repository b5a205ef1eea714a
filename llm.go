package agentlite

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// apiKeyEnv is the environment fallback for the upstream credential.
const apiKeyEnv = "OPENAI_API_KEY"

// LLM is a thin orchestration client over a chat-completion API: it holds a
// tool registry, assembles the request payload from messages and tool
// descriptors, and decodes the single-turn reply into an AssistantMessage.
//
// An LLM is not safe for concurrent RegisterTool and Invoke calls; callers
// sharing one across goroutines must synchronize externally.
type LLM struct {
	model       string
	temperature float64
	tools       map[string]*Tool
	order       []string
	client      openai.Client
	logger      *slog.Logger
	requestOpts []option.RequestOption
}

// NewLLM creates a client for the given model. The credential comes from
// WithAPIKey, else from OPENAI_API_KEY; with neither it fails with
// ErrNoCredentials. The upstream handle is constructed once, here.
func NewLLM(model string, opts ...LLMOption) (*LLM, error) {
	var o llmOptions
	for _, opt := range opts {
		opt(&o)
	}

	apiKey := o.apiKey
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: pass WithAPIKey or set %s", ErrNoCredentials, apiKeyEnv)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(o.httpClient))
	}

	l := &LLM{
		model:       model,
		temperature: o.temperature,
		tools:       make(map[string]*Tool),
		client:      openai.NewClient(clientOpts...),
		logger:      o.logger,
		requestOpts: o.requestOpts,
	}
	for _, t := range o.tools {
		l.RegisterTool(t)
	}
	return l, nil
}

// Model returns the model identifier.
func (l *LLM) Model() string { return l.model }

// Temperature returns the sampling temperature.
func (l *LLM) Temperature() float64 { return l.temperature }

// RegisterTool adds a tool to the registry. Registering a second tool with
// the same name replaces the first; the name keeps its original position in
// the payload order.
func (l *LLM) RegisterTool(t *Tool) {
	if _, exists := l.tools[t.Name()]; !exists {
		l.order = append(l.order, t.Name())
	}
	l.tools[t.Name()] = t
}

// Tools returns the registered tools in registration order.
func (l *LLM) Tools() []*Tool {
	out := make([]*Tool, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.tools[name])
	}
	return out
}

// GetTool returns the tool with the given name, or (nil, false) if not
// registered.
func (l *LLM) GetTool(name string) (*Tool, bool) {
	t, ok := l.tools[name]
	return t, ok
}

// Invoke normalizes input (a string, a Message, or a []Message), performs one
// blocking chat-completion round trip, and returns the first choice as an
// AssistantMessage. It does not retry, stream, or execute returned tool
// calls; an upstream failure or an empty choice list wraps ErrUpstream.
func (l *LLM) Invoke(ctx context.Context, input any) (AssistantMessage, error) {
	messages, err := normalize(input)
	if err != nil {
		return AssistantMessage{}, err
	}
	params := l.buildParams(messages)

	if l.logger != nil {
		l.logger.Info("invoke start", "model", l.model, "messages", len(messages), "tools", len(l.order))
	}
	start := time.Now()
	completion, err := l.client.Chat.Completions.New(ctx, params, l.requestOpts...)
	dur := time.Since(start)
	if err != nil {
		if l.logger != nil {
			l.logger.Error("invoke error", "model", l.model, "duration", dur, "error", err)
		}
		return AssistantMessage{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(completion.Choices) == 0 {
		if l.logger != nil {
			l.logger.Error("invoke error", "model", l.model, "duration", dur, "error", "no choices")
		}
		return AssistantMessage{}, fmt.Errorf("%w: response contains no choices", ErrUpstream)
	}

	reply := completion.Choices[0].Message
	var toolCalls []ToolCall
	for i, tc := range reply.ToolCalls {
		id := tc.ID
		if id == "" {
			// Some providers omit the call ID; synthesize one so the caller
			// can still answer with a ToolMessage.
			id = fmt.Sprintf("auto_call_%d", i)
		}
		toolCalls = append(toolCalls, ToolCall{
			ID:   id,
			Type: string(tc.Type),
			Function: FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	if l.logger != nil {
		l.logger.Info("invoke end", "model", l.model, "duration", dur, "tool_calls", len(toolCalls))
	}
	return NewAssistantMessage(reply.Content, toolCalls), nil
}

// normalize turns caller input into a message sequence: a string becomes one
// user message, a single Message a one-element slice, and a []Message passes
// through unchanged. Anything else fails with ErrInvalidInput naming the
// offending type.
func normalize(input any) ([]Message, error) {
	switch v := input.(type) {
	case string:
		return []Message{NewUserMessage(v)}, nil
	case Message:
		return []Message{v}, nil
	case []Message:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidInput, input)
	}
}

// buildParams assembles the request payload: model, temperature, and message
// records, plus the tool descriptors and tool_choice "auto" iff any tools are
// registered. With an empty registry both keys are omitted entirely: that
// tells the API tool calling is disabled, not that the tool set is empty.
func (l *LLM) buildParams(messages []Message) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(l.model),
		Temperature: openai.Float(l.temperature),
		Messages:    convertMessages(messages),
	}
	if len(l.order) > 0 {
		params.Tools = l.convertTools()
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("auto"),
		}
	}
	return params
}

// convertMessages maps the message model onto openai-go's param unions.
func convertMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch m := msg.(type) {
		case SystemMessage:
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content()),
					},
				},
			}
		case AssistantMessage:
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Content()),
					},
					ToolCalls: convertToolCalls(m.ToolCalls()),
				},
			}
		case ToolMessage:
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfTool: &openai.ChatCompletionToolMessageParam{
					Content: openai.ChatCompletionToolMessageParamContentUnion{
						OfString: openai.String(m.Content()),
					},
					ToolCallID: m.ToolCallID(),
				},
			}
		default:
			// UserMessage, and any foreign Message implementation.
			result[i] = openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(msg.Content()),
					},
				},
			}
		}
	}
	return result
}

// convertToolCalls maps assistant tool calls back onto the wire params for a
// follow-up request.
func convertToolCalls(toolCalls []ToolCall) []openai.ChatCompletionMessageToolCallParam {
	var result []openai.ChatCompletionMessageToolCallParam
	for _, tc := range toolCalls {
		result = append(result, openai.ChatCompletionMessageToolCallParam{
			ID: tc.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return result
}

// convertTools exports the registered descriptors in registration order.
func (l *LLM) convertTools() []openai.ChatCompletionToolParam {
	result := make([]openai.ChatCompletionToolParam, 0, len(l.order))
	for _, name := range l.order {
		d := l.tools[name].Descriptor()
		data, err := json.Marshal(d.Function.Parameters)
		if err != nil {
			if l.logger != nil {
				l.logger.Error("marshal tool schema", "tool", name, "error", err)
			}
			continue
		}
		var parameters shared.FunctionParameters
		if err := json.Unmarshal(data, &parameters); err != nil {
			if l.logger != nil {
				l.logger.Error("unmarshal tool schema", "tool", name, "error", err)
			}
			continue
		}
		result = append(result, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        d.Function.Name,
				Description: openai.String(d.Function.Description),
				Parameters:  parameters,
			},
		})
	}
	return result
}
