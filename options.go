package agentlite

import (
	"log/slog"
	"net/http"

	"github.com/openai/openai-go/option"
)

// toolOptions hold optional Tool settings.
type toolOptions struct {
	name        string
	description string
	strict      bool
}

// ToolOption configures a Tool (e.g. WithName, WithDescription).
type ToolOption func(*toolOptions)

// WithName overrides the tool name (defaults to the wrapped function's name).
// Names must satisfy the remote API's pattern, typically ^[a-zA-Z0-9_-]+$.
func WithName(name string) ToolOption {
	return func(o *toolOptions) {
		o.name = name
	}
}

// WithDescription sets the tool description shown to the model.
func WithDescription(description string) ToolOption {
	return func(o *toolOptions) {
		o.description = description
	}
}

// WithStrict marks every parameter as required in the exported descriptor,
// as the OpenAI structured-outputs contract expects. Optional parameters keep
// their optional schema shape; only the required list changes.
func WithStrict() ToolOption {
	return func(o *toolOptions) {
		o.strict = true
	}
}

// llmOptions hold optional LLM settings resolved by NewLLM.
type llmOptions struct {
	temperature float64
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	tools       []*Tool
	logger      *slog.Logger
	requestOpts []option.RequestOption
}

// LLMOption configures an LLM (e.g. WithTemperature, WithAPIKey).
type LLMOption func(*llmOptions)

// WithTemperature sets the sampling temperature (default 0).
func WithTemperature(temperature float64) LLMOption {
	return func(o *llmOptions) {
		o.temperature = temperature
	}
}

// WithAPIKey sets the API credential explicitly. It takes precedence over the
// OPENAI_API_KEY environment variable.
func WithAPIKey(key string) LLMOption {
	return func(o *llmOptions) {
		o.apiKey = key
	}
}

// WithBaseURL points the client at an OpenAI-compatible gateway instead of
// the default endpoint.
func WithBaseURL(url string) LLMOption {
	return func(o *llmOptions) {
		o.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for upstream calls. Timeouts are
// the transport's job: configure them here, the LLM imposes none itself.
func WithHTTPClient(client *http.Client) LLMOption {
	return func(o *llmOptions) {
		o.httpClient = client
	}
}

// WithTools registers tools at construction time, in the given order.
func WithTools(tools ...*Tool) LLMOption {
	return func(o *llmOptions) {
		o.tools = append(o.tools, tools...)
	}
}

// WithLogger enables invoke logging on the given logger. Without it the LLM
// logs nothing.
func WithLogger(logger *slog.Logger) LLMOption {
	return func(o *llmOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithRequestOptions appends raw openai-go request options applied to every
// upstream call (e.g. option.WithMaxRetries).
func WithRequestOptions(opts ...option.RequestOption) LLMOption {
	return func(o *llmOptions) {
		o.requestOpts = append(o.requestOpts, opts...)
	}
}
