package agentlite

import "errors"

// Sentinel errors for agentlite. Use errors.Is to check; call sites wrap them
// with fmt.Errorf("%w: ...") to add context.
var (
	// ErrValidation reports malformed message construction (e.g. a
	// ToolMessage without its tool_call_id) or a failed explicit argument
	// check via Tool.ValidateArgs.
	ErrValidation = errors.New("validation failed")

	// ErrIntrospection reports that a function could not be resolved into a
	// Tool (nil function, or an argument type with no parameter list).
	ErrIntrospection = errors.New("cannot introspect function signature")

	// ErrInvalidInput reports an unsupported input shape passed to
	// LLM.Invoke (not a string, Message, or []Message).
	ErrInvalidInput = errors.New("invalid input type")

	// ErrNoCredentials reports that no API key was available when
	// constructing an LLM (neither WithAPIKey nor the environment).
	ErrNoCredentials = errors.New("no API credentials")

	// ErrUpstream reports a failed chat-completion call or a reply with no
	// choices.
	ErrUpstream = errors.New("chat completion failed")
)
