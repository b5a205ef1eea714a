// Package agentlite is a small scaffolding layer for building tool-augmented
// conversational agents on top of a chat-completion API.
//
// # Overview
//
// The package has three parts: a typed message model (SystemMessage,
// UserMessage, AssistantMessage, ToolMessage), a function-to-schema converter
// that turns an ordinary Go function into an LLM-callable Tool with a
// generated JSON Schema, and a thin LLM client that assembles the request
// payload (messages plus tool descriptors) and decodes the single-turn reply.
//
// Pipeline: Go function + argument struct → NewTool (reflection + schema) →
// LLM.RegisterTool → LLM.Invoke (one blocking round trip) → AssistantMessage,
// possibly carrying tool calls for the caller to dispatch.
//
// # Key concepts
//
//   - Schema is advisory: Tool.Call unmarshals arguments and invokes the
//     function without validating against the generated schema. The schema
//     exists for the remote API's benefit; use Tool.ValidateArgs explicitly
//     when local checking is wanted.
//   - Single turn: Invoke performs exactly one call and returns. It does not
//     retry, stream, or execute tool calls; dispatching tool calls and feeding
//     ToolMessage results back is the caller's loop.
//   - An LLM value is not safe for concurrent RegisterTool and Invoke calls;
//     callers that share one across goroutines must synchronize externally.
//
// # Example
//
//	type AddArgs struct {
//	    A int `json:"a"`
//	    B int `json:"b"`
//	}
//	add, err := agentlite.NewTool(func(_ context.Context, in AddArgs) (int, error) {
//	    return in.A + in.B, nil
//	}, agentlite.WithName("add"), agentlite.WithDescription("Add two integers"))
//	if err != nil { ... }
//	llm, err := agentlite.NewLLM("gpt-4o-mini")
//	if err != nil { ... }
//	llm.RegisterTool(add)
//	reply, err := llm.Invoke(ctx, "What is 3 + 5?")
package agentlite
