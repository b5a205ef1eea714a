package agentlite

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool wraps a Go function as an LLM-callable tool: a generated parameter
// schema for the request payload on one side, a direct invocation path on the
// other.
type Tool struct {
	name        string
	description string
	params      []Param
	descriptor  Descriptor
	call        func(context.Context, []byte) (any, error)
	resolve     func() (*jsonschema.Resolved, error)
}

// Descriptor is the wire-format tool specification:
// {"type":"function","function":{...}}.
type Descriptor struct {
	Type     string             `json:"type"`
	Function FunctionDescriptor `json:"function"`
}

// FunctionDescriptor carries the function's name, description, and parameter
// schema inside a Descriptor.
type FunctionDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  ParameterSchema `json:"parameters"`
}

// ParameterSchema is the object schema over all parameters of one tool.
// Required lists exactly the parameters without defaults, in declaration
// order; AdditionalProperties is always false.
type ParameterSchema struct {
	Type                 string             `json:"type"`
	Properties           map[string]*Schema `json:"properties"`
	Required             []string           `json:"required"`
	AdditionalProperties bool               `json:"additionalProperties"`
}

// NewTool builds a Tool from a typed function. The exported fields of the
// argument struct A are the tool's parameters, in declaration order; json
// tags name them, enum/description tags refine their schemas, and a pointer
// type or omitempty marks a parameter optional. The tool name defaults to the
// function's own name and the description to "" (override with WithName and
// WithDescription).
//
// Schema inference is total (unrecognized field types degrade to a string
// schema rather than failing), so the only construction error is a function
// whose signature cannot be introspected at all (nil fn, or A not a struct).
func NewTool[A, R any](fn func(ctx context.Context, args A) (R, error), opts ...ToolOption) (*Tool, error) {
	var o toolOptions
	for _, opt := range opts {
		opt(&o)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: fn is nil", ErrIntrospection)
	}
	argType := reflect.TypeOf((*A)(nil)).Elem()
	for argType.Kind() == reflect.Pointer {
		argType = argType.Elem()
	}
	if argType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: argument type %s is not a struct", ErrIntrospection, argType)
	}

	name := o.name
	if name == "" {
		name = funcName(fn)
	}
	params := structParams(argType)

	t := &Tool{
		name:        name,
		description: o.description,
		params:      params,
		descriptor:  buildDescriptor(name, o.description, params, o.strict),
		call: func(ctx context.Context, argsJSON []byte) (any, error) {
			var args A
			if len(argsJSON) > 0 {
				if err := json.Unmarshal(argsJSON, &args); err != nil {
					return nil, fmt.Errorf("unmarshal arguments for %q: %w", name, err)
				}
			}
			return fn(ctx, args)
		},
	}
	t.resolve = sync.OnceValues(func() (*jsonschema.Resolved, error) {
		return compileSchema(t.descriptor.Function.Parameters)
	})
	return t, nil
}

// buildDescriptor assembles the exported tool specification. In strict mode
// every parameter is listed as required (OpenAI structured-outputs contract);
// otherwise only the default-less ones are, in declaration order.
func buildDescriptor(name, description string, params []Param, strict bool) Descriptor {
	properties := make(map[string]*Schema, len(params))
	required := make([]string, 0, len(params))
	for _, p := range params {
		properties[p.Name] = p.Schema
		if strict || p.Required {
			required = append(required, p.Name)
		}
	}
	return Descriptor{
		Type: "function",
		Function: FunctionDescriptor{
			Name:        name,
			Description: description,
			Parameters: ParameterSchema{
				Type:                 "object",
				Properties:           properties,
				Required:             required,
				AdditionalProperties: false,
			},
		},
	}
}

// Name returns the tool name.
func (t *Tool) Name() string { return t.name }

// Description returns the tool description (may be empty).
func (t *Tool) Description() string { return t.description }

// Parameters returns the declared parameters in declaration order. The slice
// is a copy; the nested schemas are shared and must not be mutated.
func (t *Tool) Parameters() []Param {
	out := make([]Param, len(t.params))
	copy(out, t.params)
	return out
}

// Descriptor returns the tool specification for inclusion in a request
// payload. The nested maps are shared; callers must not mutate them.
func (t *Tool) Descriptor() Descriptor { return t.descriptor }

// Call unmarshals argsJSON into the argument struct and forwards to the
// wrapped function. The generated schema is advisory metadata for the remote
// API: Call performs no schema validation (use ValidateArgs first when local
// checking is wanted).
func (t *Tool) Call(ctx context.Context, argsJSON []byte) (any, error) {
	return t.call(ctx, argsJSON)
}

// funcName recovers the short name of fn from its runtime symbol
// ("pkg/path.Add" → "Add", method values lose their "-fm" suffix).
func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
