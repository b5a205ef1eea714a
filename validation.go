package agentlite

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ValidateArgs checks raw JSON arguments against the tool's generated
// parameter schema. It is an explicit, opt-in step: Call never runs it, so
// the schema stays advisory unless the caller decides otherwise. Validation
// failures (including malformed JSON) wrap ErrValidation.
func (t *Tool) ValidateArgs(argsJSON []byte) error {
	resolved, err := t.resolve()
	if err != nil {
		return fmt.Errorf("compile schema for %q: %w", t.name, err)
	}
	var v any
	if err := json.Unmarshal(argsJSON, &v); err != nil {
		return fmt.Errorf("%w: json parse error: %v", ErrValidation, err)
	}
	if err := resolved.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// compileSchema round-trips the typed parameter schema through JSON into a
// resolved validator. Compilation happens lazily on first ValidateArgs so
// schema generation itself never fails.
func compileSchema(params ParameterSchema) (*jsonschema.Resolved, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Resolve(nil)
}
