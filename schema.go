package agentlite

import (
	"reflect"
	"strings"
	"time"
)

// Schema is a JSON-Schema-shaped description of one parameter. Only the
// subset needed for chat-completion tool definitions is modeled.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Description          string             `json:"description,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
}

// Param describes one declared parameter of a Tool: its name, inferred
// schema, and whether the parameter is required (it has no default, i.e. the
// field is neither a pointer nor tagged omitempty).
type Param struct {
	Name     string
	Schema   *Schema
	Required bool
}

var timeType = reflect.TypeOf(time.Time{})

// inferSchema maps a Go type to its JSON Schema shape. It is total: any type
// it does not recognize degrades to {"type":"string"} instead of failing, so
// exotic argument types never block tool registration.
func inferSchema(t reflect.Type) *Schema {
	if t == nil {
		return &Schema{Type: "string"}
	}
	switch t.Kind() {
	case reflect.Pointer:
		// Optional wrapper: the schema of *T is the schema of T.
		return inferSchema(t.Elem())
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: inferSchema(elemOrString(t.Elem()))}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: inferSchema(elemOrString(t.Elem()))}
	case reflect.Struct:
		if t == timeType {
			// Dates travel as strings on the wire.
			return &Schema{Type: "string"}
		}
		return structSchema(t)
	default:
		return &Schema{Type: "string"}
	}
}

// elemOrString resolves a container's element type; an any-typed element has
// no useful shape and falls back to string.
func elemOrString(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Interface {
		return nil
	}
	return t
}

// structSchema renders a nested struct as an object schema with one property
// per exported field.
func structSchema(t reflect.Type) *Schema {
	s := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for _, p := range structParams(t) {
		s.Properties[p.Name] = p.Schema
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}

// structParams walks the exported fields of a struct type in declaration
// order and produces one Param per field. The json tag supplies the parameter
// name; enum and description tags refine the schema; a pointer field or an
// omitempty tag marks the parameter as optional.
func structParams(t reflect.Type) []Param {
	params := make([]Param, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		omitempty := false
		if tag := field.Tag.Get("json"); tag != "" {
			if tag == "-" {
				continue
			}
			if comma := strings.Index(tag, ","); comma != -1 {
				if tag[:comma] != "" {
					name = tag[:comma]
				}
				omitempty = strings.Contains(tag[comma:], "omitempty")
			} else {
				name = tag
			}
		}

		schema := fieldSchema(field)
		required := field.Type.Kind() != reflect.Pointer && !omitempty
		params = append(params, Param{Name: name, Schema: schema, Required: required})
	}
	return params
}

// fieldSchema infers the schema for one struct field, applying the enum and
// description tags. An enum tag wins over the inferred shape: enumerated
// values are always string-typed on the wire.
func fieldSchema(field reflect.StructField) *Schema {
	var schema *Schema
	if enumTag := field.Tag.Get("enum"); enumTag != "" {
		parts := strings.Split(enumTag, ",")
		enum := make([]string, len(parts))
		for i, p := range parts {
			enum[i] = strings.TrimSpace(p)
		}
		schema = &Schema{Type: "string", Enum: enum}
	} else {
		schema = inferSchema(field.Type)
	}
	if desc := field.Tag.Get("description"); desc != "" {
		schema.Description = desc
	}
	return schema
}
