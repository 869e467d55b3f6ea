// Package llm - schema.go provides a provider-neutral description of a structured-output schema.
package llm

import (
	"sort"

	"github.com/google/generative-ai-go/genai"
)

// SchemaType is the JSON type of a schema node
type SchemaType string

// Supported schema node types. Every leaf of a content document is free text.
const (
	TypeString SchemaType = "string"
	TypeArray  SchemaType = "array"
	TypeObject SchemaType = "object"
)

// Schema describes the JSON shape a model is asked to produce.
// Object nodes list their properties in PropertyOrder so that every rendition is deterministic.
type Schema struct {
	Type          SchemaType
	Description   string
	Properties    map[string]*Schema
	PropertyOrder []string
	Items         *Schema
	Required      []string
}

// Property is a named child of an object schema
type Property struct {
	Name   string
	Schema *Schema
}

// String returns a string leaf with an optional description
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// ArrayOf returns an array schema whose elements follow items
func ArrayOf(items *Schema, description string) *Schema {
	return &Schema{Type: TypeArray, Items: items, Description: description}
}

// Object returns an object schema in which every property is required
func Object(description string, props ...Property) *Schema {
	s := &Schema{
		Type:          TypeObject,
		Description:   description,
		Properties:    make(map[string]*Schema, len(props)),
		PropertyOrder: make([]string, 0, len(props)),
		Required:      make([]string, 0, len(props)),
	}
	for _, p := range props {
		s.Properties[p.Name] = p.Schema
		s.PropertyOrder = append(s.PropertyOrder, p.Name)
		s.Required = append(s.Required, p.Name)
	}
	return s
}

// Prop is shorthand for building a Property
func Prop(name string, schema *Schema) Property {
	return Property{Name: name, Schema: schema}
}

// ToGenai converts the schema into the Gemini response schema representation.
func (s *Schema) ToGenai() *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
	}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for _, name := range s.orderedNames() {
			out.Properties[name] = s.Properties[name].ToGenai()
		}
		if len(s.Required) > 0 {
			out.Required = append([]string(nil), s.Required...)
		}
	case TypeArray:
		out.Type = genai.TypeArray
		out.Items = s.Items.ToGenai()
	default:
		out.Type = genai.TypeString
	}
	return out
}

// JSONSchema renders the schema as a JSON Schema document.
// Objects are closed (additionalProperties=false), which is also what OpenAI strict mode requires.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return map[string]any{}
	}

	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	switch s.Type {
	case TypeObject:
		props := make(map[string]any, len(s.Properties))
		for _, name := range s.orderedNames() {
			props[name] = s.Properties[name].JSONSchema()
		}
		out["properties"] = props
		out["required"] = append([]string{}, s.Required...)
		out["additionalProperties"] = false
	case TypeArray:
		out["items"] = s.Items.JSONSchema()
	}
	return out
}

// Fields returns the dotted path of every leaf in the schema, sorted.
// Array elements are marked with "[]", e.g. "contentCalendar[].date".
func (s *Schema) Fields() []string {
	var fields []string
	s.collectFields("", &fields)
	sort.Strings(fields)
	return fields
}

func (s *Schema) collectFields(prefix string, fields *[]string) {
	if s == nil {
		return
	}
	switch s.Type {
	case TypeObject:
		for _, name := range s.orderedNames() {
			path := name
			if prefix != "" {
				path = prefix + "." + name
			}
			s.Properties[name].collectFields(path, fields)
		}
	case TypeArray:
		s.Items.collectFields(prefix+"[]", fields)
	default:
		*fields = append(*fields, prefix)
	}
}

// orderedNames returns property names in declaration order, falling back to sorted order
// for properties added to the map directly.
func (s *Schema) orderedNames() []string {
	names := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, name := range s.PropertyOrder {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range s.Properties {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
