// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema describes editable content declaratively.

A [ContentTypeDefinition] is a named list of [FieldDefinition] values. Fields
are scalars (text, number, image, ...) or containers: an array repeats a row
of sub-fields, a group embeds one object. Containers may nest to any depth.

Besides the data model the package offers:

  - Validate: structural checks on a definition.
  - Decode / Value: a tagged union for stored field values, discriminated by the field type.
  - JSONSchema / Conform: payload conformance through google/jsonschema-go.
  - SanitizeRichText: HTML cleaning of every richtext value in a payload.
*/
package schema

// # Field Types

// FieldType is the declared type of a field and the discriminant of its value.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeRichText FieldType = "richtext"
	TypeNumber   FieldType = "number"
	TypeBoolean  FieldType = "boolean"
	TypeImage    FieldType = "image"
	TypeSelect   FieldType = "select"
	TypeDate     FieldType = "date"
	TypeURL      FieldType = "url"
	TypeEmail    FieldType = "email"
	TypeJSON     FieldType = "json"
	TypeArray    FieldType = "array"
	TypeGroup    FieldType = "group"
)

// FieldTypes lists every supported type in declaration order.
var FieldTypes = []FieldType{
	TypeText, TypeTextarea, TypeRichText, TypeNumber, TypeBoolean, TypeImage,
	TypeSelect, TypeDate, TypeURL, TypeEmail, TypeJSON, TypeArray, TypeGroup,
}

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsContainer reports whether t carries nested field definitions.
func (t FieldType) IsContainer() bool {
	return t == TypeArray || t == TypeGroup
}

// IsTextual reports whether values of t are stored as JSON strings.
func (t FieldType) IsTextual() bool {
	switch t {
	case TypeText, TypeTextarea, TypeRichText, TypeImage, TypeSelect, TypeDate, TypeURL, TypeEmail:
		return true
	}
	return false
}

// # Definitions

// FieldDefinition describes one form field.
type FieldDefinition struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required,omitempty"`

	// Options are the allowed values of a select field.
	Options []string `json:"options,omitempty"`

	// ArrayFields is the row shape of an array. With exactly one sub-field
	// every element is stored as a bare scalar, otherwise as an object.
	ArrayFields []FieldDefinition `json:"arrayFields,omitempty"`

	// GroupFields is the shape of the single object embedded by a group.
	GroupFields []FieldDefinition `json:"groupFields,omitempty"`

	DefaultValue any    `json:"defaultValue,omitempty"`
	Placeholder  string `json:"placeholder,omitempty"`
	Help         string `json:"help,omitempty"`
}

// IsScalarArray reports whether the field is an array whose elements are bare scalars.
func (f FieldDefinition) IsScalarArray() bool {
	return f.Type == TypeArray && len(f.ArrayFields) == 1
}

// Children returns the nested definitions of a container field.
func (f FieldDefinition) Children() []FieldDefinition {
	switch f.Type {
	case TypeArray:
		return f.ArrayFields
	case TypeGroup:
		return f.GroupFields
	}
	return nil
}

// Initial returns the value a new entry starts with for this field.
//
// The declared default wins. Otherwise strings start empty, booleans false,
// arrays empty and groups as an object of their sub-field initials. Numbers,
// json and unknown types start as null.
func (f FieldDefinition) Initial() any {
	if f.DefaultValue != nil {
		return cloneJSON(f.DefaultValue)
	}

	switch {
	case f.Type.IsTextual():
		return ""
	case f.Type == TypeBoolean:
		return false
	case f.Type == TypeArray:
		return []any{}
	case f.Type == TypeGroup:
		return InitialData(f.GroupFields)
	}
	return nil
}

// InitialData builds the starting object for a list of fields.
func InitialData(fields []FieldDefinition) map[string]any {
	data := make(map[string]any, len(fields))
	for _, field := range fields {
		data[field.Name] = field.Initial()
	}
	return data
}

// ContentTypeDefinition is a named collection of field definitions.
type ContentTypeDefinition struct {
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	NamePlural  string            `json:"namePlural"`
	Icon        string            `json:"icon"`
	Description string            `json:"description"`
	IsSingle    bool              `json:"isSingle"`
	Fields      []FieldDefinition `json:"fields"`
}

// Field returns the top-level field with the given name.
func (d ContentTypeDefinition) Field(name string) (FieldDefinition, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// RequiredFields returns the names of the top-level required fields.
func (d ContentTypeDefinition) RequiredFields() []string {
	var names []string
	for _, field := range d.Fields {
		if field.Required {
			names = append(names, field.Name)
		}
	}
	return names
}

// cloneJSON deep-copies plain JSON data so defaults are never shared between entries.
func cloneJSON(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneJSON(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneJSON(item)
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out
	}
	return v
}
