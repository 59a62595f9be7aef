// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// # JSON Schema

// JSONSchema builds the JSON Schema document describing the data of a content type.
// Required top-level fields are listed in "required". Unknown keys are allowed.
func JSONSchema(def ContentTypeDefinition) (*jsonschema.Schema, error) {
	document := objectSchema(def.Fields, true)
	document["$schema"] = "https://json-schema.org/draft/2020-12/schema"
	document["title"] = def.Name
	if def.Description != "" {
		document["description"] = def.Description
	}
	return toSchema(document)
}

// Conform validates a data payload against a content type.
//
// Value types are always checked. Required fields are only enforced when
// requireFields is set, so drafts may be saved partially filled.
func Conform(def ContentTypeDefinition, data map[string]any, requireFields bool) []ValidationError {
	if data == nil {
		data = map[string]any{}
	}

	schema, err := toSchema(objectSchema(def.Fields, false))
	if err != nil {
		return []ValidationError{{Message: err.Error()}}
	}

	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return []ValidationError{{Message: fmt.Sprintf("failed to resolve schema: %v", err)}}
	}

	// The schema only covers types, so the decoder supplies the path of the
	// first mismatch and the schema error is the fallback message.
	if err := resolved.Validate(normalize(data)); err != nil {
		if _, decodeErr := DecodeData(def.Fields, data); decodeErr != nil {
			if typed, ok := decodeErr.(*DecodeError); ok {
				return []ValidationError{{Path: typed.Path, Message: fmt.Sprintf("expected %s, got %s", typed.Expected, describe(typed.Got))}}
			}
		}
		return []ValidationError{{Path: "data", Message: err.Error()}}
	}

	if requireFields {
		return MissingRequired(def.Fields, data)
	}
	return nil
}

func objectSchema(fields []FieldDefinition, withRequired bool) map[string]any {
	properties := make(map[string]any, len(fields))
	var required []string

	for _, field := range fields {
		properties[field.Name] = fieldSchema(field, withRequired)
		if withRequired && field.Required {
			required = append(required, field.Name)
		}
	}

	document := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		document["required"] = required
	}
	return document
}

func fieldSchema(field FieldDefinition, withRequired bool) map[string]any {
	document := map[string]any{}
	if field.Label != "" {
		document["title"] = field.Label
	}
	if field.Help != "" {
		document["description"] = field.Help
	}

	switch {
	case field.Type == TypeSelect:
		enum := make([]any, 0, len(field.Options)+2)
		for _, option := range field.Options {
			enum = append(enum, option)
		}
		document["enum"] = append(enum, "", nil)

	case field.Type.IsTextual():
		document["type"] = []string{"string", "null"}

	case field.Type == TypeNumber:
		document["type"] = []string{"number", "null"}

	case field.Type == TypeBoolean:
		document["type"] = []string{"boolean", "null"}

	case field.Type == TypeArray:
		document["type"] = []string{"array", "null"}
		if field.IsScalarArray() {
			document["items"] = fieldSchema(field.ArrayFields[0], withRequired)
		} else {
			row := objectSchema(field.ArrayFields, withRequired)
			document["items"] = row
		}

	case field.Type == TypeGroup:
		group := objectSchema(field.GroupFields, withRequired)
		group["type"] = []string{"object", "null"}
		for key, value := range group {
			document[key] = value
		}
	}

	return document
}

func toSchema(document map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into jsonschema.Schema: %w", err)
	}
	return &schema, nil
}

// normalize turns typed Go data into the plain JSON shapes the validator expects.
func normalize(data map[string]any) any {
	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return data
	}
	return plain
}
