// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"fmt"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[_-][a-z0-9]+)*$`)

// ValidationError reports one problem at a dotted path.
type ValidationError struct {
	Path    string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Validate checks the structure of a content type definition.
//
// A definition is valid when its slug and name are set, sibling field names
// are unique, every container carries a non-empty nested list, select fields
// have options, scalar fields carry no nested lists and declared defaults
// decode against their field.
func Validate(def ContentTypeDefinition) []ValidationError {
	var problems []ValidationError

	if !slugPattern.MatchString(def.Slug) {
		problems = append(problems, ValidationError{Path: "slug", Message: fmt.Sprintf("invalid slug %q", def.Slug)})
	}
	if strings.TrimSpace(def.Name) == "" {
		problems = append(problems, ValidationError{Path: "name", Message: "name is required"})
	}
	if len(def.Fields) == 0 {
		problems = append(problems, ValidationError{Path: "fields", Message: "at least one field is required"})
	}

	return append(problems, ValidateFields(def.Fields, "")...)
}

// ValidateFields checks a list of sibling fields and recurses into containers.
func ValidateFields(fields []FieldDefinition, prefix string) []ValidationError {
	var problems []ValidationError
	seen := make(map[string]bool, len(fields))

	for i, field := range fields {
		path := joinPath(prefix, field.Name)
		if field.Name == "" {
			path = joinPath(prefix, fmt.Sprintf("[%d]", i))
		}
		fail := func(message string) {
			problems = append(problems, ValidationError{Path: path, Message: message})
		}

		if field.Name == "" {
			fail("name is required")
		} else if seen[field.Name] {
			fail("duplicate field name")
		}
		seen[field.Name] = true

		if strings.TrimSpace(field.Label) == "" {
			fail("label is required")
		}
		if !field.Type.Valid() {
			fail(fmt.Sprintf("unknown type %q", field.Type))
			continue
		}

		switch field.Type {
		case TypeArray:
			if len(field.ArrayFields) == 0 {
				fail("array requires arrayFields")
			}
			if len(field.GroupFields) > 0 {
				fail("array cannot declare groupFields")
			}
		case TypeGroup:
			if len(field.GroupFields) == 0 {
				fail("group requires groupFields")
			}
			if len(field.ArrayFields) > 0 {
				fail("group cannot declare arrayFields")
			}
		default:
			if len(field.ArrayFields) > 0 || len(field.GroupFields) > 0 {
				fail("scalar field cannot declare nested fields")
			}
		}

		if field.Type == TypeSelect && len(field.Options) == 0 {
			fail("select requires options")
		}
		if field.Type != TypeSelect && len(field.Options) > 0 {
			fail("options are only allowed on select")
		}

		if field.DefaultValue != nil {
			if _, err := Decode(field, field.DefaultValue); err != nil {
				fail("defaultValue: " + err.Error())
			}
		}

		problems = append(problems, ValidateFields(field.Children(), path)...)
	}

	return problems
}

// MissingRequired lists every required field whose value is empty.
//
// A value is empty when it is absent, null, a whitespace-only string or an
// empty array. false and 0 satisfy a required field. Groups are checked
// recursively when present. The message is "<Label> is required".
func MissingRequired(fields []FieldDefinition, data map[string]any) []ValidationError {
	return missingRequired(fields, data, "")
}

func missingRequired(fields []FieldDefinition, data map[string]any, prefix string) []ValidationError {
	var problems []ValidationError

	for _, field := range fields {
		path := joinPath(prefix, field.Name)
		value := data[field.Name]

		if field.Required && IsEmpty(value) {
			problems = append(problems, ValidationError{Path: path, Message: field.Label + " is required"})
			continue
		}

		if field.Type == TypeGroup {
			if nested, ok := value.(map[string]any); ok {
				problems = append(problems, missingRequired(field.GroupFields, nested, path)...)
			}
		}
	}

	return problems
}

// IsEmpty reports whether a plain JSON value counts as missing.
func IsEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case []map[string]any:
		return len(typed) == 0
	}
	return false
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if strings.HasPrefix(name, "[") {
		return prefix + name
	}
	return prefix + "." + name
}
