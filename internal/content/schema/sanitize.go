// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// richTextPolicy is safe for concurrent use once built.
var richTextPolicy = bluemonday.UGCPolicy()

// SanitizeRichText returns a copy of data in which every richtext value,
// including those nested in arrays and groups, has been cleaned of unsafe HTML.
// Values of other types are copied unchanged.
func SanitizeRichText(fields []FieldDefinition, data map[string]any) map[string]any {
	if data == nil {
		return nil
	}

	out := make(map[string]any, len(data))
	for key, value := range data {
		out[key] = cloneJSON(value)
	}

	for _, field := range fields {
		if value, present := out[field.Name]; present {
			out[field.Name] = sanitizeValue(field, value)
		}
	}
	return out
}

func sanitizeValue(field FieldDefinition, value any) any {
	switch field.Type {
	case TypeRichText:
		if s, ok := value.(string); ok {
			return sanitizeHTML(s)
		}

	case TypeGroup:
		if obj, ok := value.(map[string]any); ok {
			return SanitizeRichText(field.GroupFields, obj)
		}

	case TypeArray:
		list, ok := asList(value)
		if !ok {
			return value
		}
		out := make([]any, len(list))
		for i, element := range list {
			if field.IsScalarArray() {
				out[i] = sanitizeValue(field.ArrayFields[0], element)
			} else if obj, ok := element.(map[string]any); ok {
				out[i] = SanitizeRichText(field.ArrayFields, obj)
			} else {
				out[i] = element
			}
		}
		return out
	}
	return value
}

// sanitizeHTML keeps the submitted text when the policy removed nothing.
// bluemonday re-encodes quotes and ampersands in text nodes, and storing that
// output would change clean content on every save.
func sanitizeHTML(s string) string {
	sanitized := richTextPolicy.Sanitize(s)
	if html.UnescapeString(sanitized) == html.UnescapeString(s) {
		return s
	}
	return sanitized
}
