// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"github.com/taibuivan/folio/internal/content/schema"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

// GroupEditor mutates one group field of an [Editor].
type GroupEditor struct {
	editor *Editor
	field  schema.FieldDefinition
}

// Value returns the stored object, or an empty map when unset.
func (g *GroupEditor) Value() map[string]any {
	value, _ := g.editor.wire(g.field.Name).(map[string]any)
	if value == nil {
		return map[string]any{}
	}
	return value
}

// Update merges partial into the existing object. Keys not present in
// partial keep their current value untouched.
func (g *GroupEditor) Update(partial map[string]any) error {
	current := g.editor.value(g.field.Name)

	merged := make(map[string]schema.Value, current.Len()+len(partial))
	for _, key := range current.Keys() {
		merged[key], _ = current.Get(key)
	}

	patch, err := schema.DecodeData(g.field.GroupFields, partial)
	if err != nil {
		return apperr.ValidationError("Invalid value", apperr.FieldError{Field: g.field.Name + "." + fieldOf(err), Message: err.Error()})
	}

	for key, value := range patch {
		if sub, declared := subField(g.field, key); declared {
			value = toEditor(sub, value)
		}
		merged[key] = value
	}

	g.editor.store(g.field.Name, schema.ObjectValue(merged))
	return nil
}

func subField(group schema.FieldDefinition, name string) (schema.FieldDefinition, bool) {
	for _, field := range group.GroupFields {
		if field.Name == name {
			return field, true
		}
	}
	return schema.FieldDefinition{}, false
}
