// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import "github.com/taibuivan/folio/internal/content/schema"

// The editor keeps every array row as an object. Arrays with a single
// sub-field are stored as bare scalars, so rows are wrapped on the way in
// (toEditor) and unwrapped on the way out (toWire). Both walk nested
// groups and arrays.

func toEditor(field schema.FieldDefinition, value schema.Value) schema.Value {
	switch field.Type {
	case schema.TypeArray:
		if value.Kind() != schema.KindList {
			return value
		}
		items := value.Items()
		rows := make([]schema.Value, len(items))
		for i, item := range items {
			if field.IsScalarArray() {
				sub := field.ArrayFields[0]
				rows[i] = schema.ObjectValue(map[string]schema.Value{sub.Name: toEditor(sub, item)})
				continue
			}
			rows[i] = mapObject(field.ArrayFields, item, toEditor)
		}
		return schema.ListValue(rows...)

	case schema.TypeGroup:
		return mapObject(field.GroupFields, value, toEditor)
	}
	return value
}

func toWire(field schema.FieldDefinition, value schema.Value) schema.Value {
	switch field.Type {
	case schema.TypeArray:
		if value.Kind() != schema.KindList {
			return value
		}
		items := value.Items()
		out := make([]schema.Value, len(items))
		for i, row := range items {
			if field.IsScalarArray() {
				sub := field.ArrayFields[0]
				inner, _ := row.Get(sub.Name)
				out[i] = toWire(sub, inner)
				continue
			}
			out[i] = mapObject(field.ArrayFields, row, toWire)
		}
		return schema.ListValue(out...)

	case schema.TypeGroup:
		return mapObject(field.GroupFields, value, toWire)
	}
	return value
}

// mapObject applies convert to every declared key of an object value and
// keeps undeclared keys as they are.
func mapObject(fields []schema.FieldDefinition, value schema.Value, convert func(schema.FieldDefinition, schema.Value) schema.Value) schema.Value {
	if value.Kind() != schema.KindObject {
		return value
	}

	byName := make(map[string]schema.FieldDefinition, len(fields))
	for _, field := range fields {
		byName[field.Name] = field
	}

	out := make(map[string]schema.Value, value.Len())
	for _, key := range value.Keys() {
		item, _ := value.Get(key)
		if field, declared := byName[key]; declared {
			item = convert(field, item)
		}
		out[key] = item
	}
	return schema.ObjectValue(out)
}

// decodeRow turns raw input for one array element into an editor row.
// Scalar arrays accept either the bare scalar or the wrapped object.
func decodeRow(field schema.FieldDefinition, raw any) (schema.Value, error) {
	if field.IsScalarArray() {
		sub := field.ArrayFields[0]
		if wrapped, ok := raw.(map[string]any); ok && !sub.Type.IsContainer() && sub.Type != schema.TypeJSON {
			raw = wrapped[sub.Name]
		}
		value, err := schema.Decode(sub, raw)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.ObjectValue(map[string]schema.Value{sub.Name: toEditor(sub, value)}), nil
	}

	row := schema.FieldDefinition{Name: field.Name, Label: field.Label, Type: schema.TypeGroup, GroupFields: field.ArrayFields}
	value, err := schema.Decode(row, raw)
	if err != nil {
		return schema.Value{}, err
	}
	return toEditor(row, value), nil
}
