// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// # Tagged Value

// Kind discriminates the payload held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	}
	return "null"
}

// Value is a stored field value: a scalar, a list of values or an object of values.
//
// The zero Value is null. Values are immutable once built; constructors copy
// their inputs.
type Value struct {
	kind Kind
	str  string
	num  float64
	flag bool
	list []Value
	obj  map[string]Value
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, flag: b} }

// ListValue wraps an ordered list of values.
func ListValue(items ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// ObjectValue wraps a set of named values.
func ObjectValue(fields map[string]Value) Value {
	obj := make(map[string]Value, len(fields))
	for key, value := range fields {
		obj[key] = value
	}
	return Value{kind: KindObject, obj: obj}
}

// Kind returns the discriminant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.flag, v.kind == KindBool }

// Items returns a copy of the list payload, or nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return slices.Clone(v.list)
}

// Len returns the number of list items or object fields.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Get returns a named field of an object value.
func (v Value) Get(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	field, ok := v.obj[name]
	return field, ok
}

// Keys returns the sorted field names of an object value.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for key := range v.obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// IsEmpty mirrors [IsEmpty] for tagged values.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return strings.TrimSpace(v.str) == ""
	case KindList:
		return len(v.list) == 0
	}
	return false
}

// Any converts v back into plain JSON data (nil, string, float64, bool, []any, map[string]any).
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.flag
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Any()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for key, item := range v.obj {
			out[key] = item.Any()
		}
		return out
	}
	return nil
}

// MarshalJSON encodes v as its plain JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// # Decoding

// DecodeError reports a value that does not match its field type.
type DecodeError struct {
	Path     string
	Expected string
	Got      any
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Expected, describe(e.Got))
}

// Decode checks raw JSON data against the declared type of field and
// returns the matching tagged value. null is accepted for every type.
//
// Elements of a scalar array may arrive bare or wrapped in a one-key object;
// both decode to a list of scalars.
func Decode(field FieldDefinition, raw any) (Value, error) {
	return decodeAt(field, raw, field.Name)
}

// DecodeData decodes every declared field of data. Undeclared keys are kept
// as untyped values so no stored data is lost.
func DecodeData(fields []FieldDefinition, data map[string]any) (map[string]Value, error) {
	return decodeObject(fields, data, "")
}

func decodeAt(field FieldDefinition, raw any, path string) (Value, error) {
	if raw == nil {
		return NullValue(), nil
	}

	switch {
	case field.Type.IsTextual():
		s, ok := raw.(string)
		if !ok {
			return Value{}, &DecodeError{Path: path, Expected: "string", Got: raw}
		}
		if field.Type == TypeSelect && s != "" && !slices.Contains(field.Options, s) {
			return Value{}, &DecodeError{Path: path, Expected: "one of " + strings.Join(field.Options, ", "), Got: raw}
		}
		return StringValue(s), nil

	case field.Type == TypeNumber:
		n, ok := toNumber(raw)
		if !ok {
			return Value{}, &DecodeError{Path: path, Expected: "number", Got: raw}
		}
		return NumberValue(n), nil

	case field.Type == TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, &DecodeError{Path: path, Expected: "boolean", Got: raw}
		}
		return BoolValue(b), nil

	case field.Type == TypeJSON:
		return FromAny(raw), nil

	case field.Type == TypeArray:
		return decodeArray(field, raw, path)

	case field.Type == TypeGroup:
		obj, ok := asObject(raw)
		if !ok {
			return Value{}, &DecodeError{Path: path, Expected: "object", Got: raw}
		}
		values, err := decodeObject(field.GroupFields, obj, path)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindObject, obj: values}, nil
	}

	return Value{}, &DecodeError{Path: path, Expected: "known field type", Got: string(field.Type)}
}

func decodeArray(field FieldDefinition, raw any, path string) (Value, error) {
	elements, ok := asList(raw)
	if !ok {
		return Value{}, &DecodeError{Path: path, Expected: "array", Got: raw}
	}

	items := make([]Value, 0, len(elements))
	for i, element := range elements {
		elementPath := fmt.Sprintf("%s[%d]", path, i)

		if field.IsScalarArray() {
			sub := field.ArrayFields[0]
			if wrapped, ok := asObject(element); ok && len(wrapped) == 1 && !sub.Type.IsContainer() && sub.Type != TypeJSON {
				if inner, found := wrapped[sub.Name]; found {
					element = inner
				}
			}
			item, err := decodeAt(sub, element, elementPath)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
			continue
		}

		obj, ok := asObject(element)
		if !ok {
			return Value{}, &DecodeError{Path: elementPath, Expected: "object", Got: element}
		}
		values, err := decodeObject(field.ArrayFields, obj, elementPath)
		if err != nil {
			return Value{}, err
		}
		items = append(items, Value{kind: KindObject, obj: values})
	}

	return Value{kind: KindList, list: items}, nil
}

func decodeObject(fields []FieldDefinition, data map[string]any, prefix string) (map[string]Value, error) {
	values := make(map[string]Value, len(data))

	declared := make(map[string]bool, len(fields))
	for _, field := range fields {
		declared[field.Name] = true
		raw, present := data[field.Name]
		if !present {
			continue
		}
		value, err := decodeAt(field, raw, joinPath(prefix, field.Name))
		if err != nil {
			return nil, err
		}
		values[field.Name] = value
	}

	for key, raw := range data {
		if !declared[key] {
			values[key] = FromAny(raw)
		}
	}

	return values, nil
}

// FromAny converts plain JSON data into an untyped [Value].
// Unsupported Go types become their string form.
func FromAny(raw any) Value {
	if raw == nil {
		return NullValue()
	}
	if n, ok := toNumber(raw); ok {
		return NumberValue(n)
	}

	switch typed := raw.(type) {
	case string:
		return StringValue(typed)
	case bool:
		return BoolValue(typed)
	}

	if list, ok := asList(raw); ok {
		items := make([]Value, len(list))
		for i, item := range list {
			items[i] = FromAny(item)
		}
		return Value{kind: KindList, list: items}
	}
	if obj, ok := asObject(raw); ok {
		values := make(map[string]Value, len(obj))
		for key, item := range obj {
			values[key] = FromAny(item)
		}
		return Value{kind: KindObject, obj: values}
	}

	return StringValue(fmt.Sprint(raw))
}

func toNumber(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

func asList(raw any) ([]any, bool) {
	switch typed := raw.(type) {
	case []any:
		return typed, true
	case []string:
		out := make([]any, len(typed))
		for i, s := range typed {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(typed))
		for i, m := range typed {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

func asObject(raw any) (map[string]any, bool) {
	obj, ok := raw.(map[string]any)
	return obj, ok
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	}
	if _, ok := toNumber(raw); ok {
		return "number"
	}
	if _, ok := asList(raw); ok {
		return "array"
	}
	return fmt.Sprintf("%T", raw)
}
