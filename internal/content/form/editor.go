// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"context"
	"fmt"

	"github.com/taibuivan/folio/internal/content/schema"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

// ChangeFunc receives the top-level field name and its new stored value
// after every editor mutation.
type ChangeFunc func(name string, value any)

// Saver persists submitted form data and returns the entry id.
// An empty id asks for a new entry.
//
// The signature only uses standard types so HTTP clients can satisfy it
// without importing this package.
type Saver interface {
	Save(ctx context.Context, contentType, id string, data map[string]any) (string, error)
}

// Editor is the in-memory state of one entry form.
//
// Editor is not safe for concurrent use.
type Editor struct {
	def      schema.ContentTypeDefinition
	fields   map[string]schema.FieldDefinition
	values   map[string]schema.Value
	onChange ChangeFunc
}

// NewEditor loads stored entry data into an editor. A nil data map starts
// a blank entry seeded with field defaults. onChange may be nil.
func NewEditor(def schema.ContentTypeDefinition, data map[string]any, onChange ChangeFunc) (*Editor, error) {
	if data == nil {
		data = schema.InitialData(def.Fields)
	}

	decoded, err := schema.DecodeData(def.Fields, data)
	if err != nil {
		return nil, apperr.ValidationError("Stored data does not match the content type",
			apperr.FieldError{Field: fieldOf(err), Message: err.Error()})
	}

	editor := &Editor{
		def:      def,
		fields:   make(map[string]schema.FieldDefinition, len(def.Fields)),
		values:   make(map[string]schema.Value, len(decoded)),
		onChange: onChange,
	}
	for _, field := range def.Fields {
		editor.fields[field.Name] = field
	}
	for name, value := range decoded {
		if field, declared := editor.fields[name]; declared {
			value = toEditor(field, value)
		}
		editor.values[name] = value
	}

	return editor, nil
}

// Definition returns the content type being edited.
func (e *Editor) Definition() schema.ContentTypeDefinition {
	return e.def
}

// Get returns the stored form of one field.
func (e *Editor) Get(name string) any {
	return e.wire(name)
}

// Data returns the stored form of the whole entry: plain JSON with scalar
// array rows unwrapped.
func (e *Editor) Data() map[string]any {
	data := make(map[string]any, len(e.values))
	for name := range e.values {
		data[name] = e.wire(name)
	}
	return data
}

// Controls renders the current state.
func (e *Editor) Controls() []Control {
	return RenderForm(e.def, e.Data())
}

// Set replaces the value of a field after decoding it against the field type.
func (e *Editor) Set(name string, raw any) error {
	field, err := e.field(name)
	if err != nil {
		return err
	}

	value, err := schema.Decode(field, raw)
	if err != nil {
		return apperr.ValidationError("Invalid value", apperr.FieldError{Field: fieldOf(err), Message: err.Error()})
	}

	e.store(name, toEditor(field, value))
	return nil
}

// Array returns an editor for an array field.
func (e *Editor) Array(name string) (*ArrayEditor, error) {
	field, err := e.field(name)
	if err != nil {
		return nil, err
	}
	if field.Type != schema.TypeArray {
		return nil, fmt.Errorf("form: field %q is a %s, not an array", name, field.Type)
	}
	return &ArrayEditor{editor: e, field: field}, nil
}

// Group returns an editor for a group field.
func (e *Editor) Group(name string) (*GroupEditor, error) {
	field, err := e.field(name)
	if err != nil {
		return nil, err
	}
	if field.Type != schema.TypeGroup {
		return nil, fmt.Errorf("form: field %q is a %s, not a group", name, field.Type)
	}
	return &GroupEditor{editor: e, field: field}, nil
}

// # Submission

// Validate returns one error per required field left empty, labelled
// "<Label> is required".
func (e *Editor) Validate() []schema.ValidationError {
	return schema.MissingRequired(e.def.Fields, e.Data())
}

// Submit validates the form and hands the data to saver. When validation
// fails the saver is not called and the returned error is a VALIDATION_ERROR
// [apperr.AppError] carrying one detail per field.
func (e *Editor) Submit(ctx context.Context, saver Saver, id string) (string, error) {
	if problems := e.Validate(); len(problems) > 0 {
		details := make([]apperr.FieldError, len(problems))
		for i, problem := range problems {
			details[i] = apperr.FieldError{Field: problem.Path, Message: problem.Message}
		}
		return "", apperr.ValidationError(problems[0].Message, details...)
	}

	return saver.Save(ctx, e.def.Slug, id, e.Data())
}

// # Internals

func (e *Editor) field(name string) (schema.FieldDefinition, error) {
	field, ok := e.fields[name]
	if !ok {
		return schema.FieldDefinition{}, fmt.Errorf("form: %s has no field %q", e.def.Slug, name)
	}
	return field, nil
}

func (e *Editor) value(name string) schema.Value {
	return e.values[name]
}

func (e *Editor) wire(name string) any {
	value, present := e.values[name]
	if !present {
		return nil
	}
	if field, declared := e.fields[name]; declared {
		value = toWire(field, value)
	}
	return value.Any()
}

func (e *Editor) store(name string, value schema.Value) {
	e.values[name] = value
	if e.onChange != nil {
		e.onChange(name, e.wire(name))
	}
}

func fieldOf(err error) string {
	if decodeErr, ok := err.(*schema.DecodeError); ok {
		return decodeErr.Path
	}
	return ""
}
