// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"fmt"
	"slices"

	"github.com/taibuivan/folio/internal/content/schema"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

// ArrayEditor mutates one array field of an [Editor].
type ArrayEditor struct {
	editor *Editor
	field  schema.FieldDefinition
}

// Len returns the number of elements.
func (a *ArrayEditor) Len() int {
	return a.editor.value(a.field.Name).Len()
}

// Rows returns every element in its object-wrapped editor form.
func (a *ArrayEditor) Rows() []map[string]any {
	items := a.rows()
	rows := make([]map[string]any, len(items))
	for i, item := range items {
		rows[i], _ = item.Any().(map[string]any)
	}
	return rows
}

// Append adds a row seeded with each sub-field default.
func (a *ArrayEditor) Append() {
	row, err := decodeRow(a.field, a.blank())
	if err != nil {
		// Defaults are checked by schema.Validate; fall back to an empty row.
		row = schema.ObjectValue(nil)
	}
	a.commit(append(a.rows(), row))
}

// Remove deletes the element at index.
func (a *ArrayEditor) Remove(index int) error {
	rows := a.rows()
	if err := a.checkIndex(index, len(rows)); err != nil {
		return err
	}
	a.commit(slices.Delete(rows, index, index+1))
	return nil
}

// Replace swaps the element at index. For single sub-field arrays raw may
// be the bare scalar or the wrapped row.
func (a *ArrayEditor) Replace(index int, raw any) error {
	rows := a.rows()
	if err := a.checkIndex(index, len(rows)); err != nil {
		return err
	}
	if raw == nil && !a.field.IsScalarArray() {
		raw = map[string]any{}
	}

	row, err := decodeRow(a.field, raw)
	if err != nil {
		return apperr.ValidationError("Invalid value", apperr.FieldError{Field: fmt.Sprintf("%s[%d]", a.field.Name, index), Message: err.Error()})
	}

	rows[index] = row
	a.commit(rows)
	return nil
}

// SetField updates one sub-field of the row at index and keeps the others.
func (a *ArrayEditor) SetField(index int, name string, raw any) error {
	rows := a.rows()
	if err := a.checkIndex(index, len(rows)); err != nil {
		return err
	}

	merged, _ := rows[index].Any().(map[string]any)
	if merged == nil {
		merged = map[string]any{}
	}
	merged[name] = raw
	return a.Replace(index, merged)
}

// Move relocates the element at from to position to.
func (a *ArrayEditor) Move(from, to int) error {
	rows := a.rows()
	if err := a.checkIndex(from, len(rows)); err != nil {
		return err
	}
	if err := a.checkIndex(to, len(rows)); err != nil {
		return err
	}

	row := rows[from]
	rows = slices.Delete(rows, from, from+1)
	rows = slices.Insert(rows, to, row)
	a.commit(rows)
	return nil
}

func (a *ArrayEditor) rows() []schema.Value {
	return a.editor.value(a.field.Name).Items()
}

func (a *ArrayEditor) blank() any {
	if a.field.IsScalarArray() {
		return a.field.ArrayFields[0].Initial()
	}
	return schema.InitialData(a.field.ArrayFields)
}

func (a *ArrayEditor) commit(rows []schema.Value) {
	a.editor.store(a.field.Name, schema.ListValue(rows...))
}

func (a *ArrayEditor) checkIndex(index, length int) error {
	if index < 0 || index >= length {
		return fmt.Errorf("form: index %d out of range for %s (len %d)", index, a.field.Name, length)
	}
	return nil
}
