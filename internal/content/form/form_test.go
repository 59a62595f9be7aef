// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/content/form"
	"github.com/taibuivan/folio/internal/content/registry"
	"github.com/taibuivan/folio/internal/content/schema"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

// recordingSaver remembers every call instead of persisting.
type recordingSaver struct {
	calls []map[string]any
	types []string
	ids   []string
}

func (s *recordingSaver) Save(_ context.Context, contentType, id string, data map[string]any) (string, error) {
	s.calls = append(s.calls, data)
	s.types = append(s.types, contentType)
	s.ids = append(s.ids, id)
	if id == "" {
		return "new-id", nil
	}
	return id, nil
}

func sectorType(t *testing.T) schema.ContentTypeDefinition {
	t.Helper()
	def, ok := registry.Default().GetBySlug(registry.Sector)
	require.True(t, ok)
	return def
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

/*
TestRender_Widgets maps every field type to its control.
*/
func TestRender_Widgets(t *testing.T) {
	tests := []struct {
		fieldType schema.FieldType
		widget    form.Widget
	}{
		{schema.TypeText, form.WidgetTextInput},
		{schema.TypeTextarea, form.WidgetTextarea},
		{schema.TypeRichText, form.WidgetRichText},
		{schema.TypeNumber, form.WidgetNumber},
		{schema.TypeBoolean, form.WidgetCheckbox},
		{schema.TypeImage, form.WidgetImagePicker},
		{schema.TypeSelect, form.WidgetSelect},
		{schema.TypeDate, form.WidgetDate},
		{schema.TypeURL, form.WidgetURL},
		{schema.TypeEmail, form.WidgetEmail},
		{schema.TypeJSON, form.WidgetJSON},
		{schema.TypeArray, form.WidgetArray},
		{schema.TypeGroup, form.WidgetGroup},
	}

	for _, tt := range tests {
		t.Run(string(tt.fieldType), func(t *testing.T) {
			assert.Equal(t, tt.widget, form.WidgetFor(tt.fieldType))
		})
	}
}

/*
TestRenderForm_Blank seeds a new entry with defaults and an array template.
*/
func TestRenderForm_Blank(t *testing.T) {
	controls := form.RenderForm(sectorType(t), nil)
	require.NotEmpty(t, controls)

	byName := make(map[string]form.Control, len(controls))
	for _, control := range controls {
		byName[control.Name] = control
	}

	title := byName["title"]
	assert.True(t, title.Required)
	assert.Equal(t, "", title.Value)

	highlights := byName["highlights"]
	assert.Equal(t, form.WidgetArray, highlights.Widget)
	assert.Empty(t, highlights.Rows)
	require.Len(t, highlights.Template, 1)
	assert.Equal(t, "highlights[].highlight", highlights.Template[0].Path)

	seo := byName["seo"]
	require.Len(t, seo.Children, 3)
	assert.Equal(t, "seo.meta_title", seo.Children[0].Path)
}

/*
TestRender_ScalarArrayRows wraps bare scalars into one control per row.
*/
func TestRender_ScalarArrayRows(t *testing.T) {
	def := sectorType(t)
	field, _ := def.Field("highlights")

	control := form.Render(field, []any{"Fast", "Cheap"})
	require.Len(t, control.Rows, 2)
	assert.Equal(t, "highlights[1].highlight", control.Rows[1][0].Path)
	assert.Equal(t, "Cheap", control.Rows[1][0].Value)
}

/*
TestRender_InvalidValue keeps the raw value and flags the mismatch.
*/
func TestRender_InvalidValue(t *testing.T) {
	control := form.Render(schema.FieldDefinition{Name: "price", Label: "Price", Type: schema.TypeNumber}, "cheap")
	assert.Equal(t, "cheap", control.Value)
	assert.NotEmpty(t, control.Invalid)
}

/*
TestArray_AppendThenRemove leaves the stored value unchanged.
*/
func TestArray_AppendThenRemove(t *testing.T) {
	data := map[string]any{
		"title":      "Water",
		"highlights": []any{"Fast", "Cheap"},
	}
	editor, err := form.NewEditor(sectorType(t), data, nil)
	require.NoError(t, err)

	before := mustJSON(t, editor.Get("highlights"))

	array, err := editor.Array("highlights")
	require.NoError(t, err)

	array.Append()
	assert.Equal(t, 3, array.Len())
	require.NoError(t, array.Remove(2))

	assert.Equal(t, before, mustJSON(t, editor.Get("highlights")))
}

/*
TestArray_Mutations covers replace, per-field edits and reordering.
*/
func TestArray_Mutations(t *testing.T) {
	editor, err := form.NewEditor(sectorType(t), map[string]any{"highlights": []any{"a", "b", "c"}}, nil)
	require.NoError(t, err)

	array, err := editor.Array("highlights")
	require.NoError(t, err)

	t.Run("replace_bare_scalar", func(t *testing.T) {
		require.NoError(t, array.Replace(0, "A"))
		assert.Equal(t, []any{"A", "b", "c"}, editor.Get("highlights"))
	})

	t.Run("replace_wrapped_row", func(t *testing.T) {
		require.NoError(t, array.Replace(1, map[string]any{"highlight": "B"}))
		assert.Equal(t, []any{"A", "B", "c"}, editor.Get("highlights"))
	})

	t.Run("set_field", func(t *testing.T) {
		require.NoError(t, array.SetField(2, "highlight", "C"))
		assert.Equal(t, []any{"A", "B", "C"}, editor.Get("highlights"))
	})

	t.Run("move", func(t *testing.T) {
		require.NoError(t, array.Move(2, 0))
		assert.Equal(t, []any{"C", "A", "B"}, editor.Get("highlights"))
	})

	t.Run("rows_are_wrapped", func(t *testing.T) {
		assert.Equal(t, map[string]any{"highlight": "C"}, array.Rows()[0])
	})

	t.Run("out_of_range", func(t *testing.T) {
		assert.Error(t, array.Remove(3))
		assert.Error(t, array.Move(-1, 0))
	})

	t.Run("type_mismatch", func(t *testing.T) {
		err := array.Replace(0, 42.0)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestGroup_UpdateKeepsOtherKeys merges a partial update without touching siblings.
*/
func TestGroup_UpdateKeepsOtherKeys(t *testing.T) {
	data := map[string]any{
		"seo": map[string]any{
			"meta_title":       "Water",
			"meta_description": "Pumps for municipal water",
			"og_image":         "/uploads/water.png",
			"legacy":           map[string]any{"keep": true},
		},
	}

	var changes []string
	editor, err := form.NewEditor(sectorType(t), data, func(name string, _ any) {
		changes = append(changes, name)
	})
	require.NoError(t, err)

	group, err := editor.Group("seo")
	require.NoError(t, err)

	before := group.Value()
	require.NoError(t, group.Update(map[string]any{"meta_title": "Clean Water"}))
	after := group.Value()

	assert.Equal(t, "Clean Water", after["meta_title"])
	for _, key := range []string{"meta_description", "og_image", "legacy"} {
		assert.Equal(t, mustJSON(t, before[key]), mustJSON(t, after[key]), key)
	}
	assert.Equal(t, []string{"seo"}, changes)
}

/*
TestEditor_WrongContainer refuses array or group access on other fields.
*/
func TestEditor_WrongContainer(t *testing.T) {
	editor, err := form.NewEditor(sectorType(t), nil, nil)
	require.NoError(t, err)

	_, err = editor.Array("seo")
	assert.Error(t, err)
	_, err = editor.Group("highlights")
	assert.Error(t, err)
	assert.Error(t, editor.Set("missing", "x"))
}

/*
TestSubmit_MissingRequired reports "<Label> is required" and never saves.
*/
func TestSubmit_MissingRequired(t *testing.T) {
	editor, err := form.NewEditor(sectorType(t), nil, nil)
	require.NoError(t, err)

	require.NoError(t, editor.Set("description", "Pumps"))
	require.NoError(t, editor.Set("image", "/uploads/a.png"))
	require.NoError(t, editor.Set("link", "/sectors/water"))

	saver := &recordingSaver{}
	_, err = editor.Submit(context.Background(), saver, "")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "title", appErr.Details[0].Field)
	assert.Equal(t, "Title is required", appErr.Details[0].Message)
	assert.Empty(t, saver.calls)
}

/*
TestSubmit_Saves hands the unwrapped data to the saver.
*/
func TestSubmit_Saves(t *testing.T) {
	editor, err := form.NewEditor(sectorType(t), nil, nil)
	require.NoError(t, err)

	for name, value := range map[string]any{
		"title":       "Water",
		"description": "Pumps",
		"image":       "/uploads/a.png",
		"link":        "/sectors/water",
	} {
		require.NoError(t, editor.Set(name, value))
	}

	array, err := editor.Array("highlights")
	require.NoError(t, err)
	array.Append()
	require.NoError(t, array.Replace(0, "Reliable"))

	saver := &recordingSaver{}
	id, err := editor.Submit(context.Background(), saver, "")
	require.NoError(t, err)

	assert.Equal(t, "new-id", id)
	require.Len(t, saver.calls, 1)
	assert.Equal(t, registry.Sector, saver.types[0])
	assert.Equal(t, []any{"Reliable"}, saver.calls[0]["highlights"])
}
