// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/content/schema"
)

func productType() schema.ContentTypeDefinition {
	return schema.ContentTypeDefinition{
		Slug: "product",
		Name: "Product",
		Fields: []schema.FieldDefinition{
			{Name: "title", Label: "Title", Type: schema.TypeText, Required: true},
			{Name: "price", Label: "Price", Type: schema.TypeNumber},
			{Name: "featured", Label: "Featured", Type: schema.TypeBoolean, Required: true},
			{Name: "category", Label: "Category", Type: schema.TypeSelect, Options: []string{"pumps", "valves"}},
			{Name: "body", Label: "Body", Type: schema.TypeRichText},
			{Name: "tags", Label: "Tags", Type: schema.TypeArray, ArrayFields: []schema.FieldDefinition{
				{Name: "tag", Label: "Tag", Type: schema.TypeText},
			}},
			{Name: "specs", Label: "Specs", Type: schema.TypeArray, ArrayFields: []schema.FieldDefinition{
				{Name: "label", Label: "Label", Type: schema.TypeText},
				{Name: "value", Label: "Value", Type: schema.TypeText},
			}},
			{Name: "seo", Label: "SEO", Type: schema.TypeGroup, GroupFields: []schema.FieldDefinition{
				{Name: "title", Label: "SEO Title", Type: schema.TypeText, Required: true},
				{Name: "description", Label: "SEO Description", Type: schema.TypeTextarea},
			}},
		},
	}
}

/*
TestValidate_ValidDefinition accepts a well-formed content type.
*/
func TestValidate_ValidDefinition(t *testing.T) {
	assert.Empty(t, schema.Validate(productType()))
}

/*
TestValidate_Problems covers every structural rule.
*/
func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		fields []schema.FieldDefinition
		path   string
		substr string
	}{
		{
			"duplicate_sibling",
			[]schema.FieldDefinition{
				{Name: "title", Label: "Title", Type: schema.TypeText},
				{Name: "title", Label: "Again", Type: schema.TypeText},
			},
			"title", "duplicate",
		},
		{
			"empty_array",
			[]schema.FieldDefinition{{Name: "items", Label: "Items", Type: schema.TypeArray}},
			"items", "arrayFields",
		},
		{
			"empty_group",
			[]schema.FieldDefinition{{Name: "seo", Label: "SEO", Type: schema.TypeGroup}},
			"seo", "groupFields",
		},
		{
			"select_without_options",
			[]schema.FieldDefinition{{Name: "kind", Label: "Kind", Type: schema.TypeSelect}},
			"kind", "options",
		},
		{
			"scalar_with_children",
			[]schema.FieldDefinition{{Name: "title", Label: "Title", Type: schema.TypeText,
				GroupFields: []schema.FieldDefinition{{Name: "x", Label: "X", Type: schema.TypeText}}}},
			"title", "nested",
		},
		{
			"nested_duplicate",
			[]schema.FieldDefinition{{Name: "rows", Label: "Rows", Type: schema.TypeArray, ArrayFields: []schema.FieldDefinition{
				{Name: "a", Label: "A", Type: schema.TypeText},
				{Name: "a", Label: "A2", Type: schema.TypeText},
			}}},
			"rows.a", "duplicate",
		},
		{
			"unknown_type",
			[]schema.FieldDefinition{{Name: "x", Label: "X", Type: "color"}},
			"x", "unknown type",
		},
		{
			"bad_default",
			[]schema.FieldDefinition{{Name: "n", Label: "N", Type: schema.TypeNumber, DefaultValue: "ten"}},
			"n", "defaultValue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := schema.Validate(schema.ContentTypeDefinition{Slug: "x", Name: "X", Fields: tt.fields})
			require.NotEmpty(t, problems)

			found := false
			for _, p := range problems {
				if p.Path == tt.path && strings.Contains(p.Message, tt.substr) {
					found = true
				}
			}
			assert.True(t, found, "problems: %v", problems)
		})
	}
}

/*
TestDecode_Types checks the declared type acts as the discriminant.
*/
func TestDecode_Types(t *testing.T) {
	def := productType()
	field := func(name string) schema.FieldDefinition {
		f, ok := def.Field(name)
		require.True(t, ok)
		return f
	}

	tests := []struct {
		name    string
		field   schema.FieldDefinition
		raw     any
		kind    schema.Kind
		wantErr bool
	}{
		{"text", field("title"), "Pump", schema.KindString, false},
		{"text_rejects_number", field("title"), 3.0, 0, true},
		{"number_float", field("price"), 9.5, schema.KindNumber, false},
		{"number_int", field("price"), 9, schema.KindNumber, false},
		{"number_rejects_string", field("price"), "9", 0, true},
		{"bool", field("featured"), false, schema.KindBool, false},
		{"null_any_type", field("featured"), nil, schema.KindNull, false},
		{"select_option", field("category"), "pumps", schema.KindString, false},
		{"select_empty", field("category"), "", schema.KindString, false},
		{"select_unknown", field("category"), "hoses", 0, true},
		{"scalar_array", field("tags"), []any{"a", "b"}, schema.KindList, false},
		{"scalar_array_wrapped", field("tags"), []any{map[string]any{"tag": "a"}}, schema.KindList, false},
		{"object_array", field("specs"), []any{map[string]any{"label": "Flow", "value": "10"}}, schema.KindList, false},
		{"object_array_rejects_scalar", field("specs"), []any{"Flow"}, 0, true},
		{"group", field("seo"), map[string]any{"title": "T"}, schema.KindObject, false},
		{"group_rejects_list", field("seo"), []any{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := schema.Decode(tt.field, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var decodeErr *schema.DecodeError
				assert.ErrorAs(t, err, &decodeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, value.Kind())
		})
	}
}

/*
TestDecode_ScalarArrayUnwraps ensures wrapped and bare elements decode alike.
*/
func TestDecode_ScalarArrayUnwraps(t *testing.T) {
	field, _ := productType().Field("tags")

	bare, err := schema.Decode(field, []any{"a", "b"})
	require.NoError(t, err)
	wrapped, err := schema.Decode(field, []any{map[string]any{"tag": "a"}, map[string]any{"tag": "b"}})
	require.NoError(t, err)

	assert.Equal(t, bare.Any(), wrapped.Any())
	assert.Equal(t, []any{"a", "b"}, bare.Any())
}

/*
TestDecodeData_RoundTrip verifies Any() restores plain JSON and keeps unknown keys.
*/
func TestDecodeData_RoundTrip(t *testing.T) {
	data := map[string]any{
		"title": "Pump",
		"price": 12.5,
		"tags":  []any{"a"},
		"specs": []any{map[string]any{"label": "Flow", "value": "10"}},
		"seo":   map[string]any{"title": "T", "description": "D"},
		"extra": map[string]any{"legacy": true},
	}

	values, err := schema.DecodeData(productType().Fields, data)
	require.NoError(t, err)

	restored := make(map[string]any, len(values))
	for key, value := range values {
		restored[key] = value.Any()
	}
	assert.Equal(t, data, restored)
}

func TestValue_Accessors(t *testing.T) {
	obj := schema.ObjectValue(map[string]schema.Value{
		"b": schema.NumberValue(2),
		"a": schema.ListValue(schema.StringValue("x")),
	})

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())

	a, ok := obj.Get("a")
	require.True(t, ok)
	assert.Len(t, a.Items(), 1)

	n, ok := obj.Get("b")
	require.True(t, ok)
	num, isNum := n.AsNumber()
	assert.True(t, isNum)
	assert.Equal(t, 2.0, num)

	raw, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":["x"],"b":2}`, string(raw))

	assert.True(t, schema.StringValue("  ").IsEmpty())
	assert.True(t, schema.ListValue().IsEmpty())
	assert.False(t, schema.BoolValue(false).IsEmpty())
	assert.True(t, schema.NullValue().IsNull())
}

/*
TestConform covers type checks and required-only-when-asked.
*/
func TestConform(t *testing.T) {
	def := productType()

	t.Run("draft_partial_ok", func(t *testing.T) {
		assert.Empty(t, schema.Conform(def, map[string]any{"price": 3.0}, false))
	})

	t.Run("wrong_type", func(t *testing.T) {
		problems := schema.Conform(def, map[string]any{"price": "cheap"}, false)
		require.Len(t, problems, 1)
		assert.Equal(t, "price", problems[0].Path)
	})

	t.Run("unknown_keys_allowed", func(t *testing.T) {
		assert.Empty(t, schema.Conform(def, map[string]any{"legacy_field": 1.0}, false))
	})

	t.Run("published_requires_fields", func(t *testing.T) {
		problems := schema.Conform(def, map[string]any{"title": "  ", "featured": false}, true)
		require.Len(t, problems, 1)
		assert.Equal(t, "Title is required", problems[0].Message)
	})

	t.Run("nested_group_required", func(t *testing.T) {
		problems := schema.Conform(def, map[string]any{
			"title": "Pump", "featured": true, "seo": map[string]any{"title": ""},
		}, true)
		require.Len(t, problems, 1)
		assert.Equal(t, "seo.title", problems[0].Path)
		assert.Equal(t, "SEO Title is required", problems[0].Message)
	})
}

func TestJSONSchema(t *testing.T) {
	document, err := schema.JSONSchema(productType())
	require.NoError(t, err)

	raw, err := json.Marshal(document)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Product", decoded["title"])
	assert.ElementsMatch(t, []any{"title", "featured"}, decoded["required"])

	properties := decoded["properties"].(map[string]any)
	assert.Contains(t, properties, "specs")
	assert.Contains(t, properties, "seo")
}

/*
TestSanitizeRichText strips scripts from richtext values at every depth.
*/
func TestSanitizeRichText(t *testing.T) {
	fields := []schema.FieldDefinition{
		{Name: "body", Label: "Body", Type: schema.TypeRichText},
		{Name: "title", Label: "Title", Type: schema.TypeText},
		{Name: "sections", Label: "Sections", Type: schema.TypeArray, ArrayFields: []schema.FieldDefinition{
			{Name: "heading", Label: "Heading", Type: schema.TypeText},
			{Name: "content", Label: "Content", Type: schema.TypeRichText},
		}},
		{Name: "notes", Label: "Notes", Type: schema.TypeArray, ArrayFields: []schema.FieldDefinition{
			{Name: "note", Label: "Note", Type: schema.TypeRichText},
		}},
	}
	evil := `<p>Hi</p><script>alert(1)</script>`
	data := map[string]any{
		"body":     evil,
		"title":    evil,
		"sections": []any{map[string]any{"heading": "H", "content": evil}},
		"notes":    []any{evil},
	}

	clean := schema.SanitizeRichText(fields, data)

	assert.Equal(t, "<p>Hi</p>", clean["body"])
	assert.Equal(t, evil, clean["title"])
	assert.Equal(t, "<p>Hi</p>", clean["sections"].([]any)[0].(map[string]any)["content"])
	assert.Equal(t, "<p>Hi</p>", clean["notes"].([]any)[0])

	// Input is not mutated
	assert.Equal(t, evil, data["body"])
}

/*
TestSanitizeRichText_KeepsCleanText leaves safe markup byte-for-byte intact,
including quotes and ampersands the sanitizer would re-encode.
*/
func TestSanitizeRichText_KeepsCleanText(t *testing.T) {
	fields := []schema.FieldDefinition{{Name: "body", Label: "Body", Type: schema.TypeRichText}}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation", `<p>It's "great" & cheap</p>`, `<p>It's "great" & cheap</p>`},
		{"entities", `<p>Fish &amp; chips</p>`, `<p>Fish &amp; chips</p>`},
		{"unsafe_with_punctuation", `<p>It's</p><script>x()</script>`, `<p>It&#39;s</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean := schema.SanitizeRichText(fields, map[string]any{"body": tt.in})
			assert.Equal(t, tt.want, clean["body"])
		})
	}
}

func TestInitialData(t *testing.T) {
	fields := []schema.FieldDefinition{
		{Name: "title", Label: "Title", Type: schema.TypeText},
		{Name: "count", Label: "Count", Type: schema.TypeNumber},
		{Name: "on", Label: "On", Type: schema.TypeBoolean},
		{Name: "kind", Label: "Kind", Type: schema.TypeSelect, Options: []string{"a", "b"}, DefaultValue: "b"},
		{Name: "rows", Label: "Rows", Type: schema.TypeArray, ArrayFields: []schema.FieldDefinition{{Name: "x", Label: "X", Type: schema.TypeText}}},
		{Name: "seo", Label: "SEO", Type: schema.TypeGroup, GroupFields: []schema.FieldDefinition{{Name: "t", Label: "T", Type: schema.TypeText}}},
	}

	assert.Equal(t, map[string]any{
		"title": "",
		"count": nil,
		"on":    false,
		"kind":  "b",
		"rows":  []any{},
		"seo":   map[string]any{"t": ""},
	}, schema.InitialData(fields))
}
