// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package form turns field schemas into editable form state.

Render maps a field and its stored value to a widget descriptor that a UI
(the admin SPA or the content-types API) draws. Editor holds the in-memory
state of one entry form and reports every mutation through a callback. The
package performs no I/O; Submit hands validated data to a caller-supplied
[Saver].
*/
package form

import (
	"fmt"

	"github.com/taibuivan/folio/internal/content/schema"
)

// Widget names the control a UI should draw for a field.
type Widget string

const (
	WidgetTextInput   Widget = "text_input"
	WidgetTextarea    Widget = "textarea"
	WidgetRichText    Widget = "rich_text_editor"
	WidgetNumber      Widget = "number_input"
	WidgetCheckbox    Widget = "checkbox"
	WidgetImagePicker Widget = "image_picker"
	WidgetSelect      Widget = "select"
	WidgetDate        Widget = "date_picker"
	WidgetURL         Widget = "url_input"
	WidgetEmail       Widget = "email_input"
	WidgetJSON        Widget = "json_editor"
	WidgetArray       Widget = "array"
	WidgetGroup       Widget = "group"
)

var widgets = map[schema.FieldType]Widget{
	schema.TypeText:     WidgetTextInput,
	schema.TypeTextarea: WidgetTextarea,
	schema.TypeRichText: WidgetRichText,
	schema.TypeNumber:   WidgetNumber,
	schema.TypeBoolean:  WidgetCheckbox,
	schema.TypeImage:    WidgetImagePicker,
	schema.TypeSelect:   WidgetSelect,
	schema.TypeDate:     WidgetDate,
	schema.TypeURL:      WidgetURL,
	schema.TypeEmail:    WidgetEmail,
	schema.TypeJSON:     WidgetJSON,
	schema.TypeArray:    WidgetArray,
	schema.TypeGroup:    WidgetGroup,
}

// WidgetFor returns the widget drawn for a field type.
func WidgetFor(fieldType schema.FieldType) Widget {
	if widget, ok := widgets[fieldType]; ok {
		return widget
	}
	return WidgetTextInput
}

// Control describes one rendered form control.
//
// Scalars carry their current Value. Arrays carry one row of controls per
// element plus a Template row seeded with defaults. Groups carry Children.
type Control struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Label       string   `json:"label"`
	Widget      Widget   `json:"widget"`
	Required    bool     `json:"required,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Help        string   `json:"help,omitempty"`
	Options     []string `json:"options,omitempty"`
	Value       any      `json:"value,omitempty"`

	Rows     [][]Control `json:"rows,omitempty"`
	Template []Control   `json:"template,omitempty"`
	Children []Control   `json:"children,omitempty"`

	// Invalid is set when the stored value does not match the field type.
	// The raw value is still shown so nothing is lost on screen.
	Invalid string `json:"invalid,omitempty"`
}

// Render builds the control for one field and its stored value.
func Render(field schema.FieldDefinition, value any) Control {
	return renderAt(field, value, field.Name)
}

// RenderForm builds the controls of a whole entry form. A nil data map
// renders a blank entry seeded with field defaults.
func RenderForm(def schema.ContentTypeDefinition, data map[string]any) []Control {
	if data == nil {
		data = schema.InitialData(def.Fields)
	}
	return renderFields(def.Fields, data, "")
}

func renderFields(fields []schema.FieldDefinition, data map[string]any, prefix string) []Control {
	controls := make([]Control, 0, len(fields))
	for _, field := range fields {
		controls = append(controls, renderAt(field, data[field.Name], joinPath(prefix, field.Name)))
	}
	return controls
}

func renderAt(field schema.FieldDefinition, raw any, path string) Control {
	control := Control{
		Name:        field.Name,
		Path:        path,
		Label:       field.Label,
		Widget:      WidgetFor(field.Type),
		Required:    field.Required,
		Placeholder: field.Placeholder,
		Help:        field.Help,
		Options:     field.Options,
	}

	decoded, err := schema.Decode(field, raw)
	if err != nil {
		control.Value = raw
		control.Invalid = err.Error()
		return control
	}

	switch field.Type {
	case schema.TypeArray:
		rows := toEditor(field, decoded)
		control.Rows = make([][]Control, 0, rows.Len())
		for i, row := range rows.Items() {
			plain, _ := row.Any().(map[string]any)
			control.Rows = append(control.Rows, renderFields(field.ArrayFields, plain, fmt.Sprintf("%s[%d]", path, i)))
		}
		control.Template = renderFields(field.ArrayFields, schema.InitialData(field.ArrayFields), path+"[]")

	case schema.TypeGroup:
		plain, _ := decoded.Any().(map[string]any)
		if plain == nil {
			plain = map[string]any{}
		}
		control.Children = renderFields(field.GroupFields, plain, path)

	default:
		control.Value = decoded.Any()
	}

	return control
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
