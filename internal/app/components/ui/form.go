package ui

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type InputProps struct {
	ID          string
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Class       string
	Attrs       Attrs
}

const inputClass = "block w-full rounded-md border border-gray-300 px-3 py-2 text-sm shadow-sm focus:border-blue-500 focus:outline-none focus:ring-1 focus:ring-blue-500"

func Input(p InputProps) templ.Component {
	if p.Type == "" {
		p.Type = "text"
	}
	if p.ID == "" {
		p.ID = p.Name
	}
	attrs := Attrs{
		"id":    p.ID,
		"name":  p.Name,
		"type":  p.Type,
		"class": twmerge.Merge(inputClass, p.Class),
	}.With(p.Attrs)
	if p.Value != "" {
		attrs["value"] = p.Value
	}
	if p.Placeholder != "" {
		attrs["placeholder"] = p.Placeholder
	}
	if p.Required {
		attrs["required"] = ""
	}
	return field(p.ID, p.Label, El("input", attrs))
}

type Option struct {
	Value string
	Label string
}

func Select(id, name, label, selected string, options []Option, attrs Attrs) templ.Component {
	opts := Map(options, func(_ int, o Option) templ.Component {
		a := Attrs{"value": o.Value}
		if o.Value == selected {
			a["selected"] = ""
		}
		return El("option", a, Text(o.Label))
	})
	return field(id, label, El("select", Attrs{"id": id, "name": name, "class": inputClass}.With(attrs), opts))
}

func Textarea(id, name, label, value string) templ.Component {
	return field(id, label, El("textarea", Attrs{"id": id, "name": name, "rows": "4", "class": inputClass}, Text(value)))
}

func field(id, label string, control templ.Component) templ.Component {
	if label == "" {
		return control
	}
	return Div("space-y-1",
		El("label", Attrs{"for": id, "class": "block text-sm font-medium text-gray-700"}, Text(label)),
		control,
	)
}

// Form posts through HTMX and swaps the response into target.
func Form(action, target string, children ...templ.Component) templ.Component {
	return El("form", Attrs{
		"action":    action,
		"method":    "post",
		"hx-post":   action,
		"hx-target": target,
		"class":     "space-y-4",
	}, children...)
}
