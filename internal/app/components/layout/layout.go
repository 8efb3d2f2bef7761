package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
)

const doctype = "<!DOCTYPE html>"

// Page renders the full document: head, sidebar for signed-in users and the content slot.
func Page(data models.LayoutTempl) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, doctype); err != nil {
			return err
		}
		return ui.El("html", ui.Attrs{"lang": "uz"},
			head(data.Title),
			ui.El("body", ui.Attrs{"class": "min-h-screen bg-gray-50 font-sans antialiased", "hx-boost": "true"},
				shell(data),
			),
		).Render(ctx, w)
	})
}

func head(title string) templ.Component {
	return ui.El("head", nil,
		ui.El("meta", ui.Attrs{"charset": "utf-8"}),
		ui.El("meta", ui.Attrs{"name": "viewport", "content": "width=device-width, initial-scale=1"}),
		ui.El("title", nil, ui.Text(title)),
		ui.El("script", ui.Attrs{"src": "https://cdn.tailwindcss.com"}),
		ui.El("script", ui.Attrs{"src": "https://unpkg.com/htmx.org@2.0.4"}),
		ui.El("link", ui.Attrs{"rel": "stylesheet", "href": "/assets/static/app.css"}),
	)
}

func shell(data models.LayoutTempl) templ.Component {
	main := ui.El("main", ui.Attrs{"id": "content", "class": "flex-1 p-6 lg:p-8"}, data.Content)
	if data.User == nil {
		return main
	}
	return ui.Div("flex min-h-screen",
		sidebar(data),
		ui.Div("flex flex-1 flex-col",
			topbar(data.User),
			main,
		),
	)
}

func sidebar(data models.LayoutTempl) templ.Component {
	return ui.El("aside", ui.Attrs{"id": "sidebar", "class": "hidden w-64 shrink-0 border-r border-gray-200 bg-white lg:block"},
		ui.Div("px-6 py-5 text-xl font-bold text-blue-600", ui.Text("HMHY")),
		ui.El("nav", ui.Attrs{"class": "space-y-1 px-3"},
			ui.Map(data.Nav.Items, func(_ int, item models.NavItem) templ.Component {
				class := "flex items-center gap-3 rounded-md px-3 py-2 text-sm font-medium text-gray-600 hover:bg-gray-100"
				attrs := ui.Attrs{"href": item.URL, "data-icon": item.Icon}
				if item.Name == data.ActiveNav {
					class = "flex items-center gap-3 rounded-md bg-blue-50 px-3 py-2 text-sm font-medium text-blue-700"
					attrs["aria-current"] = "page"
				}
				attrs["class"] = class
				return ui.El("a", attrs, ui.Text(item.Name))
			}),
		),
	)
}

func topbar(user *models.User) templ.Component {
	return ui.El("header", ui.Attrs{"class": "flex items-center justify-between border-b border-gray-200 bg-white px-6 py-3"},
		ui.Div("text-sm text-gray-500", ui.Text(roleLabel(user.Role))),
		ui.Div("flex items-center gap-4",
			ui.Span("text-sm font-medium text-gray-900", user.Name),
			ui.El("form", ui.Attrs{"action": "/logout", "method": "post"},
				ui.Button(ui.ButtonProps{Type: ui.TypeSubmit, Variant: ui.VariantOutline, Size: ui.SizeSm}, ui.Text("Chiqish")),
			),
		),
	)
}

func roleLabel(r models.Role) string {
	switch r {
	case models.RoleSuperAdmin:
		return "Super admin"
	case models.RoleAdmin:
		return "Admin"
	case models.RoleTeacher:
		return "O'qituvchi"
	case models.RoleStudent:
		return "O'quvchi"
	}
	return ""
}
