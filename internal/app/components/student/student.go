// Package student renders the student area. Students reach it from the
// Telegram web app, so the pages stay small.
package student

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
)

func Dashboard(name string, flash ui.Flash) templ.Component {
	if name == "" {
		name = "O'quvchi"
	}
	return ui.Group(
		flash.Banner(),
		ui.Card("",
			ui.H(1, "text-2xl font-bold text-gray-900", "Salom, "+name+"!"),
			ui.P("mt-2 text-gray-600", "Darslarni Telegram bot orqali band qilishingiz mumkin."),
		),
	)
}

func Profile(name, username string) templ.Component {
	tg := "-"
	if username != "" {
		tg = "@" + username
	}
	return ui.Card("Profil",
		ui.El("dl", ui.Attrs{"class": "grid grid-cols-2 gap-2 text-sm"},
			ui.El("dt", ui.Attrs{"class": "text-gray-500"}, ui.Text("Ism")),
			ui.El("dd", ui.Attrs{"class": "font-medium text-gray-900", "id": "student-name"}, ui.Text(name)),
			ui.El("dt", ui.Attrs{"class": "text-gray-500"}, ui.Text("Telegram")),
			ui.El("dd", ui.Attrs{"class": "font-medium text-gray-900", "id": "student-username"}, ui.Text(tg)),
		),
	)
}
