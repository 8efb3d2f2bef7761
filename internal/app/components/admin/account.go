package admin

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

func Admins(base string, form models.CreateAdmin, flash ui.Flash) templ.Component {
	return ui.Group(
		header("Admins", "Yangi administrator qo'shish"),
		flash.Banner(),
		ui.Div("max-w-xl", ui.Card("Yangi admin",
			ui.Form(base+"/admins", "#content",
				ui.Input(ui.InputProps{ID: "admin-username", Name: "username", Label: "Username", Value: form.Username, Required: true}),
				ui.Input(ui.InputProps{ID: "admin-phone", Name: "phoneNumber", Label: "Telefon", Type: "tel", Value: form.PhoneNumber}),
				ui.Input(ui.InputProps{ID: "admin-password", Name: "password", Label: "Parol", Type: "password", Required: true, Attrs: ui.Attrs{"minlength": "6"}}),
				ui.Button(ui.ButtonProps{Type: ui.TypeSubmit}, ui.Text("Qo'shish")),
			),
		)),
	)
}

func Profile(base string, profile models.EditProfile, flash ui.Flash) templ.Component {
	return ui.Group(
		header("Profile", ""),
		flash.Banner(),
		ui.Div("grid gap-6 lg:grid-cols-2",
			ui.Card("Profil",
				ui.Form(base+"/profile", "#content",
					ui.Input(ui.InputProps{ID: "profile-username", Name: "username", Label: "Username", Value: profile.Username, Required: true}),
					ui.Input(ui.InputProps{ID: "profile-phone", Name: "phone", Label: "Telefon", Type: "tel", Value: profile.Phone}),
					ui.Button(ui.ButtonProps{Type: ui.TypeSubmit}, ui.Text("Saqlash")),
				),
			),
			ui.Card("Parolni o'zgartirish",
				ui.Form(base+"/profile/password", "#content",
					ui.Input(ui.InputProps{ID: "old-password", Name: "oldPassword", Label: "Joriy parol", Type: "password", Required: true}),
					ui.Input(ui.InputProps{ID: "new-password", Name: "newPassword", Label: "Yangi parol", Type: "password", Required: true, Attrs: ui.Attrs{"minlength": "6"}}),
					ui.Button(ui.ButtonProps{Type: ui.TypeSubmit}, ui.Text("O'zgartirish")),
				),
			),
		),
	)
}
