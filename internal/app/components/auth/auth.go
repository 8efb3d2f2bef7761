// Package auth renders the sign-in pages: role select, admin, teacher and
// the Telegram based student login.
package auth

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
)

// TelegramBotURL is where students open the portal as a Telegram web app.
const TelegramBotURL = "https://t.me/hm_hy_new_bot"

func panel(title, subtitle string, children ...templ.Component) templ.Component {
	return ui.Div("mx-auto mt-16 w-full max-w-md",
		ui.El("section", ui.Attrs{"class": "rounded-xl border border-gray-200 bg-white p-8 shadow-sm"},
			ui.H(1, "text-2xl font-bold text-gray-900", title),
			ui.If(subtitle != "", ui.P("mt-1 text-sm text-gray-500", subtitle)),
			ui.Div("mt-6 space-y-4", children...),
		),
	)
}

func submit(label string) templ.Component {
	return ui.Button(ui.ButtonProps{Type: ui.TypeSubmit, Class: "w-full"}, ui.Text(label))
}

func roleCard(href, title, description string) templ.Component {
	return ui.El("a", ui.Attrs{
		"href":      href,
		"data-role": title,
		"class":     "block rounded-xl border border-gray-200 bg-white p-6 shadow-sm transition hover:border-blue-500 hover:shadow-md",
	},
		ui.H(2, "text-lg font-semibold text-gray-900", title),
		ui.P("mt-1 text-sm text-gray-500", description),
	)
}

// RoleSelect is the landing page of signed-out visitors.
func RoleSelect(flash ui.Flash) templ.Component {
	return ui.Div("mx-auto mt-16 max-w-4xl",
		flash.Banner(),
		ui.H(1, "text-center text-3xl font-bold text-gray-900", "HMHY"),
		ui.P("mt-2 text-center text-gray-500", "Kim sifatida kirmoqchisiz?"),
		ui.Div("mt-10 grid gap-6 md:grid-cols-3",
			roleCard("/admin/login", "Admin", "Platformani boshqarish"),
			roleCard("/teacher/login", "O'qituvchi", "Darslar va profil"),
			roleCard("/telegram", "O'quvchi", "Telegram orqali kirish"),
		),
	)
}

func AdminLogin(username string, flash ui.Flash) templ.Component {
	return panel("Admin", "Boshqaruv paneliga kirish",
		flash.Banner(),
		ui.Form("/admin/login", "#content",
			ui.Input(ui.InputProps{Name: "username", Label: "Username", Value: username, Required: true, Attrs: ui.Attrs{"autocomplete": "username"}}),
			ui.Input(ui.InputProps{Name: "password", Label: "Parol", Type: "password", Required: true, Attrs: ui.Attrs{"autocomplete": "current-password"}}),
			submit("Kirish"),
		),
	)
}

func TeacherLogin(email string, flash ui.Flash) templ.Component {
	return panel("O'qituvchi", "Email va parol bilan kiring",
		flash.Banner(),
		ui.Form("/teacher/login", "#content",
			ui.Input(ui.InputProps{Name: "email", Label: "Email", Type: "email", Value: email, Required: true}),
			ui.Input(ui.InputProps{Name: "password", Label: "Parol", Type: "password", Required: true}),
			submit("Kirish"),
		),
		ui.Div("relative py-2 text-center text-xs uppercase text-gray-400", ui.Text("yoki")),
		ui.Button(ui.ButtonProps{
			ID:      "google-login",
			Href:    "/teacher/google",
			Variant: ui.VariantOutline,
			Class:   "w-full",
			Attrs:   ui.Attrs{"hx-boost": "false"},
		}, ui.Text("Google orqali kirish")),
	)
}

// OTPForm carries the fields of the two step Google sign-up confirmation.
type OTPForm struct {
	Email       string
	PhoneNumber string
	Sent        bool
}

func OTPVerify(f OTPForm, flash ui.Flash) templ.Component {
	if !f.Sent {
		return panel("Tasdiqlash", "Telefon raqam va parolni kiriting, emailga kod yuboriladi",
			flash.Banner(),
			ui.Form("/teacher/otp-verify/send", "#content",
				ui.Input(ui.InputProps{Name: "email", Label: "Email", Type: "email", Value: f.Email, Required: true, Attrs: ui.Attrs{"readonly": ""}}),
				ui.Input(ui.InputProps{Name: "phoneNumber", Label: "Telefon", Type: "tel", Value: f.PhoneNumber, Placeholder: "+998901234567", Required: true}),
				ui.Input(ui.InputProps{Name: "password", Label: "Parol", Type: "password", Required: true}),
				submit("Kod yuborish"),
			),
		)
	}
	return panel("Kodni kiriting", f.Email+" manziliga yuborilgan 6 xonali kod",
		flash.Banner(),
		ui.Form("/teacher/otp-verify/verify", "#content",
			ui.El("input", ui.Attrs{"type": "hidden", "name": "email", "value": f.Email}),
			ui.Input(ui.InputProps{
				Name:     "otp",
				Label:    "Kod",
				Required: true,
				Attrs:    ui.Attrs{"inputmode": "numeric", "pattern": "[0-9]{6}", "maxlength": "6", "autocomplete": "one-time-code"},
			}),
			submit("Tasdiqlash"),
		),
	)
}

// Telegram explains how students reach the portal.
func Telegram(botURL string) templ.Component {
	return panel("O'quvchi", "Portal Telegram bot ichida ochiladi",
		ui.P("text-sm text-gray-600", "Botni oching va \"Portal\" tugmasini bosing."),
		ui.Button(ui.ButtonProps{ID: "telegram-bot", Href: botURL, Class: "w-full", Attrs: ui.Attrs{"target": "_blank", "rel": "noopener"}},
			ui.Text("Telegram botni ochish")),
	)
}

// StudentLogin submits the Telegram web app init data as soon as the page loads.
// After a failure it only shows the error, so the login is not retried in a loop.
func StudentLogin(flash ui.Flash) templ.Component {
	if flash.Message != "" {
		return panel("O'quvchi", "Kirish amalga oshmadi",
			flash.Banner(),
			ui.Button(ui.ButtonProps{Href: TelegramBotURL, Variant: ui.VariantOutline, Class: "w-full"},
				ui.Text("Telegram botni ochish")),
		)
	}
	return panel("O'quvchi", "Telegram orqali kirilmoqda",
		ui.El("script", ui.Attrs{"src": "https://telegram.org/js/telegram-web-app.js"}),
		ui.El("form", ui.Attrs{
			"id":         "telegram-login",
			"hx-post":    "/student/login",
			"hx-trigger": "load",
			"hx-target":  "#content",
			"hx-vals":    `js:{initData: (window.Telegram && window.Telegram.WebApp && window.Telegram.WebApp.initData) || ""}`,
		},
			ui.P("text-sm text-gray-500", "Iltimos, kuting..."),
		),
	)
}
