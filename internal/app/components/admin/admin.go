// Package admin renders the admin and superadmin area. Every page takes the
// area's base path so the same views serve /app/admin and /app/superadmin.
package admin

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const dateTimeLayout = "02.01.2006 15:04"

func header(title, subtitle string, actions ...templ.Component) templ.Component {
	return ui.Div("mb-6 flex flex-wrap items-end justify-between gap-4",
		ui.Div("",
			ui.H(1, "text-2xl font-bold text-gray-900", title),
			ui.If(subtitle != "", ui.P("mt-1 text-sm text-gray-500", subtitle)),
		),
		ui.Div("flex gap-2", actions...),
	)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateTimeLayout)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// action is a small inline form posting to href and swapping the page content.
func action(href, label string, variant ui.Variant, confirm string) templ.Component {
	attrs := ui.Attrs{
		"action":    href,
		"method":    "post",
		"hx-post":   href,
		"hx-target": "#content",
		"class":     "inline",
	}
	if confirm != "" {
		attrs["hx-confirm"] = confirm
	}
	return ui.El("form", attrs,
		ui.Button(ui.ButtonProps{Type: ui.TypeSubmit, Variant: variant, Size: ui.SizeSm}, ui.Text(label)),
	)
}

func specificationOptions(withAll bool) []ui.Option {
	opts := make([]ui.Option, 0, len(models.TeacherSpecifications)+1)
	if withAll {
		opts = append(opts, ui.Option{Value: "", Label: "Barchasi"})
	}
	for _, s := range models.TeacherSpecifications {
		opts = append(opts, ui.Option{Value: string(s), Label: string(s)})
	}
	return opts
}

var levelOptions = []ui.Option{
	{Value: "", Label: "Barchasi"},
	{Value: "BEGINNER", Label: "Beginner"},
	{Value: "INTERMEDIATE", Label: "Intermediate"},
	{Value: "ADVANCED", Label: "Advanced"},
}

func rating(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}
