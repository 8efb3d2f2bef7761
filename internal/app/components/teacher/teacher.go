// Package teacher renders the teacher area: dashboard, lessons and profile.
package teacher

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/admin"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const (
	lessonsPath = "/teacher/lesson"
	timeLayout  = "02.01.2006 15:04"
)

// LessonCounts summarises the teacher's lessons by status for the dashboard.
type LessonCounts struct {
	Total     int
	Available int
	Booked    int
	Completed int
}

func CountLessons(lessons []models.Lesson) LessonCounts {
	c := LessonCounts{Total: len(lessons)}
	for _, l := range lessons {
		switch l.Status {
		case models.LessonAvailable:
			c.Available++
		case models.LessonBooked:
			c.Booked++
		case models.LessonCompleted:
			c.Completed++
		}
	}
	return c
}

func avatar(t models.Teacher) templ.Component {
	if t.ImageURL != "" {
		return ui.El("img", ui.Attrs{"src": t.ImageURL, "alt": t.FullName, "class": "h-20 w-20 rounded-full object-cover"})
	}
	initial := t.Initials()
	if initial == "" {
		initial = "T"
	}
	return ui.Div("flex h-20 w-20 items-center justify-center rounded-full bg-blue-600 text-2xl font-bold text-white", ui.Text(initial))
}

func Dashboard(t models.Teacher, counts LessonCounts, upcoming []models.Lesson, flash ui.Flash) templ.Component {
	name := t.FullName
	if name == "" {
		name = "O'qituvchi"
	}
	ratingText := "-"
	if t.Rating > 0 {
		ratingText = fmt.Sprintf("%.1f ★", t.Rating)
	}
	return ui.Group(
		flash.Banner(),
		ui.El("section", ui.Attrs{"class": "mb-8 flex items-center gap-6 rounded-lg bg-white p-6 shadow-sm"},
			avatar(t),
			ui.Div("",
				ui.H(1, "text-3xl font-bold text-gray-900", "Xush kelibsiz, "+name+"!"),
				ui.P("mt-1 text-gray-600", t.Email),
				ui.If(t.PhoneNumber != "", ui.P("text-gray-600", t.PhoneNumber)),
				ui.If(!t.IsActive, ui.Div("mt-2", ui.Badge("Admin tasdig'i kutilmoqda", ui.ToneWarning))),
			),
		),
		ui.Div("mb-8 grid gap-4 sm:grid-cols-2 lg:grid-cols-5",
			ui.StatCard("Rating", ratingText),
			ui.StatCard("Lessons", strconv.Itoa(counts.Total)),
			ui.StatCard("Available", strconv.Itoa(counts.Available)),
			ui.StatCard("Booked", strconv.Itoa(counts.Booked)),
			ui.StatCard("Completed", strconv.Itoa(counts.Completed)),
		),
		ui.Card("Yaqin darslar",
			ui.Table("upcoming-lessons", []ui.Column{{Label: "Dars"}, {Label: "Vaqt"}, {Label: "Holat"}},
				lessonRows(upcoming), "Yaqin darslar yo'q"),
			ui.Div("mt-4", ui.Button(ui.ButtonProps{Href: lessonsPath, Variant: ui.VariantOutline}, ui.Text("Barcha darslar"))),
		),
	)
}

func lessonRows(lessons []models.Lesson) [][]templ.Component {
	rows := make([][]templ.Component, 0, len(lessons))
	for _, l := range lessons {
		rows = append(rows, []templ.Component{
			ui.Text(l.Name),
			ui.Text(l.StartTime.Local().Format(timeLayout)),
			ui.Badge(l.Status.Label(), ui.LessonTone(l.Status)),
		})
	}
	return rows
}

type LessonsView struct {
	Lessons    []models.Lesson
	Query      string
	Filters    listing.LessonFilters
	Pagination models.Pagination
	Form       url.Values
	Flash      ui.Flash
}

func (v LessonsView) listURL(f listing.LessonFilters) string {
	q := f.Values()
	if v.Query != "" {
		q.Set("q", v.Query)
	}
	return lessonsPath + "?" + q.Encode()
}

func (v LessonsView) post(l models.Lesson, verb, label string, variant ui.Variant, confirm string) templ.Component {
	href := lessonsPath + "/" + l.ID + "/" + verb
	attrs := ui.Attrs{"action": href, "method": "post", "hx-post": href, "hx-target": "#content", "class": "inline"}
	if confirm != "" {
		attrs["hx-confirm"] = confirm
	}
	return ui.El("form", attrs, ui.Button(ui.ButtonProps{Type: ui.TypeSubmit, Variant: variant, Size: ui.SizeSm}, ui.Text(label)))
}

func (v LessonsView) cancelForm(l models.Lesson) templ.Component {
	href := lessonsPath + "/" + l.ID + "/cancel"
	return ui.El("form", ui.Attrs{
		"action":     href,
		"method":     "post",
		"hx-post":    href,
		"hx-target":  "#content",
		"hx-confirm": "Dars bekor qilinsinmi?",
		"class":      "inline-flex gap-1",
	},
		ui.El("input", ui.Attrs{"name": "reason", "placeholder": "Sabab", "class": "w-28 rounded-md border border-gray-300 px-2 text-xs"}),
		ui.Button(ui.ButtonProps{Type: ui.TypeSubmit, Variant: ui.VariantOutline, Size: ui.SizeSm}, ui.Text("Bekor qilish")),
	)
}

func Lessons(v LessonsView) templ.Component {
	statuses := append([]models.LessonStatus{""}, models.LessonStatuses...)
	tabs := ui.Map(statuses, func(_ int, s models.LessonStatus) templ.Component {
		f := v.Filters
		f.Status = s
		f.Page = 1
		variant := ui.VariantOutline
		if v.Filters.Status == s {
			variant = ui.VariantDefault
		}
		href := v.listURL(f)
		return ui.Button(ui.ButtonProps{
			Href:    href,
			Variant: variant,
			Size:    ui.SizeSm,
			Attrs:   ui.Attrs{"hx-get": href, "hx-target": "#content", "hx-push-url": "true", "data-status": string(s)},
		}, ui.Text(s.Label()))
	})

	rows := make([][]templ.Component, 0, len(v.Lessons))
	for _, l := range v.Lessons {
		student := "-"
		if l.Student != nil {
			student = l.Student.FullName()
		}
		var actions []templ.Component
		if l.Status == models.LessonBooked {
			actions = append(actions,
				v.post(l, "complete", "Yakunlash", ui.VariantOutline, ""),
				v.cancelForm(l),
			)
		}
		if l.Status == models.LessonAvailable {
			actions = append(actions, v.post(l, "delete", "O'chirish", ui.VariantDestructive, "Dars o'chirilsinmi?"))
		}
		meet := templ.Component(ui.Text("-"))
		if l.GoogleMeetURL != "" {
			meet = ui.El("a", ui.Attrs{"href": l.GoogleMeetURL, "target": "_blank", "rel": "noopener", "class": "text-blue-600 hover:underline"}, ui.Text("Meet"))
		}
		rows = append(rows, []templ.Component{
			ui.Text(l.Name),
			ui.Text(l.StartTime.Local().Format(timeLayout)),
			ui.Text(student),
			ui.Badge(l.Status.Label(), ui.LessonTone(l.Status)),
			ui.Text(ui.Money(l.Price)),
			meet,
			ui.Div("flex justify-end gap-2", actions...),
		})
	}

	return ui.Group(
		ui.H(1, "mb-6 text-2xl font-bold text-gray-900", "Darslarim"),
		v.Flash.Banner(),
		ui.Div("mb-4 flex flex-wrap gap-2", tabs),
		ui.El("form", ui.Attrs{
			"action":      lessonsPath,
			"method":      "get",
			"hx-get":      lessonsPath,
			"hx-target":   "#content",
			"hx-push-url": "true",
			"hx-trigger":  "keyup changed delay:300ms from:input[name=q]",
			"class":       "mb-4 max-w-md",
		},
			ui.Input(ui.InputProps{Name: "q", Label: "Qidiruv", Value: v.Query, Placeholder: "Dars yoki o'quvchi nomi"}),
			ui.El("input", ui.Attrs{"type": "hidden", "name": "status", "value": string(v.Filters.Status)}),
		),
		ui.Table("lessons", []ui.Column{
			{Label: "Dars"},
			{Label: "Vaqt", SortHref: v.listURL(v.Filters.Toggle("startTime")), Active: v.Filters.SortBy == "startTime"},
			{Label: "O'quvchi"},
			{Label: "Holat"},
			{Label: "Narx", SortHref: v.listURL(v.Filters.Toggle("price")), Active: v.Filters.SortBy == "price"},
			{Label: "Havola"},
			{Label: ""},
		}, rows, "Darslar topilmadi"),
		ui.Pager(v.Pagination, listing.PageNumbers(v.Pagination, 2), func(page int) string {
			return v.listURL(v.Filters.WithPage(page))
		}),
		ui.Div("mt-8", ui.Card("Yangi dars", admin.LessonForm(lessonsPath, v.Form))),
	)
}

func Profile(t models.Teacher, flash ui.Flash) templ.Component {
	price := ""
	if t.HourPrice > 0 {
		price = strconv.FormatFloat(t.HourPrice, 'f', -1, 64)
	}
	specs := []ui.Option{{Value: "", Label: "-"}}
	for _, s := range models.TeacherSpecifications {
		specs = append(specs, ui.Option{Value: string(s), Label: string(s)})
	}
	return ui.Group(
		ui.H(1, "mb-6 text-2xl font-bold text-gray-900", "Profil"),
		flash.Banner(),
		ui.Div("max-w-3xl", ui.Card(t.Email,
			ui.Form("/teacher/profile", "#content",
				ui.Div("grid gap-4 md:grid-cols-2",
					ui.Input(ui.InputProps{Name: "fullName", Label: "To'liq ism", Value: t.FullName, Required: true}),
					ui.Input(ui.InputProps{Name: "phoneNumber", Label: "Telefon", Type: "tel", Value: t.PhoneNumber, Required: true}),
					ui.Select("specification", "specification", "Yo'nalish", string(t.Specification), specs, nil),
					ui.Input(ui.InputProps{Name: "level", Label: "Daraja", Value: t.Level}),
					ui.Input(ui.InputProps{Name: "experience", Label: "Tajriba (yil)", Type: "number", Value: t.Experience, Attrs: ui.Attrs{"min": "0"}}),
					ui.Input(ui.InputProps{Name: "hourPrice", Label: "Soatlik narx", Type: "number", Value: price, Attrs: ui.Attrs{"min": "0"}}),
					ui.Input(ui.InputProps{Name: "portfolioLink", Label: "Portfolio", Type: "url", Value: t.PortfolioLink}),
					ui.Input(ui.InputProps{Name: "cardNumber", Label: "Karta raqami", Value: t.CardNumber}),
				),
				ui.Textarea("description", "description", "Tavsif", t.Description),
				ui.Button(ui.ButtonProps{Type: ui.TypeSubmit}, ui.Text("Saqlash")),
			),
		)),
	)
}
