package admin

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

type TeachersView struct {
	Base       string
	Teachers   []models.Teacher
	Filters    listing.TeacherFilters
	Pagination models.Pagination
	Flash      ui.Flash
}

func (v TeachersView) listURL(f listing.TeacherFilters) string {
	return withQuery(v.Base+"/teacher", f.Values())
}

func (v TeachersView) column(label, field string) ui.Column {
	return ui.Column{Label: label, SortHref: v.listURL(v.Filters.Toggle(field)), Active: v.Filters.SortBy == field}
}

// teacherFilterForm reloads the list on every change. Sort and page size
// survive as hidden fields; any change returns to the first page.
func teacherFilterForm(action string, f listing.TeacherFilters) templ.Component {
	active := ""
	if f.IsActive != nil {
		active = strconv.FormatBool(*f.IsActive)
	}
	minRating := ""
	if f.MinRating != nil {
		minRating = strconv.FormatFloat(*f.MinRating, 'f', -1, 64)
	}
	return ui.El("form", ui.Attrs{
		"id":          "teacher-filters",
		"action":      action,
		"method":      "get",
		"hx-get":      action,
		"hx-target":   "#content",
		"hx-push-url": "true",
		"hx-trigger":  "change, keyup changed delay:300ms from:input[name=search]",
		"class":       "mb-4 grid gap-3 rounded-lg border border-gray-200 bg-white p-4 md:grid-cols-5",
	},
		ui.Input(ui.InputProps{Name: "search", Label: "Qidiruv", Value: f.Search, Placeholder: "Ism, email yoki telefon"}),
		ui.Select("specification", "specification", "Yo'nalish", string(f.Specification), specificationOptions(true), nil),
		ui.Select("level", "level", "Daraja", f.Level, levelOptions, nil),
		ui.Input(ui.InputProps{Name: "minRating", Label: "Min reyting", Type: "number", Value: minRating, Attrs: ui.Attrs{"min": "0", "max": "5", "step": "0.5"}}),
		ui.Select("isActive", "isActive", "Holat", active, []ui.Option{
			{Value: "", Label: "Barchasi"},
			{Value: "true", Label: "Faol"},
			{Value: "false", Label: "Nofaol"},
		}, nil),
		ui.El("input", ui.Attrs{"type": "hidden", "name": "sortBy", "value": f.SortBy}),
		ui.El("input", ui.Attrs{"type": "hidden", "name": "sortOrder", "value": string(f.SortOrder)}),
		ui.El("input", ui.Attrs{"type": "hidden", "name": "limit", "value": strconv.Itoa(f.Limit)}),
	)
}

func activeBadge(active bool) templ.Component {
	if active {
		return ui.Badge("Faol", ui.ToneSuccess)
	}
	return ui.Badge("Nofaol", ui.ToneNeutral)
}

func Teachers(v TeachersView) templ.Component {
	columns := []ui.Column{
		v.column("Ism", "fullName"),
		{Label: "Email"},
		{Label: "Yo'nalish"},
		v.column("Reyting", "rating"),
		v.column("Narx", "hourPrice"),
		{Label: "Holat"},
		{Label: ""},
	}
	rows := make([][]templ.Component, 0, len(v.Teachers))
	for _, t := range v.Teachers {
		detail := v.Base + "/teacher/" + t.ID
		rows = append(rows, []templ.Component{
			ui.Link(detail, "font-medium text-blue-600 hover:underline", ui.Text(t.FullName)),
			ui.Text(t.Email),
			ui.Text(orDash(string(t.Specification))),
			ui.Text(rating(t.Rating)),
			ui.Text(ui.Money(t.HourPrice)),
			activeBadge(t.IsActive),
			ui.Div("flex justify-end gap-2",
				action(detail+"/status?isActive="+strconv.FormatBool(!t.IsActive), statusLabel(t.IsActive), ui.VariantOutline, ""),
				action(detail+"/delete", "O'chirish", ui.VariantDestructive, t.FullName+" o'chirilsinmi?"),
			),
		})
	}

	return ui.Group(
		header("Teachers", "O'qituvchilarni boshqarish"),
		v.Flash.Banner(),
		teacherFilterForm(v.Base+"/teacher", v.Filters),
		ui.Table("teachers", columns, rows, "O'qituvchilar topilmadi"),
		ui.Pager(v.Pagination, listing.PageNumbers(v.Pagination, 2), func(page int) string {
			return v.listURL(v.Filters.WithPage(page))
		}),
		ui.Div("mt-8", ui.Card("Yangi o'qituvchi", teacherForm(v.Base+"/teacher", models.Teacher{}, true))),
	)
}

func statusLabel(active bool) string {
	if active {
		return "O'chirib qo'yish"
	}
	return "Faollashtirish"
}

func teacherForm(action string, t models.Teacher, create bool) templ.Component {
	price := ""
	if t.HourPrice > 0 {
		price = strconv.FormatFloat(t.HourPrice, 'f', -1, 64)
	}
	return ui.Form(action, "#content",
		ui.Div("grid gap-4 md:grid-cols-2",
			ui.Input(ui.InputProps{ID: "teacher-fullName", Name: "fullName", Label: "To'liq ism", Value: t.FullName, Required: create}),
			ui.Input(ui.InputProps{ID: "teacher-email", Name: "email", Label: "Email", Type: "email", Value: t.Email, Required: create}),
			ui.Input(ui.InputProps{ID: "teacher-phone", Name: "phoneNumber", Label: "Telefon", Type: "tel", Value: t.PhoneNumber}),
			ui.If(create, ui.Input(ui.InputProps{ID: "teacher-password", Name: "password", Label: "Parol", Type: "password", Required: true})),
			ui.Select("teacher-specification", "specification", "Yo'nalish", string(t.Specification), specificationOptions(false), nil),
			ui.Select("teacher-level", "level", "Daraja", t.Level, levelOptions[1:], nil),
			ui.Input(ui.InputProps{ID: "teacher-hourPrice", Name: "hourPrice", Label: "Soatlik narx", Type: "number", Value: price, Attrs: ui.Attrs{"min": "0"}}),
			ui.Input(ui.InputProps{ID: "teacher-portfolio", Name: "portfolioLink", Label: "Portfolio", Type: "url", Value: t.PortfolioLink}),
		),
		ui.Textarea("teacher-description", "description", "Tavsif", t.Description),
		ui.Button(ui.ButtonProps{Type: ui.TypeSubmit}, ui.Text("Saqlash")),
	)
}

// TeacherDetail shows one teacher with stats, recent lessons and the edit form.
func TeacherDetail(base string, d models.TeacherDetails, flash ui.Flash) templ.Component {
	t := d.Teacher
	self := base + "/teacher/" + t.ID

	lessonRows := make([][]templ.Component, 0, len(d.Lessons))
	for _, l := range d.Lessons {
		lessonRows = append(lessonRows, []templ.Component{
			ui.Text(l.Name),
			ui.Text(formatTime(l.StartTime)),
			ui.Badge(l.Status.Label(), ui.LessonTone(l.Status)),
			ui.Text(ui.Money(l.Price)),
		})
	}

	return ui.Group(
		header(t.FullName, t.Email,
			ui.Button(ui.ButtonProps{Href: base + "/lesson/" + t.ID, Variant: ui.VariantOutline}, ui.Text("Darslar")),
			ui.If(!t.IsActive, action(self+"/activate", "Tasdiqlash", ui.VariantDefault, "")),
		),
		flash.Banner(),
		ui.Div("grid gap-4 sm:grid-cols-2 lg:grid-cols-5",
			ui.StatCard("Total lessons", strconv.Itoa(d.Stats.TotalLessons)),
			ui.StatCard("Available", strconv.Itoa(d.Stats.AvailableLessons)),
			ui.StatCard("Booked", strconv.Itoa(d.Stats.BookedLessons)),
			ui.StatCard("Completed", strconv.Itoa(d.Stats.CompletedLessons)),
			ui.StatCard("Earnings", ui.Money(d.Stats.TotalEarnings)),
		),
		ui.Div("mt-6 grid gap-6 lg:grid-cols-2",
			ui.Card("Profil",
				ui.El("dl", ui.Attrs{"class": "grid grid-cols-2 gap-2 text-sm"},
					term("Telefon", orDash(t.PhoneNumber)),
					term("Yo'nalish", orDash(string(t.Specification))),
					term("Daraja", orDash(t.Level)),
					term("Reyting", rating(t.Rating)),
					term("Narx", ui.Money(t.HourPrice)),
					term("Kirish", orDash(string(t.AuthProvider))),
				),
				ui.Div("mt-3", activeBadge(t.IsActive)),
			),
			ui.Card("Tahrirlash", teacherForm(self, t, false)),
		),
		ui.Div("mt-6", ui.Card("So'nggi darslar",
			ui.Table("teacher-lessons", []ui.Column{{Label: "Dars"}, {Label: "Vaqt"}, {Label: "Holat"}, {Label: "Narx"}}, lessonRows, "Darslar yo'q"),
		)),
	)
}

func term(label, value string) templ.Component {
	return ui.Group(
		ui.El("dt", ui.Attrs{"class": "text-gray-500"}, ui.Text(label)),
		ui.El("dd", ui.Attrs{"class": "font-medium text-gray-900"}, ui.Text(value)),
	)
}
