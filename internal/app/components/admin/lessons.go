package admin

import (
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

// LessonsIndex lists teachers as cards; each card leads to the teacher's lessons.
func LessonsIndex(v TeachersView) templ.Component {
	cards := ui.Map(v.Teachers, func(_ int, t models.Teacher) templ.Component {
		return ui.El("a", ui.Attrs{
			"href":         v.Base + "/lesson/" + t.ID,
			"data-teacher": t.ID,
			"class":        "block rounded-lg border border-gray-200 bg-white p-5 shadow-sm hover:border-blue-500",
		},
			ui.Div("flex items-center gap-3",
				ui.Div("flex h-12 w-12 items-center justify-center rounded-full bg-blue-600 font-bold text-white", ui.Text(t.Initials())),
				ui.Div("",
					ui.P("font-semibold text-gray-900", t.FullName),
					ui.P("text-sm text-gray-500", orDash(string(t.Specification))),
				),
			),
			ui.Div("mt-4 flex items-center justify-between text-sm",
				ui.Span("text-gray-600", "★ "+rating(t.Rating)),
				ui.Span("font-medium text-gray-900", ui.Money(t.HourPrice)),
				activeBadge(t.IsActive),
			),
		)
	})

	return ui.Group(
		header("Lessons", "O'qituvchini tanlang"),
		v.Flash.Banner(),
		teacherFilterForm(v.Base+"/lesson", v.Filters),
		ui.If(len(v.Teachers) == 0, ui.P("py-8 text-center text-sm text-gray-500", "O'qituvchilar topilmadi")),
		ui.Div("grid gap-4 md:grid-cols-2 xl:grid-cols-3", cards),
		ui.Pager(v.Pagination, listing.PageNumbers(v.Pagination, 2), func(page int) string {
			return withQuery(v.Base+"/lesson", v.Filters.WithPage(page).Values())
		}),
	)
}

type TeacherLessonsView struct {
	Base       string
	TeacherID  string
	Lessons    []models.Lesson
	Filters    listing.LessonFilters
	Pagination models.Pagination
	Form       url.Values
	Flash      ui.Flash
}

func (v TeacherLessonsView) path() string {
	return v.Base + "/lesson/" + v.TeacherID
}

func (v TeacherLessonsView) listURL(f listing.LessonFilters) string {
	q := f.Values()
	q.Del("teacherId")
	return withQuery(v.path(), q)
}

// lessonAction posts to a lesson action and keeps the current filters so the
// re-rendered list looks the same.
func (v TeacherLessonsView) lessonAction(l models.Lesson, verb, label string, variant ui.Variant, confirm string) templ.Component {
	q := v.Filters.Values()
	q.Del("teacherId")
	return action(withQuery(v.path()+"/"+l.ID+"/"+verb, q), label, variant, confirm)
}

func (v TeacherLessonsView) bookForm(l models.Lesson) templ.Component {
	q := v.Filters.Values()
	q.Del("teacherId")
	href := withQuery(v.path()+"/"+l.ID+"/book", q)
	return ui.El("form", ui.Attrs{
		"action":    href,
		"method":    "post",
		"hx-post":   href,
		"hx-target": "#content",
		"class":     "inline-flex gap-1",
	},
		ui.El("input", ui.Attrs{"name": "studentId", "placeholder": "Student ID", "required": "", "class": "w-28 rounded-md border border-gray-300 px-2 text-xs"}),
		ui.Button(ui.ButtonProps{Type: ui.TypeSubmit, Size: ui.SizeSm}, ui.Text("Band qilish")),
	)
}

func statusTabs(v TeacherLessonsView) templ.Component {
	statuses := append([]models.LessonStatus{""}, models.LessonStatuses...)
	return ui.Div("mb-4 flex flex-wrap gap-2",
		ui.Map(statuses, func(_ int, s models.LessonStatus) templ.Component {
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
		}),
	)
}

func dateFilterForm(v TeacherLessonsView) templ.Component {
	date := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(time.DateOnly)
	}
	paid := ""
	if v.Filters.IsPaid != nil {
		paid = strconv.FormatBool(*v.Filters.IsPaid)
	}
	return ui.El("form", ui.Attrs{
		"id":          "lesson-filters",
		"action":      v.path(),
		"method":      "get",
		"hx-get":      v.path(),
		"hx-target":   "#content",
		"hx-push-url": "true",
		"hx-trigger":  "change",
		"class":       "mb-4 grid gap-3 rounded-lg border border-gray-200 bg-white p-4 md:grid-cols-3",
	},
		ui.Input(ui.InputProps{Name: "dateFrom", Label: "Dan", Type: "date", Value: date(v.Filters.DateFrom)}),
		ui.Input(ui.InputProps{Name: "dateTo", Label: "Gacha", Type: "date", Value: date(v.Filters.DateTo)}),
		ui.Select("isPaid", "isPaid", "To'lov", paid, []ui.Option{
			{Value: "", Label: "Barchasi"},
			{Value: "true", Label: "To'langan"},
			{Value: "false", Label: "To'lanmagan"},
		}, nil),
		ui.El("input", ui.Attrs{"type": "hidden", "name": "status", "value": string(v.Filters.Status)}),
		ui.El("input", ui.Attrs{"type": "hidden", "name": "sortBy", "value": v.Filters.SortBy}),
		ui.El("input", ui.Attrs{"type": "hidden", "name": "sortOrder", "value": string(v.Filters.SortOrder)}),
	)
}

func studentName(l models.Lesson) string {
	if l.Student == nil {
		return "-"
	}
	return l.Student.FullName()
}

func TeacherLessons(v TeacherLessonsView) templ.Component {
	column := func(label, field string) ui.Column {
		return ui.Column{Label: label, SortHref: v.listURL(v.Filters.Toggle(field)), Active: v.Filters.SortBy == field}
	}
	columns := []ui.Column{
		{Label: "Dars"},
		column("Vaqt", "startTime"),
		{Label: "O'quvchi"},
		{Label: "Holat"},
		column("Narx", "price"),
		{Label: "To'lov"},
		{Label: ""},
	}

	rows := make([][]templ.Component, 0, len(v.Lessons))
	for _, l := range v.Lessons {
		paid := ui.Badge("Yo'q", ui.ToneWarning)
		if l.IsPaid {
			paid = ui.Badge("Ha", ui.ToneSuccess)
		}
		var actions []templ.Component
		switch l.Status {
		case models.LessonAvailable:
			actions = append(actions, v.bookForm(l))
		case models.LessonBooked:
			actions = append(actions,
				v.lessonAction(l, "complete", "Yakunlash", ui.VariantOutline, ""),
				v.lessonAction(l, "cancel", "Bekor qilish", ui.VariantOutline, "Dars bekor qilinsinmi?"),
			)
		}
		actions = append(actions, v.lessonAction(l, "delete", "O'chirish", ui.VariantDestructive, "Dars o'chirilsinmi?"))

		rows = append(rows, []templ.Component{
			ui.Link(v.path()+"/"+l.ID, "font-medium text-blue-600 hover:underline", ui.Text(l.Name)),
			ui.Text(formatTime(l.StartTime)),
			ui.Text(studentName(l)),
			ui.Badge(l.Status.Label(), ui.LessonTone(l.Status)),
			ui.Text(ui.Money(l.Price)),
			paid,
			ui.Div("flex justify-end gap-2", actions...),
		})
	}

	return ui.Group(
		header("Darslar", "",
			ui.Button(ui.ButtonProps{Href: v.Base + "/lesson", Variant: ui.VariantGhost}, ui.Text("‹ O'qituvchilar")),
			ui.Button(ui.ButtonProps{Href: v.Base + "/teacher/" + v.TeacherID, Variant: ui.VariantOutline}, ui.Text("Profil")),
		),
		v.Flash.Banner(),
		statusTabs(v),
		dateFilterForm(v),
		ui.Table("lessons", columns, rows, "Darslar topilmadi"),
		ui.Pager(v.Pagination, listing.PageNumbers(v.Pagination, 2), func(page int) string {
			return v.listURL(v.Filters.WithPage(page))
		}),
		ui.Div("mt-8", ui.Card("Yangi dars", LessonForm(v.path(), v.Form))),
	)
}

// LessonForm creates a lesson; the times use the browser's datetime-local format.
func LessonForm(action string, values url.Values) templ.Component {
	return lessonForm(action, values, "Yaratish")
}

func lessonForm(action string, values url.Values, submit string) templ.Component {
	return ui.Form(action, "#content",
		ui.Div("grid gap-4 md:grid-cols-2",
			ui.Input(ui.InputProps{ID: "lesson-name", Name: "name", Label: "Nomi", Value: values.Get("name"), Required: true}),
			ui.Input(ui.InputProps{ID: "lesson-price", Name: "price", Label: "Narx", Type: "number", Value: values.Get("price"), Attrs: ui.Attrs{"min": "0"}}),
			ui.Input(ui.InputProps{ID: "lesson-start", Name: "startTime", Label: "Boshlanish", Type: "datetime-local", Value: values.Get("startTime"), Required: true}),
			ui.Input(ui.InputProps{ID: "lesson-end", Name: "endTime", Label: "Tugash", Type: "datetime-local", Value: values.Get("endTime"), Required: true}),
			ui.Input(ui.InputProps{ID: "lesson-meet", Name: "googleMeetUrl", Label: "Google Meet", Type: "url", Value: values.Get("googleMeetUrl")}),
		),
		ui.Button(ui.ButtonProps{Type: ui.TypeSubmit}, ui.Text(submit)),
	)
}

// LessonValues fills the lesson form from an existing lesson.
func LessonValues(l models.Lesson) url.Values {
	v := url.Values{}
	v.Set("name", l.Name)
	if l.Price > 0 {
		v.Set("price", strconv.FormatFloat(l.Price, 'f', -1, 64))
	}
	if !l.StartTime.IsZero() {
		v.Set("startTime", l.StartTime.Local().Format(models.DateTimeLocal))
	}
	if !l.EndTime.IsZero() {
		v.Set("endTime", l.EndTime.Local().Format(models.DateTimeLocal))
	}
	v.Set("googleMeetUrl", l.GoogleMeetURL)
	return v
}

// LessonEdit shows one lesson of a teacher with its edit form.
func LessonEdit(base, teacherID string, l models.Lesson, values url.Values, flash ui.Flash) templ.Component {
	back := base + "/lesson/" + teacherID
	return ui.Group(
		header(l.Name, formatTime(l.StartTime),
			ui.Button(ui.ButtonProps{Href: back, Variant: ui.VariantGhost}, ui.Text("‹ Darslar")),
		),
		flash.Banner(),
		ui.Div("grid gap-6 lg:grid-cols-2",
			ui.Card("Dars",
				ui.El("dl", ui.Attrs{"class": "grid grid-cols-2 gap-2 text-sm"},
					term("Holat", l.Status.Label()),
					term("O'quvchi", studentName(l)),
					term("Narx", ui.Money(l.Price)),
					term("Band qilingan", timePtr(l.BookedAt)),
					term("Yakunlangan", timePtr(l.CompletedAt)),
				),
			),
			ui.Card("Tahrirlash", lessonForm(back+"/"+l.ID, values, "Saqlash")),
		),
	)
}

func timePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}
