package admin

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

// Student list status filter values.
const (
	StudentsAll     = ""
	StudentsActive  = "active"
	StudentsBlocked = "blocked"
)

type StudentsView struct {
	Base       string
	Students   []models.Student
	Stats      models.StudentStats
	Query      string
	Status     string
	Pagination models.Pagination
	Flash      ui.Flash
}

func (v StudentsView) listURL(page int) string {
	q := url.Values{}
	if v.Query != "" {
		q.Set("q", v.Query)
	}
	if v.Status != "" {
		q.Set("status", v.Status)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return withQuery(v.Base+"/student", q)
}

func blockedBadge(s models.Student) templ.Component {
	if s.IsBlocked {
		return ui.Badge("Bloklangan", ui.ToneDanger)
	}
	return ui.Badge("Faol", ui.ToneSuccess)
}

func Students(v StudentsView) templ.Component {
	rows := make([][]templ.Component, 0, len(v.Students))
	for _, s := range v.Students {
		detail := v.Base + "/student/" + s.ID
		blockLabel := "Bloklash"
		if s.IsBlocked {
			blockLabel = "Blokdan chiqarish"
		}
		tg := "-"
		if s.TgUsername != "" {
			tg = "@" + s.TgUsername
		}
		rows = append(rows, []templ.Component{
			ui.Span("font-mono text-xs text-gray-500", s.ShortID()),
			ui.Link(detail, "font-medium text-blue-600 hover:underline", ui.Text(s.FullName())),
			ui.Text(orDash(s.PhoneNumber)),
			ui.Text(tg),
			blockedBadge(s),
			ui.Text(formatTime(s.CreatedAt)),
			ui.Div("flex justify-end gap-2",
				action(detail+"/block", blockLabel, ui.VariantOutline, blockLabel+"?"),
				action(detail+"/delete", "O'chirish", ui.VariantDestructive, s.FullName()+" o'chirilsinmi?"),
			),
		})
	}

	return ui.Group(
		header("Students", "O'quvchilarni boshqarish"),
		v.Flash.Banner(),
		ui.Div("mb-6 grid gap-4 sm:grid-cols-3",
			ui.StatCard("Total", strconv.Itoa(v.Stats.TotalStudents)),
			ui.StatCard("Active", strconv.Itoa(v.Stats.ActiveStudents)),
			ui.StatCard("Blocked", strconv.Itoa(v.Stats.BlockedStudents)),
		),
		ui.El("form", ui.Attrs{
			"id":          "student-filters",
			"action":      v.Base + "/student",
			"method":      "get",
			"hx-get":      v.Base + "/student",
			"hx-target":   "#content",
			"hx-push-url": "true",
			"hx-trigger":  "change, keyup changed delay:300ms from:input[name=q]",
			"class":       "mb-4 grid gap-3 md:grid-cols-3",
		},
			ui.Input(ui.InputProps{Name: "q", Label: "Qidiruv", Value: v.Query, Placeholder: "Ism, telefon yoki @username"}),
			ui.Select("status", "status", "Holat", v.Status, []ui.Option{
				{Value: StudentsAll, Label: "Barchasi"},
				{Value: StudentsActive, Label: "Faol"},
				{Value: StudentsBlocked, Label: "Bloklangan"},
			}, nil),
		),
		ui.Table("students", []ui.Column{
			{Label: "ID"}, {Label: "Ism"}, {Label: "Telefon"}, {Label: "Telegram"}, {Label: "Holat"}, {Label: "Ro'yxatdan o'tgan"}, {Label: ""},
		}, rows, "O'quvchilar topilmadi"),
		ui.Pager(v.Pagination, listing.PageNumbers(v.Pagination, 2), v.listURL),
	)
}

func StudentDetail(base string, s models.Student, flash ui.Flash) templ.Component {
	self := base + "/student/" + s.ID
	return ui.Group(
		header(s.FullName(), s.ID,
			ui.Button(ui.ButtonProps{Href: base + "/student", Variant: ui.VariantGhost}, ui.Text("‹ O'quvchilar")),
		),
		flash.Banner(),
		ui.Div("grid gap-6 lg:grid-cols-2",
			ui.Card("Ma'lumot",
				ui.El("dl", ui.Attrs{"class": "grid grid-cols-2 gap-2 text-sm"},
					term("Telefon", orDash(s.PhoneNumber)),
					term("Email", orDash(s.Email)),
					term("Telegram", orDash(s.TgUsername)),
					term("Til", orDash(s.LanguageCode)),
					term("Vaqt zonasi", orDash(s.Timezone)),
					term("Ro'yxatdan o'tgan", formatTime(s.CreatedAt)),
				),
				ui.Div("mt-3", blockedBadge(s)),
				ui.If(s.IsBlocked && s.BlockedReason != "", ui.P("mt-2 text-sm text-red-700", s.BlockedReason)),
			),
			ui.Card("Tahrirlash",
				ui.Form(self, "#content",
					ui.Div("grid gap-4 md:grid-cols-2",
						ui.Input(ui.InputProps{ID: "student-firstname", Name: "firstname", Label: "Ism", Value: s.FirstName}),
						ui.Input(ui.InputProps{ID: "student-lastname", Name: "lastname", Label: "Familiya", Value: s.LastName}),
						ui.Input(ui.InputProps{ID: "student-phone", Name: "phone", Label: "Telefon", Type: "tel", Value: s.PhoneNumber}),
						ui.Input(ui.InputProps{ID: "student-email", Name: "email", Label: "Email", Type: "email", Value: s.Email}),
						ui.Input(ui.InputProps{ID: "student-language", Name: "languageCode", Label: "Til", Value: s.LanguageCode}),
						ui.Input(ui.InputProps{ID: "student-timezone", Name: "timezone", Label: "Vaqt zonasi", Value: s.Timezone}),
					),
					ui.Textarea("student-bio", "bio", "Bio", s.Bio),
					ui.Button(ui.ButtonProps{Type: ui.TypeSubmit}, ui.Text("Saqlash")),
				),
			),
		),
		ui.If(len(s.Lessons) > 0, ui.Div("mt-6", ui.Card("Darslar",
			ui.Table("student-lessons", []ui.Column{{Label: "Dars"}, {Label: "Vaqt"}, {Label: "Holat"}}, lessonRows(s.Lessons), ""),
		))),
	)
}

func lessonRows(lessons []models.Lesson) [][]templ.Component {
	rows := make([][]templ.Component, 0, len(lessons))
	for _, l := range lessons {
		rows = append(rows, []templ.Component{
			ui.Text(l.Name),
			ui.Text(formatTime(l.StartTime)),
			ui.Badge(l.Status.Label(), ui.LessonTone(l.Status)),
		})
	}
	return rows
}
