package admin

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

func Dashboard(stats models.DashboardStats, flash ui.Flash) templ.Component {
	return ui.Group(
		header("Dashboard", "Platforma ko'rsatkichlari"),
		flash.Banner(),
		ui.Div("grid gap-4 sm:grid-cols-2 lg:grid-cols-4",
			ui.StatCard("Students", strconv.Itoa(stats.TotalStudents)),
			ui.StatCard("Teachers", strconv.Itoa(stats.TotalTeachers)),
			ui.StatCard("Lessons", strconv.Itoa(stats.TotalLessons)),
			ui.StatCard("Revenue", ui.Money(stats.TotalRevenue)),
		),
		ui.Div("mt-6",
			ui.Card("Lessons by status",
				ui.If(len(stats.Charts.LessonsByStatus) == 0, ui.P("text-sm text-gray-500", "Ma'lumot yo'q")),
				ui.El("ul", ui.Attrs{"class": "divide-y divide-gray-100", "id": "lessons-by-status"},
					ui.Map(stats.Charts.LessonsByStatus, func(_ int, sc models.StatusCount) templ.Component {
						return ui.El("li", ui.Attrs{"class": "flex items-center justify-between py-2"},
							ui.Badge(sc.Status.Label(), ui.LessonTone(sc.Status)),
							ui.Span("text-sm font-semibold text-gray-900", strconv.Itoa(sc.Count)),
						)
					}),
				),
			),
		),
	)
}
