package admin

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

type PaymentsView struct {
	Base         string
	Stats        models.PaymentStats
	Transactions []models.Transaction
	Query        string
	Pagination   models.Pagination
	Flash        ui.Flash
}

func party(p *models.Party) string {
	if p == nil {
		return "-"
	}
	return orDash(p.Name)
}

func Payments(v PaymentsView) templ.Component {
	rows := make([][]templ.Component, 0, len(v.Transactions))
	for _, tx := range v.Transactions {
		rows = append(rows, []templ.Component{
			ui.Span("font-mono text-xs text-gray-500", tx.ID),
			ui.Text(party(tx.Student)),
			ui.Text(party(tx.Teacher)),
			ui.Text(ui.Money(tx.Amount)),
			ui.Badge(tx.Status.Label(), ui.PaymentTone(tx.Status)),
			ui.Text(orDash(tx.Provider)),
			ui.Text(formatTime(tx.CreatedAt)),
		})
	}

	page := func(n int) string {
		q := url.Values{"page": {strconv.Itoa(n)}}
		if v.Query != "" {
			q.Set("q", v.Query)
		}
		return withQuery(v.Base+"/payment", q)
	}

	return ui.Group(
		header("Payments", "To'lovlar va tranzaksiyalar"),
		v.Flash.Banner(),
		ui.Div("mb-6 grid gap-4 sm:grid-cols-2 lg:grid-cols-4",
			ui.StatCard("Revenue", ui.Money(v.Stats.TotalRevenue)),
			ui.StatCard("Completed", strconv.Itoa(v.Stats.CompletedCount)),
			ui.StatCard("Pending", ui.Money(v.Stats.PendingAmount)+" ("+strconv.Itoa(v.Stats.PendingCount)+")"),
			ui.StatCard("Cancelled", strconv.Itoa(v.Stats.CancelledCount)),
		),
		ui.El("form", ui.Attrs{
			"action":      v.Base + "/payment",
			"method":      "get",
			"hx-get":      v.Base + "/payment",
			"hx-target":   "#content",
			"hx-push-url": "true",
			"hx-trigger":  "keyup changed delay:300ms from:input[name=q]",
			"class":       "mb-4 max-w-md",
		},
			ui.Input(ui.InputProps{Name: "q", Label: "Qidiruv", Value: v.Query, Placeholder: "O'quvchi, o'qituvchi yoki holat"}),
		),
		ui.Table("transactions", []ui.Column{
			{Label: "ID"}, {Label: "O'quvchi"}, {Label: "O'qituvchi"}, {Label: "Summa"}, {Label: "Holat"}, {Label: "Provayder"}, {Label: "Sana"},
		}, rows, "Tranzaksiyalar topilmadi"),
		ui.Pager(v.Pagination, listing.PageNumbers(v.Pagination, 2), page),
	)
}
