package ui

import (
	"fmt"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
)

func (t Tone) classes() string {
	switch t {
	case ToneSuccess:
		return "bg-green-100 text-green-800 border-green-200"
	case ToneWarning:
		return "bg-yellow-100 text-yellow-800 border-yellow-200"
	case ToneDanger:
		return "bg-red-100 text-red-800 border-red-200"
	case ToneInfo:
		return "bg-blue-100 text-blue-800 border-blue-200"
	default:
		return "bg-gray-100 text-gray-700 border-gray-200"
	}
}

func Badge(text string, tone Tone) templ.Component {
	return El("span", Attrs{
		"class": twmerge.Merge("inline-flex items-center rounded-full border px-2.5 py-0.5 text-xs font-semibold", tone.classes()),
	}, Text(text))
}

func LessonTone(s models.LessonStatus) Tone {
	switch s {
	case models.LessonAvailable:
		return ToneSuccess
	case models.LessonBooked:
		return ToneInfo
	case models.LessonCancelled:
		return ToneDanger
	default:
		return ToneNeutral
	}
}

func PaymentTone(s models.PaymentStatus) Tone {
	switch s {
	case models.PaymentCompleted:
		return ToneSuccess
	case models.PaymentPending:
		return ToneWarning
	default:
		return ToneDanger
	}
}

// Banner is the flash area above page content. An empty message renders nothing
// so HTMX targets can still swap into #banner.
func Banner(tone Tone, message string) templ.Component {
	if message == "" {
		return El("div", Attrs{"id": "banner"})
	}
	return El("div", Attrs{
		"id":    "banner",
		"role":  "alert",
		"class": twmerge.Merge("mb-4 rounded-md border px-4 py-3 text-sm", tone.classes()),
	}, Text(message))
}

func Card(title string, children ...templ.Component) templ.Component {
	return El("section", Attrs{"class": "rounded-lg border border-gray-200 bg-white p-6 shadow-sm"},
		If(title != "", H(3, "mb-4 text-lg font-semibold text-gray-900", title)),
		Group(children...),
	)
}

func StatCard(label, value string) templ.Component {
	return El("div", Attrs{"class": "rounded-lg border border-gray-200 bg-white p-5 shadow-sm", "data-stat": label},
		P("text-sm text-gray-500", label),
		P("mt-2 text-2xl font-bold text-gray-900", value),
	)
}

type Column struct {
	Label string
	// SortHref makes the header a sort toggle link.
	SortHref string
	Active   bool
}

// Table renders a header row and body rows; each row is a list of cells.
func Table(id string, columns []Column, rows [][]templ.Component, empty string) templ.Component {
	head := Map(columns, func(_ int, col Column) templ.Component {
		label := Text(col.Label)
		if col.SortHref != "" {
			class := "hover:text-gray-900"
			if col.Active {
				class += " text-gray-900 underline"
			}
			label = El("a", Attrs{
				"href":        col.SortHref,
				"hx-get":      col.SortHref,
				"hx-target":   "#content",
				"hx-push-url": "true",
				"class":       class,
			}, Text(col.Label))
		}
		return El("th", Attrs{"class": "px-4 py-3 text-left text-xs font-medium uppercase tracking-wider text-gray-500"}, label)
	})

	var body templ.Component
	if len(rows) == 0 {
		body = El("tr", nil, El("td", Attrs{
			"colspan": strconv.Itoa(len(columns)),
			"class":   "px-4 py-8 text-center text-sm text-gray-500",
		}, Text(empty)))
	} else {
		body = Map(rows, func(_ int, cells []templ.Component) templ.Component {
			return El("tr", Attrs{"class": "hover:bg-gray-50"}, Map(cells, func(_ int, cell templ.Component) templ.Component {
				return El("td", Attrs{"class": "whitespace-nowrap px-4 py-3 text-sm text-gray-700"}, cell)
			}))
		})
	}

	return El("div", Attrs{"class": "overflow-x-auto rounded-lg border border-gray-200 bg-white"},
		El("table", Attrs{"id": id, "class": "min-w-full divide-y divide-gray-200"},
			El("thead", Attrs{"class": "bg-gray-50"}, El("tr", nil, head)),
			El("tbody", Attrs{"class": "divide-y divide-gray-200"}, body),
		),
	)
}

// Pager renders previous/next and numbered links; href builds the link for a page.
func Pager(p models.Pagination, pages []int, href func(page int) string) templ.Component {
	if p.TotalPages <= 1 {
		return nil
	}
	link := func(page int, label string, current bool) templ.Component {
		class := "rounded-md border px-3 py-1 text-sm"
		if current {
			class = twmerge.Merge(class, "border-blue-600 bg-blue-600 font-bold text-white")
		}
		return El("a", Attrs{
			"href":        href(page),
			"hx-get":      href(page),
			"hx-target":   "#content",
			"hx-push-url": "true",
			"class":       class,
		}, Text(label))
	}

	return El("nav", Attrs{"class": "mt-4 flex items-center justify-between", "aria-label": "pagination"},
		P("text-sm text-gray-500", fmt.Sprintf("%d-%d / %d", p.From, p.To, p.TotalElements)),
		Div("flex gap-1",
			If(p.HasPrev(), link(p.CurrentPage-1, "‹", false)),
			Map(pages, func(_ int, n int) templ.Component {
				return link(n, strconv.Itoa(n), n == p.CurrentPage)
			}),
			If(p.HasNext(), link(p.CurrentPage+1, "›", false)),
		),
	)
}

// Money groups thousands with spaces and appends the currency.
func Money(amount float64) string {
	s := strconv.FormatInt(int64(amount), 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg, s = true, s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out) + " so'm"
	}
	return string(out) + " so'm"
}

// Flash is a one-shot message rendered above page content after an action.
type Flash struct {
	Tone    Tone
	Message string
}

func Success(msg string) Flash { return Flash{Tone: ToneSuccess, Message: msg} }

func Failure(msg string) Flash { return Flash{Tone: ToneDanger, Message: msg} }

func (f Flash) Banner() templ.Component { return Banner(f.Tone, f.Message) }
