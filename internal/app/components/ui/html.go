// Package ui holds the portal's HTML building blocks. Components are plain
// templ.Component values so pages compose them like generated templates.
package ui

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

// Attrs are rendered in sorted key order. An empty value renders a bare attribute.
type Attrs map[string]string

// urlAttrs go through templ.URL, so a stored "javascript:" link renders inert.
var urlAttrs = map[string]bool{
	"action": true, "formaction": true, "href": true, "src": true,
}

var voidElements = map[string]bool{
	"area": true, "br": true, "col": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true,
}

// El renders <tag attrs>children</tag>.
func El(tag string, attrs Attrs, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<")
		b.WriteString(tag)
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(k)
			if v := attrs[k]; v != "" {
				if urlAttrs[k] {
					v = string(templ.URL(v))
				}
				b.WriteString(`="`)
				b.WriteString(templ.EscapeString(v))
				b.WriteString(`"`)
			}
		}
		b.WriteString(">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if voidElements[tag] {
			return nil
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

func Group(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func If(cond bool, c templ.Component) templ.Component {
	if !cond {
		return nil
	}
	return c
}

// Map renders one component per item.
func Map[T any](items []T, fn func(int, T) templ.Component) templ.Component {
	out := make([]templ.Component, len(items))
	for i, item := range items {
		out[i] = fn(i, item)
	}
	return Group(out...)
}

// With returns a copy of a extended by b; b wins on conflicts.
func (a Attrs) With(b Attrs) Attrs {
	out := make(Attrs, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func Div(class string, children ...templ.Component) templ.Component {
	return El("div", Attrs{"class": class}, children...)
}

func Span(class, text string) templ.Component {
	return El("span", Attrs{"class": class}, Text(text))
}

func P(class, text string) templ.Component {
	return El("p", Attrs{"class": class}, Text(text))
}

func H(level int, class, text string) templ.Component {
	tag := "h2"
	switch level {
	case 1:
		tag = "h1"
	case 3:
		tag = "h3"
	}
	return El(tag, Attrs{"class": class}, Text(text))
}

func Link(href, class string, children ...templ.Component) templ.Component {
	return El("a", Attrs{"href": href, "class": class}, children...)
}
