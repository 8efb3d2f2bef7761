package ui

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
	VariantOutline     Variant = "outline"
	VariantSecondary   Variant = "secondary"
	VariantGhost       Variant = "ghost"
	VariantLink        Variant = "link"
)

type Size string

const (
	SizeDefault Size = "default"
	SizeSm      Size = "sm"
	SizeLg      Size = "lg"
	SizeIcon    Size = "icon"
)

type ButtonType string

const (
	TypeButton ButtonType = "button"
	TypeSubmit ButtonType = "submit"
	TypeReset  ButtonType = "reset"
)

type ButtonProps struct {
	ID       string
	Type     ButtonType
	Href     string
	Variant  Variant
	Size     Size
	Class    string
	Disabled bool
	Attrs    Attrs
}

func (p ButtonProps) variantClass() string {
	switch p.Variant {
	case VariantDestructive:
		return "bg-red-600 text-white hover:bg-red-700"
	case VariantOutline:
		return "border border-gray-300 bg-white text-gray-700 hover:bg-gray-50"
	case VariantSecondary:
		return "bg-gray-100 text-gray-900 hover:bg-gray-200"
	case VariantGhost:
		return "bg-transparent text-gray-700 hover:bg-gray-100"
	case VariantLink:
		return "bg-transparent text-blue-600 underline-offset-4 hover:underline"
	default:
		return "bg-blue-600 text-white hover:bg-blue-700"
	}
}

func (p ButtonProps) sizeClass() string {
	switch p.Size {
	case SizeSm:
		return "h-8 px-3 text-xs"
	case SizeLg:
		return "h-11 px-6 text-base"
	case SizeIcon:
		return "h-9 w-9 p-0"
	default:
		return "h-10 px-4 py-2 text-sm"
	}
}

// Button renders an anchor when Href is set and a button otherwise.
func Button(p ButtonProps, children ...templ.Component) templ.Component {
	class := twmerge.Merge(
		"inline-flex items-center justify-center gap-2 rounded-md font-medium transition-colors disabled:pointer-events-none disabled:opacity-50",
		p.variantClass(),
		p.sizeClass(),
		p.Class,
	)
	attrs := Attrs{"class": class}.With(p.Attrs)
	if p.ID != "" {
		attrs["id"] = p.ID
	}
	if p.Href != "" {
		attrs["href"] = p.Href
		return El("a", attrs, children...)
	}
	if p.Type == "" {
		p.Type = TypeButton
	}
	attrs["type"] = string(p.Type)
	if p.Disabled {
		attrs["disabled"] = ""
	}
	return El("button", attrs, children...)
}
