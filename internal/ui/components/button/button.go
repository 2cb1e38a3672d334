package button

import (
	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/ui"
)

type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantGhost     Variant = "ghost"
)

type Props struct {
	Type     string // button, submit; default submit
	Variant  Variant
	Class    string
	Disabled bool
	Href     string // renders a link styled as a button
	Attrs    []ui.Attr
}

const base = "inline-flex items-center justify-center rounded-md px-4 py-2 text-sm font-medium transition-colors focus:outline-none focus:ring-2 focus:ring-offset-2 disabled:pointer-events-none disabled:opacity-50"

var variants = map[Variant]string{
	VariantPrimary:   "bg-indigo-600 text-white hover:bg-indigo-700 focus:ring-indigo-500",
	VariantSecondary: "border border-slate-300 bg-white text-slate-700 hover:bg-slate-50 focus:ring-slate-400",
	VariantGhost:     "text-slate-600 hover:bg-slate-100 focus:ring-slate-300",
}

func Button(p Props, children ...any) templ.Component {
	if p.Variant == "" {
		p.Variant = VariantPrimary
	}
	class := ui.Class(base, variants[p.Variant], p.Class)

	if p.Href != "" {
		return ui.El("a", append([]any{ui.Href(p.Href), class, p.Attrs}, children...)...)
	}

	if p.Type == "" {
		p.Type = "submit"
	}
	args := []any{ui.A("type", p.Type), class, ui.If("disabled", p.Disabled), p.Attrs}
	return ui.El("button", append(args, children...)...)
}
