package toast

import (
	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/ui"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

type Props struct {
	Title       string
	Description string
	Variant     Variant
	Icon        bool
	Dismissible bool
}

var variantClasses = map[Variant]string{
	VariantDefault: "border-slate-200 bg-white text-slate-900",
	VariantSuccess: "border-emerald-200 bg-emerald-50 text-emerald-900",
	VariantError:   "border-red-200 bg-red-50 text-red-900",
	VariantInfo:    "border-sky-200 bg-sky-50 text-sky-900",
}

var icons = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "!",
	VariantInfo:    "i",
}

// Toast is appended to #toast-container; app.js removes it after a few seconds
// or when its close button is pressed.
func Toast(p Props) templ.Component {
	if p.Variant == "" {
		p.Variant = VariantDefault
	}

	var icon templ.Component
	if p.Icon && icons[p.Variant] != "" {
		icon = ui.El("span",
			ui.Class("flex h-6 w-6 shrink-0 items-center justify-center rounded-full border text-xs font-bold"),
			icons[p.Variant])
	}

	var closeButton templ.Component
	if p.Dismissible {
		closeButton = ui.El("button",
			ui.A("type", "button"),
			ui.A("data-toast-close", ""),
			ui.A("aria-label", "閉じる"),
			ui.Class("ml-auto text-sm opacity-60 hover:opacity-100"),
			"×")
	}

	return ui.El("div",
		ui.A("role", "status"),
		ui.A("data-toast", string(p.Variant)),
		ui.Class("pointer-events-auto flex w-80 items-start gap-3 rounded-lg border p-4 shadow-lg", variantClasses[p.Variant]),
		icon,
		ui.El("div",
			ui.Class("flex-1"),
			ui.When(p.Title != "", ui.El("p", ui.Class("text-sm font-semibold"), p.Title)),
			ui.When(p.Description != "", ui.El("p", ui.Class("mt-1 text-sm"), p.Description)),
		),
		closeButton,
	)
}
