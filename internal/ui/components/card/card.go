package card

import (
	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/ui"
)

type Props struct {
	ID    string
	Class string
}

func Card(p Props, children ...any) templ.Component {
	args := []any{ui.Class("rounded-xl border border-slate-200 bg-white p-6 shadow-sm", p.Class)}
	if p.ID != "" {
		args = append(args, ui.ID(p.ID))
	}
	return ui.El("div", append(args, children...)...)
}

func Title(text string) templ.Component {
	return ui.El("h2", ui.Class("text-lg font-semibold text-slate-900"), text)
}

func Description(text string) templ.Component {
	return ui.El("p", ui.Class("mt-1 text-sm text-slate-500"), text)
}
