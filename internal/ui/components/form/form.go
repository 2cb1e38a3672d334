package form

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/ctxkeys"
	"github.com/taigen-app/taigen/internal/ui"
)

const inputClass = "block w-full rounded-md border border-slate-300 px-3 py-2 text-sm shadow-sm focus:border-indigo-500 focus:outline-none focus:ring-1 focus:ring-indigo-500"

type InputProps struct {
	ID          string
	Name        string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Attrs       []ui.Attr
}

func Input(p InputProps) templ.Component {
	if p.Type == "" {
		p.Type = "text"
	}
	return ui.El("input",
		ui.ID(p.ID),
		ui.A("name", p.Name),
		ui.A("type", p.Type),
		ui.A("value", p.Value),
		ui.A("placeholder", p.Placeholder),
		ui.If("required", p.Required),
		ui.Class(inputClass),
		p.Attrs,
	)
}

func Textarea(id, name, value string, rows string) templ.Component {
	return ui.El("textarea",
		ui.ID(id),
		ui.A("name", name),
		ui.A("rows", rows),
		ui.Class(inputClass),
		value,
	)
}

// Select lists options by value; label equals value.
func Select(id, name string, options []string, selected, placeholder string, required bool) templ.Component {
	items := []templ.Component{
		ui.El("option", ui.A("value", ""), ui.If("selected", selected == ""), placeholder),
	}
	for _, opt := range options {
		items = append(items, ui.El("option", ui.A("value", opt), ui.If("selected", opt == selected), opt))
	}
	return ui.El("select",
		ui.ID(id),
		ui.A("name", name),
		ui.If("required", required),
		ui.Class(inputClass),
		ui.Group(items...),
	)
}

// Field pairs a label with its control.
func Field(id, label string, control templ.Component) templ.Component {
	return ui.El("div",
		ui.Class("space-y-1"),
		ui.El("label", ui.A("for", id), ui.Class("block text-sm font-medium text-slate-700"), label),
		control,
	)
}

func Hidden(name, value string) templ.Component {
	return ui.El("input", ui.A("type", "hidden"), ui.A("name", name), ui.A("value", value))
}

// CSRF is the hidden token field for the current request.
func CSRF() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Hidden("csrf_token", ctxkeys.CSRFToken(ctx)).Render(ctx, w)
	})
}

// Alert shows an inline error above a form. Empty messages render nothing.
func Alert(message string) templ.Component {
	if message == "" {
		return nil
	}
	return ui.El("div",
		ui.A("role", "alert"),
		ui.Class("rounded-md border border-red-200 bg-red-50 px-4 py-3 text-sm text-red-800"),
		message,
	)
}

// Notice is the success counterpart of Alert.
func Notice(message string) templ.Component {
	if message == "" {
		return nil
	}
	return ui.El("div",
		ui.A("role", "status"),
		ui.Class("rounded-md border border-emerald-200 bg-emerald-50 px-4 py-3 text-sm text-emerald-800"),
		message,
	)
}
