package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/ctxkeys"
	"github.com/taigen-app/taigen/internal/ui"
	"github.com/taigen-app/taigen/internal/ui/components/button"
	"github.com/taigen-app/taigen/internal/ui/components/form"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

func appName(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
		return cfg.AppName
	}
	return "Taigen"
}

// Base is the document shell shared by every page.
func Base(title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		name := appName(ctx)
		if title != "" {
			title = title + " | " + name
		} else {
			title = name
		}

		if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
			return err
		}
		return ui.El("html", ui.A("lang", ctxkeys.Lang(ctx).String()),
			ui.El("head",
				ui.El("meta", ui.A("charset", "utf-8")),
				ui.El("meta", ui.A("name", "viewport"), ui.A("content", "width=device-width, initial-scale=1")),
				ui.El("meta", ui.A("name", "csrf-token"), ui.A("content", ctxkeys.CSRFToken(ctx))),
				ui.El("title", title),
				ui.El("link", ui.A("rel", "stylesheet"), ui.Href("/assets/css/output.css")),
				ui.Script(htmxSrc),
				ui.Script("/assets/js/app.js"),
			),
			ui.El("body",
				ui.A("hx-boost", "true"),
				ui.Class("min-h-screen bg-slate-50 text-slate-900 antialiased"),
				ui.Group(body...),
				ui.El("div", ui.ID("toast-container"), ui.Class("pointer-events-none fixed right-4 top-4 z-50 flex flex-col gap-2")),
			),
		).Render(ctx, w)
	})
}

// App wraps signed-in pages with the navigation bar.
func App(title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sess := ctxkeys.Session(ctx)
		path := ctxkeys.URLPath(ctx)

		email := ""
		if sess != nil {
			email = sess.Email
		}

		nav := ui.El("header",
			ui.Class("border-b border-slate-200 bg-white"),
			ui.El("nav",
				ui.Class("mx-auto flex max-w-4xl items-center gap-2 px-4 py-3"),
				ui.El("a", ui.Href("/app"), ui.Class("mr-4 text-lg font-bold text-indigo-600"), appName(ctx)),
				navLink("/app/goals/new", "目標宣言", path),
				navLink("/app/goals", "マイページ", path),
				ui.El("span", ui.Class("ml-auto hidden text-xs text-slate-500 sm:inline"), email),
				ui.El("form",
					ui.A("method", "post"),
					ui.A("action", "/auth/logout"),
					form.CSRF(),
					button.Button(button.Props{Variant: button.VariantGhost}, "ログアウト"),
				),
			),
		)

		return Base(title,
			nav,
			ui.El("main", ui.Class("mx-auto max-w-4xl px-4 py-8"), ui.Group(body...)),
		).Render(ctx, w)
	})
}

func navLink(href, label, current string) templ.Component {
	active := ""
	if href == current {
		active = "bg-slate-100 text-slate-900"
	}
	return ui.El("a",
		ui.Href(href),
		ui.Class("rounded-md px-3 py-2 text-sm font-medium text-slate-600 hover:text-slate-900", active),
		label,
	)
}
