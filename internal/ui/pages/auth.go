package pages

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/ui"
	"github.com/taigen-app/taigen/internal/ui/components/button"
	"github.com/taigen-app/taigen/internal/ui/components/card"
	"github.com/taigen-app/taigen/internal/ui/components/form"
	"github.com/taigen-app/taigen/internal/ui/layouts"
)

type AuthProps struct {
	SignUp            bool
	Email             string
	Error             string
	Notice            string
	MinPasswordLength int
}

// Auth is the sign-in form, or the sign-up form when SignUp is set.
func Auth(p AuthProps) templ.Component {
	title, action, submit := "ログイン", "/auth/signin", "ログイン"
	switchText, switchHref, switchLabel := "アカウントをお持ちでない方は", "/auth?mode=signup", "新規登録"
	if p.SignUp {
		title, action, submit = "新規登録", "/auth/signup", "登録する"
		switchText, switchHref, switchLabel = "すでにアカウントをお持ちの方は", "/auth", "ログイン"
	}

	return layouts.Base(title,
		ui.El("main",
			ui.Class("mx-auto max-w-md px-4 py-16"),
			ui.El("a", ui.Href("/"), ui.Class("mb-6 block text-center text-2xl font-bold text-indigo-600"), "Taigen"),
			card.Card(card.Props{},
				card.Title(title),
				ui.El("form",
					ui.A("method", "post"),
					ui.A("action", action),
					ui.Class("mt-6 space-y-4"),
					form.CSRF(),
					form.Alert(p.Error),
					form.Notice(p.Notice),
					form.Field("email", "メールアドレス", form.Input(form.InputProps{
						ID: "email", Name: "email", Type: "email", Value: p.Email, Required: true,
						Attrs: []ui.Attr{ui.A("autocomplete", "email")},
					})),
					form.Field("password", "パスワード", form.Input(form.InputProps{
						ID: "password", Name: "password", Type: "password", Required: true,
						Placeholder: strconv.Itoa(p.MinPasswordLength) + "文字以上",
						Attrs:       []ui.Attr{ui.A("minlength", strconv.Itoa(p.MinPasswordLength))},
					})),
					button.Button(button.Props{Class: "w-full"}, submit),
				),
				ui.El("p", ui.Class("mt-4 text-center text-sm text-slate-600"),
					switchText,
					ui.El("a", ui.Href(switchHref), ui.Class("ml-1 font-medium text-indigo-600 hover:underline"), switchLabel),
				),
			),
		),
	)
}
