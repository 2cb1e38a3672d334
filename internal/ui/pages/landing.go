package pages

import (
	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/ui"
	"github.com/taigen-app/taigen/internal/ui/components/button"
	"github.com/taigen-app/taigen/internal/ui/components/card"
	"github.com/taigen-app/taigen/internal/ui/layouts"
)

var features = []struct{ title, body string }{
	{"宣言する", "目標と期限、カテゴリーを決めて宣言しましょう。"},
	{"記録する", "進捗をパーセントで記録し、メモを残せます。"},
	{"分解する", "マイルストーンで大きな目標を小さなステップに。"},
}

func Landing() templ.Component {
	return layouts.Base("",
		ui.El("main",
			ui.Class("mx-auto flex max-w-4xl flex-col items-center px-4 py-20 text-center"),
			ui.El("h1", ui.Class("text-5xl font-extrabold tracking-tight text-indigo-600"), "Taigen"),
			ui.El("p", ui.Class("mt-4 text-xl text-slate-700"), "目標を宣言して、達成しよう"),
			ui.El("p", ui.Class("mt-2 text-slate-500"), "大言壮語でも構いません。宣言した目標の進捗を記録して、一歩ずつ近づきましょう。"),
			ui.El("div", ui.Class("mt-8"),
				button.Button(button.Props{Href: "/auth"}, "はじめる"),
			),
			ui.El("div", ui.Class("mt-16 grid w-full gap-4 sm:grid-cols-3"),
				ui.Each(features, func(f struct{ title, body string }) templ.Component {
					return card.Card(card.Props{Class: "text-left"}, card.Title(f.title), card.Description(f.body))
				}),
			),
		),
	)
}

func NotFound() templ.Component {
	return layouts.Base("ページが見つかりません",
		ui.El("main",
			ui.Class("mx-auto max-w-md px-4 py-24 text-center"),
			ui.El("h1", ui.Class("text-3xl font-bold"), "404"),
			ui.El("p", ui.Class("mt-2 text-slate-600"), "お探しのページは見つかりませんでした。"),
			ui.El("div", ui.Class("mt-6"), button.Button(button.Props{Href: "/", Variant: button.VariantSecondary}, "トップへ戻る")),
		),
	)
}
