package pages

import (
	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/goalstore"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/ui"
	"github.com/taigen-app/taigen/internal/ui/components/button"
	"github.com/taigen-app/taigen/internal/ui/components/card"
	"github.com/taigen-app/taigen/internal/ui/components/form"
	"github.com/taigen-app/taigen/internal/ui/layouts"
)

type ComposeProps struct {
	Draft  goalstore.Draft
	Error  string
	Notice string
	Today  string // min for the date input
}

func Compose(p ComposeProps) templ.Component {
	return layouts.App("目標宣言",
		card.Card(card.Props{},
			card.Title("目標を宣言する"),
			card.Description("達成したい目標と期限を決めましょう。"),
			ui.El("form",
				ui.A("method", "post"),
				ui.A("action", "/app/goals/confirm"),
				ui.Class("mt-6 space-y-4"),
				form.CSRF(),
				form.Notice(p.Notice),
				form.Alert(p.Error),
				form.Field("title", "目標", form.Input(form.InputProps{
					ID: "title", Name: "title", Value: p.Draft.Title, Required: true,
					Placeholder: "例: フルマラソンを完走する",
				})),
				form.Field("deadline", "達成期限", form.Input(form.InputProps{
					ID: "deadline", Name: "deadline", Type: "date", Value: p.Draft.Deadline, Required: true,
					Attrs: []ui.Attr{ui.A("min", p.Today)},
				})),
				form.Field("category", "カテゴリー",
					form.Select("category", "category", model.Categories, p.Draft.Category, "選択してください", true)),
				form.Field("description", "詳細（任意・Markdown対応）",
					form.Textarea("description", "description", p.Draft.Description, "5")),
				ui.El("div", ui.Class("flex justify-end"),
					button.Button(button.Props{}, "確認する"),
				),
			),
		),
	)
}

type ConfirmProps struct {
	Request goalstore.Request
	Links   []goalstore.ShareLink
	Error   string
}

// Confirm shows the composed goal before it is declared.
func Confirm(p ConfirmProps) templ.Component {
	req := p.Request
	return layouts.App("宣言の確認",
		card.Card(card.Props{},
			card.Title("この目標を宣言しますか？"),
			ui.El("div", ui.Class("mt-4 space-y-3"),
				form.Alert(p.Error),
				detail("目標", req.Title()),
				detail("達成期限", FormatDate(req.Deadline())),
				detail("カテゴリー", req.Category()),
				ui.When(req.Description() != "", detail("詳細", req.Description())),
			),
			ui.El("div", ui.Class("mt-6 flex justify-end gap-2"),
				button.Button(button.Props{Href: "/app/goals/new", Variant: button.VariantSecondary}, "修正する"),
				ui.El("form",
					ui.A("method", "post"),
					ui.A("action", "/app/goals"),
					form.CSRF(),
					button.Button(button.Props{}, "宣言する"),
				),
			),
		),
		card.Card(card.Props{Class: "mt-6"},
			card.Title("宣言をシェアする"),
			ui.El("pre", ui.Class("mt-3 whitespace-pre-wrap rounded-md bg-slate-50 p-3 text-sm text-slate-700"), goalstore.ShareText(req)),
			ui.El("div", ui.Class("mt-4 flex flex-wrap gap-2"),
				ui.Each(p.Links, func(l goalstore.ShareLink) templ.Component {
					return button.Button(button.Props{
						Href:    l.URL,
						Variant: button.VariantSecondary,
						Attrs:   []ui.Attr{ui.A("target", "_blank"), ui.A("rel", "noopener noreferrer"), ui.A("hx-boost", "false"), ui.A("data-network", l.Network)},
					}, l.Label)
				}),
			),
		),
	)
}

func detail(label, value string) templ.Component {
	return ui.El("div",
		ui.El("p", ui.Class("text-xs font-medium uppercase text-slate-500"), label),
		ui.El("p", ui.Class("mt-0.5 whitespace-pre-wrap text-slate-900"), value),
	)
}
