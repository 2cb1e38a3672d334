package pages

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/ui"
	"github.com/taigen-app/taigen/internal/ui/components/button"
	"github.com/taigen-app/taigen/internal/ui/components/card"
	"github.com/taigen-app/taigen/internal/ui/components/form"
	"github.com/taigen-app/taigen/internal/ui/components/progress"
	"github.com/taigen-app/taigen/internal/ui/layouts"
)

type ProgressEditorProps struct {
	Goal  *model.Goal
	Value string
	Note  string
	Error string
}

// ProgressEditor starts at 0 with an empty note; the current progress is
// shown above the form.
func ProgressEditor(p ProgressEditorProps) templ.Component {
	g := p.Goal
	value := p.Value
	if value == "" {
		value = "0"
	}

	return layouts.App("進捗を記録",
		card.Card(card.Props{},
			card.Title("進捗を記録"),
			card.Description(g.Title),
			ui.El("div", ui.Class("mt-4"),
				ui.El("p", ui.Class("text-sm text-slate-500"), "現在の進捗"),
				ui.El("p", ui.Class("text-2xl font-bold"), strconv.Itoa(g.Progress)+"%"),
				progress.Bar(progress.Props{Value: g.Progress, Class: "mt-2"}),
			),
			ui.El("form",
				ui.A("method", "post"),
				ui.A("action", "/app/goals/"+g.ID+"/progress"),
				ui.Class("mt-6 space-y-4"),
				form.CSRF(),
				form.Alert(p.Error),
				form.Field("progress", "新しい進捗 (%)", form.Input(form.InputProps{
					ID: "progress", Name: "progress", Type: "number", Value: value, Required: true,
					Attrs: []ui.Attr{ui.A("min", "0"), ui.A("max", "100"), ui.A("step", "1")},
				})),
				form.Field("note", "メモ（任意）", form.Textarea("note", "note", p.Note, "3")),
				editorActions("記録する"),
			),
		),
	)
}

type MilestoneEditorProps struct {
	Goal  *model.Goal
	Title string
	Error string
}

func MilestoneEditor(p MilestoneEditorProps) templ.Component {
	g := p.Goal
	return layouts.App("マイルストーン追加",
		card.Card(card.Props{},
			card.Title("マイルストーンを追加"),
			card.Description(g.Title),
			ui.El("form",
				ui.A("method", "post"),
				ui.A("action", "/app/goals/"+g.ID+"/milestones"),
				ui.Class("mt-6 space-y-4"),
				form.CSRF(),
				form.Alert(p.Error),
				form.Field("title", "マイルストーン", form.Input(form.InputProps{
					ID: "title", Name: "title", Value: p.Title, Required: true,
					Placeholder: "例: 10kmを走る",
				})),
				editorActions("追加する"),
			),
		),
	)
}

func editorActions(submit string) templ.Component {
	return ui.El("div", ui.Class("flex justify-end gap-2"),
		button.Button(button.Props{Href: "/app/goals", Variant: button.VariantSecondary}, "キャンセル"),
		button.Button(button.Props{}, submit),
	)
}

type HistoryProps struct {
	Goal    *model.Goal
	Updates []*model.ProgressUpdate
}

// History lists recorded progress updates, newest first.
func History(p HistoryProps) templ.Component {
	var body templ.Component
	if len(p.Updates) == 0 {
		body = ui.El("p", ui.Class("mt-4 text-sm text-slate-500"), "まだ進捗の記録がありません。")
	} else {
		body = ui.El("ol", ui.Class("mt-4 divide-y divide-slate-100"),
			ui.Each(p.Updates, func(u *model.ProgressUpdate) templ.Component {
				return ui.El("li", ui.Class("py-3"),
					ui.El("div", ui.Class("flex items-baseline justify-between"),
						ui.El("span", ui.Class("font-semibold"), strconv.Itoa(u.Progress)+"%"),
						ui.El("time", ui.A("datetime", u.CreatedAt.Format("2006-01-02T15:04:05Z07:00")), ui.Class("text-xs text-slate-500"),
							u.CreatedAt.Format("2006/01/02 15:04")),
					),
					ui.When(u.NoteText() != "", ui.El("p", ui.Class("mt-1 whitespace-pre-wrap text-sm text-slate-700"), u.NoteText())),
				)
			}),
		)
	}

	return layouts.App("進捗履歴",
		card.Card(card.Props{},
			card.Title("進捗履歴"),
			card.Description(p.Goal.Title),
			body,
			ui.El("div", ui.Class("mt-6"),
				button.Button(button.Props{Href: "/app/goals", Variant: button.VariantSecondary}, "マイページへ戻る"),
			),
		),
	)
}
