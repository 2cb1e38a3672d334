package pages

import (
	"fmt"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/goalstore"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/ui"
	"github.com/taigen-app/taigen/internal/ui/components/badge"
	"github.com/taigen-app/taigen/internal/ui/components/button"
	"github.com/taigen-app/taigen/internal/ui/components/card"
	"github.com/taigen-app/taigen/internal/ui/components/form"
	"github.com/taigen-app/taigen/internal/ui/components/progress"
	"github.com/taigen-app/taigen/internal/ui/layouts"
)

// GoalView is a goal with its description already rendered from markdown.
type GoalView struct {
	Goal            *model.Goal
	DescriptionHTML string
	DaysLeft        int
}

type GoalsProps struct {
	Stats  goalstore.Stats
	Goals  []GoalView
	Notice string
	Error  string
}

func FormatDate(t time.Time) string {
	return t.Format("2006年1月2日")
}

// Goals is the my page: stats, then every goal newest first.
func Goals(p GoalsProps) templ.Component {
	var list templ.Component
	if len(p.Goals) == 0 {
		list = card.Card(card.Props{Class: "text-center"},
			ui.El("p", ui.Class("text-slate-600"), "まだ目標がありません。"),
			ui.El("div", ui.Class("mt-4"), button.Button(button.Props{Href: "/app/goals/new"}, "最初の目標を宣言する")),
		)
	} else {
		list = ui.El("div", ui.ID("goals"), ui.Class("space-y-4"), ui.Each(p.Goals, GoalCard))
	}

	return layouts.App("マイページ",
		ui.El("div", ui.Class("space-y-6"),
			form.Notice(p.Notice),
			form.Alert(p.Error),
			ui.El("div", ui.Class("grid grid-cols-2 gap-4"),
				stat("宣言した目標", p.Stats.Total),
				stat("達成した目標", p.Stats.Completed),
			),
			ui.El("div", ui.Class("flex items-center justify-between"),
				ui.El("h1", ui.Class("text-xl font-bold"), "あなたの目標"),
				ui.El("a", ui.Href("/app/goals/export"), ui.A("hx-boost", "false"), ui.Class("text-sm text-indigo-600 hover:underline"), "JSONで書き出す"),
			),
			list,
		),
	)
}

func stat(label string, value int) templ.Component {
	return card.Card(card.Props{},
		ui.El("p", ui.Class("text-sm text-slate-500"), label),
		ui.El("p", ui.Class("mt-1 text-3xl font-bold"), strconv.Itoa(value)),
	)
}

// GoalCard is swapped in place by milestone toggles.
func GoalCard(v GoalView) templ.Component {
	g := v.Goal
	base := "/app/goals/" + g.ID

	return card.Card(card.Props{ID: "goal-" + g.ID},
		ui.El("div", ui.Class("flex items-start justify-between gap-4"),
			ui.El("div",
				ui.El("h2", ui.Class("text-lg font-semibold"), g.Title),
				ui.El("div", ui.Class("mt-1 flex flex-wrap items-center gap-2 text-sm text-slate-500"),
					badge.Status(g.Status),
					badge.Badge(badge.Props{}, g.Category),
					ui.El("span", "期限: "+FormatDate(g.Deadline)),
					ui.When(!g.IsCompleted(), ui.El("span", daysLeftLabel(v.DaysLeft))),
				),
			),
			ui.El("span", ui.Class("text-2xl font-bold text-indigo-600"), strconv.Itoa(g.Progress)+"%"),
		),
		progress.Bar(progress.Props{Value: g.Progress, Class: "mt-4"}),
		ui.When(v.DescriptionHTML != "",
			ui.El("div", ui.Class("prose prose-sm mt-4 max-w-none text-slate-700"), templ.Raw(v.DescriptionHTML))),
		milestones(g),
		ui.El("div", ui.Class("mt-4 flex flex-wrap gap-2"),
			button.Button(button.Props{Href: base + "/progress", Variant: button.VariantSecondary}, "進捗を記録"),
			button.Button(button.Props{Href: base + "/milestones/new", Variant: button.VariantSecondary}, "マイルストーン追加"),
			button.Button(button.Props{Href: base + "/history", Variant: button.VariantGhost}, "履歴"),
		),
	)
}

func daysLeftLabel(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d日超過", -days)
	case days == 0:
		return "今日が期限"
	default:
		return fmt.Sprintf("あと%d日", days)
	}
}

func milestones(g *model.Goal) templ.Component {
	if len(g.Milestones) == 0 {
		return nil
	}
	return ui.El("ul", ui.Class("mt-4 space-y-1"),
		ui.Each(g.Milestones, func(m *model.Milestone) templ.Component {
			return milestoneItem(g.ID, m)
		}),
	)
}

func milestoneItem(goalID string, m *model.Milestone) templ.Component {
	action := "/app/goals/" + goalID + "/milestones/" + m.ID + "/toggle"
	mark, label := "☐", "完了にする"
	titleClass := "text-slate-800"
	if m.Completed {
		mark, label = "☑", "未完了に戻す"
		titleClass = "text-slate-400 line-through"
	}

	return ui.El("li",
		ui.El("form",
			ui.A("method", "post"),
			ui.A("action", action),
			ui.A("hx-post", action),
			ui.A("hx-target", "#goal-"+goalID),
			ui.A("hx-swap", "outerHTML"),
			ui.Class("flex items-center gap-2"),
			form.CSRF(),
			ui.El("button",
				ui.A("type", "submit"),
				ui.A("aria-label", label),
				ui.A("aria-pressed", strconv.FormatBool(m.Completed)),
				ui.Class("text-lg leading-none text-indigo-600"),
				mark,
			),
			ui.El("span", ui.Class("text-sm", titleClass), m.Title),
		),
	)
}
