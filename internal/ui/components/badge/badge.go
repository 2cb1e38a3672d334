package badge

import (
	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/ui"
)

type Props struct {
	Class string
}

func Badge(p Props, text string) templ.Component {
	return ui.El("span",
		ui.Class("inline-flex items-center rounded-full bg-slate-100 px-2.5 py-0.5 text-xs font-medium text-slate-700", p.Class),
		text)
}

var statusLabels = map[string]string{
	model.GoalStatusProgress:  "進行中",
	model.GoalStatusCompleted: "達成",
	model.GoalStatusAbandoned: "中断",
}

var statusClasses = map[string]string{
	model.GoalStatusProgress:  "bg-indigo-50 text-indigo-700",
	model.GoalStatusCompleted: "bg-emerald-50 text-emerald-700",
	model.GoalStatusAbandoned: "bg-slate-200 text-slate-600",
}

// Status labels a goal status.
func Status(status string) templ.Component {
	label, ok := statusLabels[status]
	if !ok {
		label = status
	}
	return Badge(Props{Class: statusClasses[status]}, label)
}
