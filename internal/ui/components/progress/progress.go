package progress

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"
	"github.com/taigen-app/taigen/internal/ui"
)

type Props struct {
	Value int // clamped to 0..100
	Class string
}

func Bar(p Props) templ.Component {
	v := min(max(p.Value, 0), 100)
	fill := "bg-indigo-500"
	if v == 100 {
		fill = "bg-emerald-500"
	}
	return ui.El("div",
		ui.A("role", "progressbar"),
		ui.A("aria-valuemin", "0"),
		ui.A("aria-valuemax", "100"),
		ui.A("aria-valuenow", strconv.Itoa(v)),
		ui.Class("h-2 w-full overflow-hidden rounded-full bg-slate-100", p.Class),
		ui.El("div", ui.Class("h-full rounded-full transition-all", fill), ui.A("style", fmt.Sprintf("width: %d%%", v))),
	)
}
