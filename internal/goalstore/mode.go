package goalstore

// Mode is the navigation state of a signed-in user's view. Exactly one mode
// is active at a time.
type Mode interface {
	isMode()
}

type (
	ModeLanding         struct{}
	ModeAuth            struct{ SignUp bool }
	ModeCompose         struct{ Draft Draft }
	ModeConfirm         struct{ Request Request }
	ModeMyPage          struct{}
	ModeProgressEditor  struct{ GoalID string }
	ModeMilestoneEditor struct{ GoalID string }
)

func (ModeLanding) isMode()         {}
func (ModeAuth) isMode()            {}
func (ModeCompose) isMode()         {}
func (ModeConfirm) isMode()         {}
func (ModeMyPage) isMode()          {}
func (ModeProgressEditor) isMode()  {}
func (ModeMilestoneEditor) isMode() {}

// Personalized reports whether the mode shows the user's own data.
func Personalized(m Mode) bool {
	switch m.(type) {
	case ModeLanding, ModeAuth:
		return false
	default:
		return true
	}
}
