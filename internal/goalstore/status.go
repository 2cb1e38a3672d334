package goalstore

import "github.com/taigen-app/taigen/internal/model"

// DeriveStatus is the only place a goal status is computed from progress.
func DeriveStatus(progress int) string {
	if progress == model.ProgressMax {
		return model.GoalStatusCompleted
	}
	return model.GoalStatusProgress
}

func ValidProgress(progress int) bool {
	return progress >= model.ProgressMin && progress <= model.ProgressMax
}
