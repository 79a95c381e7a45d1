package extract

import (
	"time"

	"github.com/pandhu/duitbot/internal/model"
)

// Entities runs every extractor over normalized text and collects the
// results. Extractors are independent pure functions, so their relative
// order does not matter.
func Entities(text string, now time.Time) model.ExtractedEntities {
	return model.ExtractedEntities{
		Amount:       Amount(text),
		Date:         Date(text, now),
		Category:     Category(text),
		GoalName:     GoalName(text),
		GoalType:     GoalType(text),
		Priority:     Priority(text),
		UpdateTarget: UpdateTarget(text),
	}
}
