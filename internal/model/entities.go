package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Priority indicates how urgent a goal is to the user.
type Priority string

const (
	// PriorityLow marks goals the user flagged as relaxed.
	PriorityLow Priority = "low"
	// PriorityMedium is the default when no priority keyword is present.
	PriorityMedium Priority = "medium"
	// PriorityHigh marks goals the user flagged as urgent.
	PriorityHigh Priority = "high"
)

// Indonesian returns the user-facing label for the priority.
func (p Priority) Indonesian() string {
	switch p {
	case PriorityHigh:
		return "Tinggi"
	case PriorityLow:
		return "Rendah"
	default:
		return "Sedang"
	}
}

// UpdateTarget references an existing goal in an update command: the
// free-text name fragment and the amount to add.
type UpdateTarget struct {
	Name   string
	Amount decimal.Decimal
}

// ExtractedEntities holds the structured values pulled out of a single
// normalized message. Extraction is total: absent values are represented by
// nil pointers (amount, update target) or documented defaults (date resolves
// to now, category to the catch-all, priority to medium).
type ExtractedEntities struct {
	Amount       *decimal.Decimal
	Date         time.Time
	Category     string
	GoalName     string
	GoalType     GoalType
	Priority     Priority
	UpdateTarget *UpdateTarget
}
