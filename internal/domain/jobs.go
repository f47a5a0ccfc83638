package domain

import (
	"time"

	"github.com/google/uuid"
)

// PromptJob задача фоновой генерации пары промптов для одного дня плана.
type PromptJob struct {
	PlanID     uuid.UUID `json:"plan_id"`
	DayNumber  int       `json:"day_number"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}
