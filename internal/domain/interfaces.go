package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Generator выполняет обращения к LLM: недельный план и пара промптов на день.
type Generator interface {
	GenerateWeekly(ctx context.Context, input ContentInput, quality *QualityModeInput) (WeeklyContent, error)
	GeneratePrompts(ctx context.Context, day DayContent, input ContentInput) (ImagePrompt, VideoPrompt, error)
}

// PlanRepo хранит недельные планы.
type PlanRepo interface {
	SavePlan(ctx context.Context, plan WeeklyContent) error
	GetPlan(ctx context.Context, id uuid.UUID) (WeeklyContent, error)
	ListHistory(ctx context.Context, limit int) ([]WeeklyContent, error)
	// AttachPrompts атомарно обновляет один слот дня в плане:
	// параллельные обновления соседних дней не затирают друг друга,
	// повторное обновление того же дня работает по принципу last-write-wins.
	AttachPrompts(ctx context.Context, planID uuid.UUID, dayNumber int, image ImagePrompt, video VideoPrompt) error
}

// PlanService бизнес-логика генерации контент-планов.
type PlanService interface {
	GenerateWeekly(ctx context.Context, input ContentInput, quality *QualityModeInput) (WeeklyContent, error)
	GeneratePromptsForDay(ctx context.Context, planID uuid.UUID, dayNumber int) (WeeklyContent, error)
	EnqueuePrompts(ctx context.Context, planID uuid.UUID, dayNumber int) error
	GetPlan(ctx context.Context, id uuid.UUID) (WeeklyContent, error)
	History(ctx context.Context, limit int) ([]WeeklyContent, error)
}

// Cache используется для простых TTL-хранилищ.
type Cache interface {
	Once(key string, ttl time.Duration, fn func() error) error
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
}

// PromptQueue очередь фоновых задач генерации промптов.
type PromptQueue interface {
	Enqueue(ctx context.Context, job PromptJob) error
	Pop(ctx context.Context) (PromptJob, error)
}
