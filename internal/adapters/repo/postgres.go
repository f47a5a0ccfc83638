package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ma3uR/easy-prompt/internal/domain"
	"github.com/Ma3uR/easy-prompt/internal/infra/metrics"
)

// Postgres реализует domain.PlanRepo на основе pgxpool.
// План хранится целиком как jsonb плюс колонки входа для выборок.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ domain.PlanRepo = (*Postgres)(nil)

// NewPostgres создаёт адаптер БД.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) connCtx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if _, ok := parent.Deadline(); ok {
		return parent, func() {}
	}
	return context.WithTimeout(parent, 5*time.Second)
}

// EnsureSchema создаёт таблицу планов, если её ещё нет.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()
	_, err := p.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS plans (
    id UUID PRIMARY KEY,
    business_type TEXT NOT NULL,
    target_audience TEXT NOT NULL,
    content_goal TEXT NOT NULL,
    mode TEXT NOT NULL,
    language TEXT NOT NULL,
    content JSONB NOT NULL,
    generated_at TIMESTAMPTZ NOT NULL
)`)
	if err != nil {
		return &domain.StorageError{Message: "создание схемы", Err: err}
	}
	return nil
}

// SavePlan сохраняет недельный план.
func (p *Postgres) SavePlan(ctx context.Context, plan domain.WeeklyContent) error {
	content, err := json.Marshal(plan)
	if err != nil {
		return &domain.StorageError{Message: "сериализация плана", Err: err}
	}
	ctx, cancel := p.connCtx(ctx)
	defer cancel()
	start := time.Now()
	_, err = p.pool.Exec(ctx, `
INSERT INTO plans (id, business_type, target_audience, content_goal, mode, language, content, generated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content
`, plan.ID, plan.Input.BusinessType, plan.Input.TargetAudience, plan.Input.ContentGoal,
		string(plan.Input.Mode), string(plan.Input.Language), content, plan.GeneratedAt)
	metrics.ObserveNetworkRequest("postgres", "plans_insert", "plans", start, err)
	if err != nil {
		return &domain.StorageError{Message: "сохранение плана", Err: err}
	}
	return nil
}

// GetPlan возвращает план по идентификатору.
func (p *Postgres) GetPlan(ctx context.Context, id uuid.UUID) (domain.WeeklyContent, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()
	start := time.Now()
	var content []byte
	err := p.pool.QueryRow(ctx, `SELECT content FROM plans WHERE id = $1`, id).Scan(&content)
	metrics.ObserveNetworkRequest("postgres", "plans_get", "plans", start, err)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.WeeklyContent{}, domain.ErrPlanNotFound
	}
	if err != nil {
		return domain.WeeklyContent{}, &domain.StorageError{Message: "чтение плана", Err: err}
	}
	var plan domain.WeeklyContent
	if err := json.Unmarshal(content, &plan); err != nil {
		return domain.WeeklyContent{}, &domain.StorageError{Message: "десериализация плана", Err: err}
	}
	return plan, nil
}

// ListHistory возвращает планы в обратном хронологическом порядке.
func (p *Postgres) ListHistory(ctx context.Context, limit int) ([]domain.WeeklyContent, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx, cancel := p.connCtx(ctx)
	defer cancel()
	start := time.Now()
	rows, err := p.pool.Query(ctx, `SELECT content FROM plans ORDER BY generated_at DESC LIMIT $1`, limit)
	metrics.ObserveNetworkRequest("postgres", "plans_history", "plans", start, err)
	if err != nil {
		return nil, &domain.StorageError{Message: "чтение истории", Err: err}
	}
	defer rows.Close()

	var history []domain.WeeklyContent
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, &domain.StorageError{Message: "чтение истории", Err: err}
		}
		var plan domain.WeeklyContent
		if err := json.Unmarshal(content, &plan); err != nil {
			// Битые записи пропускаем, не валя всю историю.
			continue
		}
		history = append(history, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Message: "чтение истории", Err: err}
	}
	return history, nil
}

// AttachPrompts атомарно записывает пару промптов в один слот дня.
// Обновляется только элемент days[dayNumber-1]: параллельные обновления
// соседних дней не конфликтуют, повторная запись перетирает предыдущую.
func (p *Postgres) AttachPrompts(ctx context.Context, planID uuid.UUID, dayNumber int, image domain.ImagePrompt, video domain.VideoPrompt) error {
	if dayNumber < 1 || dayNumber > domain.DaysPerWeek {
		return domain.ErrDayNotFound
	}
	imageJSON, err := json.Marshal(image)
	if err != nil {
		return &domain.StorageError{Message: "сериализация image-промпта", Err: err}
	}
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return &domain.StorageError{Message: "сериализация video-промпта", Err: err}
	}
	idx := dayNumber - 1
	imagePath := fmt.Sprintf("{days,%d,imagePrompt}", idx)
	videoPath := fmt.Sprintf("{days,%d,videoPrompt}", idx)
	generatedPath := fmt.Sprintf("{days,%d,isGenerated}", idx)

	ctx, cancel := p.connCtx(ctx)
	defer cancel()
	start := time.Now()
	tag, err := p.pool.Exec(ctx, `
UPDATE plans
SET content = jsonb_set(jsonb_set(jsonb_set(content, $2::text[], $3::jsonb, true), $4::text[], $5::jsonb, true), $6::text[], 'true'::jsonb, true)
WHERE id = $1 AND jsonb_array_length(content->'days') >= $7
`, planID, imagePath, imageJSON, videoPath, videoJSON, generatedPath, dayNumber)
	metrics.ObserveNetworkRequest("postgres", "plans_attach_prompts", "plans", start, err)
	if err != nil {
		return &domain.StorageError{Message: "запись промптов", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}
