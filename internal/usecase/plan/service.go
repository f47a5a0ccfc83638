package plan

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ma3uR/easy-prompt/internal/domain"
	"github.com/Ma3uR/easy-prompt/internal/infra/cache"
	"github.com/Ma3uR/easy-prompt/internal/infra/metrics"
)

// ErrPromptJobInFlight возвращается при повторной постановке задачи на тот же день.
var ErrPromptJobInFlight = errors.New("генерация промптов для этого дня уже запущена")

const (
	planCacheTTL  = 24 * time.Hour
	promptOnceTTL = 5 * time.Minute
)

// Service реализует бизнес-логику генерации контент-планов.
type Service struct {
	repo       domain.PlanRepo
	generator  domain.Generator
	cache      domain.Cache
	queue      domain.PromptQueue
	log        zerolog.Logger
	historyMax int
}

var _ domain.PlanService = (*Service)(nil)

// NewService создаёт сервис планов. Кэш и очередь необязательны.
func NewService(repo domain.PlanRepo, generator domain.Generator, c domain.Cache, queue domain.PromptQueue, logger zerolog.Logger, historyMax int) *Service {
	if historyMax <= 0 {
		historyMax = 20
	}
	return &Service{repo: repo, generator: generator, cache: c, queue: queue, log: logger, historyMax: historyMax}
}

// GenerateWeekly проверяет вход, генерирует план и сохраняет его.
func (s *Service) GenerateWeekly(ctx context.Context, input domain.ContentInput, quality *domain.QualityModeInput) (domain.WeeklyContent, error) {
	if err := validateInput(input, quality); err != nil {
		return domain.WeeklyContent{}, err
	}
	metrics.IncPlanRequest(string(input.Mode), input.Language.Code())
	start := time.Now()

	generated, err := s.generator.GenerateWeekly(ctx, input, quality)
	if err != nil {
		return domain.WeeklyContent{}, err
	}
	metrics.PlanGenerationSeconds.Observe(time.Since(start).Seconds())

	if err := s.repo.SavePlan(ctx, generated); err != nil {
		return domain.WeeklyContent{}, err
	}
	s.cachePlan(generated)
	s.log.Info().Str("plan_id", generated.ID.String()).Str("mode", string(input.Mode)).Msg("план сгенерирован")
	return generated, nil
}

// GeneratePromptsForDay синхронно генерирует пару промптов и прикрепляет её
// к одному дню плана. Прикрепление атомарно на уровне слота дня.
func (s *Service) GeneratePromptsForDay(ctx context.Context, planID uuid.UUID, dayNumber int) (domain.WeeklyContent, error) {
	current, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return domain.WeeklyContent{}, err
	}
	day, ok := current.Day(dayNumber)
	if !ok {
		return domain.WeeklyContent{}, domain.ErrDayNotFound
	}
	metrics.IncPromptPairRequest(string(day.Category))

	image, video, err := s.generator.GeneratePrompts(ctx, *day, current.Input)
	if err != nil {
		return domain.WeeklyContent{}, err
	}
	if err := s.repo.AttachPrompts(ctx, planID, dayNumber, image, video); err != nil {
		return domain.WeeklyContent{}, err
	}
	// Кэшируется свежий снимок из хранилища, а не локальный: параллельная
	// генерация соседнего дня могла дописать свои промпты после нашего чтения.
	updated, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		day.AttachPrompts(image, video)
		return current, nil
	}
	s.cachePlan(updated)
	s.log.Info().Str("plan_id", planID.String()).Int("day", dayNumber).Msg("промпты прикреплены")
	return updated, nil
}

// EnqueuePrompts ставит фоновую задачу генерации промптов для дня.
// Повторная постановка в течение promptOnceTTL отклоняется.
func (s *Service) EnqueuePrompts(ctx context.Context, planID uuid.UUID, dayNumber int) error {
	if s.queue == nil {
		return domain.NewAIServiceError("очередь задач не сконфигурирована")
	}
	current, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return err
	}
	if _, ok := current.Day(dayNumber); !ok {
		return domain.ErrDayNotFound
	}
	job := domain.PromptJob{PlanID: planID, DayNumber: dayNumber, EnqueuedAt: time.Now().UTC()}
	if s.cache == nil {
		return s.queue.Enqueue(ctx, job)
	}
	enqueued := false
	err = s.cache.Once(cache.PromptOnceKey(planID.String(), dayNumber), promptOnceTTL, func() error {
		enqueued = true
		return s.queue.Enqueue(ctx, job)
	})
	if err != nil {
		return err
	}
	if !enqueued {
		return ErrPromptJobInFlight
	}
	return nil
}

// GetPlan возвращает план из кэша или хранилища.
func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (domain.WeeklyContent, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(cache.PlanKey(id.String())); err == nil && len(data) > 0 {
			var plan domain.WeeklyContent
			if err := json.Unmarshal(data, &plan); err == nil {
				return plan, nil
			}
		}
	}
	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return domain.WeeklyContent{}, err
	}
	s.cachePlan(plan)
	return plan, nil
}

// History возвращает сохранённые планы, свежие первыми.
func (s *Service) History(ctx context.Context, limit int) ([]domain.WeeklyContent, error) {
	if limit <= 0 || limit > s.historyMax {
		limit = s.historyMax
	}
	return s.repo.ListHistory(ctx, limit)
}

// cachePlan обновляет кэш плана. Ошибки кэша не фатальны.
func (s *Service) cachePlan(plan domain.WeeklyContent) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := s.cache.Set(cache.PlanKey(plan.ID.String()), data, planCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("plan_id", plan.ID.String()).Msg("не удалось обновить кэш плана")
	}
}

// validateInput проверяет обязательные поля на границе вызова.
// Для качественного режима дополнительно требуются имя бизнеса,
// основная аудитория и хотя бы одна цель.
func validateInput(input domain.ContentInput, quality *domain.QualityModeInput) error {
	if strings.TrimSpace(input.BusinessType) == "" ||
		strings.TrimSpace(input.TargetAudience) == "" ||
		strings.TrimSpace(input.ContentGoal) == "" {
		return domain.ErrInvalidInput
	}
	if input.Mode == domain.ModeQuality {
		if quality == nil ||
			strings.TrimSpace(quality.BusinessName) == "" ||
			strings.TrimSpace(quality.PrimaryAudience) == "" ||
			len(quality.Goals) == 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
