package generator

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ma3uR/easy-prompt/internal/domain"
	"github.com/Ma3uR/easy-prompt/internal/infra/metrics"
	"github.com/Ma3uR/easy-prompt/internal/infra/openai"
)

type completionClient interface {
	Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}

const (
	calendarTemperature = 0.7
	// Пониженная температура ради консистентности структур промптов.
	promptPairTemperature = 0.3
	maxCompletionTokens   = 3000
)

// OpenAI реализует domain.Generator через Chat Completions.
type OpenAI struct {
	client  completionClient
	timeout time.Duration
	log     zerolog.Logger
}

var _ domain.Generator = (*OpenAI)(nil)

// NewOpenAI создаёт генератор контент-планов.
func NewOpenAI(client completionClient, timeout time.Duration, logger zerolog.Logger) *OpenAI {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{client: client, timeout: timeout, log: logger}
}

// GenerateWeekly строит недельный план по бизнес-данным. В качественном
// режиме пользовательский промпт сериализует весь бриф.
func (g *OpenAI) GenerateWeekly(ctx context.Context, input domain.ContentInput, quality *domain.QualityModeInput) (domain.WeeklyContent, error) {
	system := CalendarSystemPrompt(input.Mode, input.Language)
	var user string
	if input.Mode == domain.ModeQuality && quality != nil {
		user = QualityUserPrompt(*quality, input.Language)
	} else {
		user = QuickUserPrompt(input)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.client.Complete(ctx, system, user, calendarTemperature, maxCompletionTokens)
	if err != nil {
		return domain.WeeklyContent{}, g.wrapClientError(err)
	}

	payload, err := parseCalendarPayload(raw)
	if err != nil {
		metrics.IncExtractionFailure("calendar")
		g.log.Error().Err(err).Str("raw", truncateForLog(raw)).Msg("генерация календаря: невалидный ответ модели")
		return domain.WeeklyContent{}, err
	}
	return mapWeeklyContent(payload, input), nil
}

// GeneratePrompts строит пару image/video промптов для одного дня.
// Частичного успеха нет: любая ошибка разбора терминальна.
func (g *OpenAI) GeneratePrompts(ctx context.Context, day domain.DayContent, input domain.ContentInput) (domain.ImagePrompt, domain.VideoPrompt, error) {
	system := PromptPairSystemPrompt()
	user := PromptPairUserPrompt(day, input)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.client.Complete(ctx, system, user, promptPairTemperature, maxCompletionTokens)
	if err != nil {
		return domain.ImagePrompt{}, domain.VideoPrompt{}, g.wrapClientError(err)
	}

	payload, err := parsePromptPairPayload(raw)
	if err != nil {
		metrics.IncExtractionFailure("prompt_pair")
		g.log.Error().Err(err).Str("raw", truncateForLog(raw)).Msg("генерация промптов: невалидный ответ модели")
		return domain.ImagePrompt{}, domain.VideoPrompt{}, err
	}
	image, video := mapPromptPair(payload)
	return image, video, nil
}

// wrapClientError переводит ошибки клиента в доменную таксономию.
func (g *OpenAI) wrapClientError(err error) error {
	var transport *openai.TransportError
	if errors.As(err, &transport) {
		return &domain.NetworkError{Err: transport.Err}
	}
	if errors.Is(err, openai.ErrMissingAPIKey) {
		return domain.NewAIServiceError("OpenAI API key не сконфигурирован")
	}
	return domain.NewAIServiceError("%v", err)
}
