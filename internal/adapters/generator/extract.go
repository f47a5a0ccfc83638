package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ma3uR/easy-prompt/internal/domain"
)

// calendarPayload промежуточная схема ответа модели для календаря.
type calendarPayload struct {
	Days []dayPayload `json:"days"`
}

type dayPayload struct {
	DayNumber int      `json:"dayNumber"`
	DayName   string   `json:"dayName"`
	Category  string   `json:"category"`
	Caption   string   `json:"caption"`
	Hashtags  []string `json:"hashtags"`
}

// promptPairPayload промежуточная схема ответа для пары промптов.
// Имена полей совпадают с доменными структурами один-к-одному.
type promptPairPayload struct {
	ImagePrompt *domain.ImagePrompt `json:"imagePrompt"`
	VideoPrompt *domain.VideoPrompt `json:"videoPrompt"`
}

// stripFences убирает маркеры markdown-кода и окружающие пробелы.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// extractJSONCandidate ищет встроенный JSON-объект в свободном тексте.
// Эвристика по первой '{' и последней '}': не полноценный токенизатор,
// может ошибаться, если проза вокруг сама содержит фигурные скобки.
func extractJSONCandidate(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// decodeEmbedded пробует стратегии разбора по очереди: прямой парс
// очищенного текста, затем кандидат по скобкам.
func decodeEmbedded(raw string, out any) error {
	cleaned := stripFences(raw)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	candidate, ok := extractJSONCandidate(cleaned)
	if !ok {
		return domain.NewAIServiceError("invalid response format: в ответе модели нет JSON-объекта")
	}
	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return domain.NewAIServiceError("не удалось разобрать ответ модели: %v; raw: %s", err, truncateForLog(cleaned))
	}
	return nil
}

// parseCalendarPayload извлекает и структурно проверяет календарь:
// ровно 7 дней, иначе ошибка с фактическим количеством. Нераспознанная
// категория дня не валит весь план (замена на дефолтную происходит в маппере).
func parseCalendarPayload(raw string) (calendarPayload, error) {
	var payload calendarPayload
	if err := decodeEmbedded(raw, &payload); err != nil {
		return calendarPayload{}, err
	}
	if payload.Days == nil {
		return calendarPayload{}, domain.NewAIServiceError("в ответе модели нет массива days")
	}
	if len(payload.Days) != domain.DaysPerWeek {
		return calendarPayload{}, domain.NewAIServiceError("модель вернула %d дней вместо 7", len(payload.Days))
	}
	return payload, nil
}

// parsePromptPairPayload извлекает пару промптов. Любая ошибка разбора,
// включая отсутствие одной из половин, терминальна: частичного успеха нет.
func parsePromptPairPayload(raw string) (promptPairPayload, error) {
	var payload promptPairPayload
	if err := decodeEmbedded(raw, &payload); err != nil {
		return promptPairPayload{}, err
	}
	if payload.ImagePrompt == nil || payload.VideoPrompt == nil {
		return promptPairPayload{}, domain.NewAIServiceError("в ответе модели нет imagePrompt или videoPrompt")
	}
	return payload, nil
}

const logTruncateLimit = 500

func truncateForLog(s string) string {
	runes := []rune(s)
	if len(runes) <= logTruncateLimit {
		return s
	}
	return fmt.Sprintf("%s... (%d символов)", string(runes[:logTruncateLimit]), len(runes))
}
