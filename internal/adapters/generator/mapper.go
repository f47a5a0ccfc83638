package generator

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ma3uR/easy-prompt/internal/domain"
)

// mapWeeklyContent превращает проверенный промежуточный payload в доменный
// план: свежая идентичность, отметка времени, промпты отсутствуют.
func mapWeeklyContent(payload calendarPayload, input domain.ContentInput) domain.WeeklyContent {
	days := make([]domain.DayContent, 0, domain.DaysPerWeek)
	for i, d := range payload.Days {
		category, _ := domain.ParseCategory(d.Category)
		// Номер дня назначается по позиции: модель может вернуть
		// дубликаты или номера вразнобой, а адресация промптов в
		// хранилище идёт по слоту массива.
		days = append(days, domain.DayContent{
			ID:          uuid.New(),
			DayNumber:   i + 1,
			DayName:     d.DayName,
			Category:    category,
			Caption:     d.Caption,
			Hashtags:    d.Hashtags,
			ImagePrompt: nil,
			VideoPrompt: nil,
			IsGenerated: false,
		})
	}
	return domain.WeeklyContent{
		ID:          uuid.New(),
		Input:       input,
		Days:        days,
		GeneratedAt: time.Now().UTC(),
	}
}

// mapPromptPair нормализует пару промптов под жёсткие контракты провайдеров.
// Схема payload совпадает с доменной, дополнительного преобразования нет.
func mapPromptPair(payload promptPairPayload) (domain.ImagePrompt, domain.VideoPrompt) {
	image := *payload.ImagePrompt
	video := *payload.VideoPrompt
	image.Normalize()
	video.Normalize()
	return image, video
}
