package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenerationMode определяет режим генерации контент-плана.
type GenerationMode string

const (
	// ModeQuick быстрый режим: три свободных поля.
	ModeQuick GenerationMode = "quick"
	// ModeQuality качественный режим: развёрнутый бриф.
	ModeQuality GenerationMode = "quality"
)

// ContentLanguage язык генерируемого контента.
type ContentLanguage string

const (
	// LanguageEnglish контент на английском.
	LanguageEnglish ContentLanguage = "English"
	// LanguageUkrainian контент на украинском.
	LanguageUkrainian ContentLanguage = "Українська"
)

// Code возвращает ISO-код языка.
func (l ContentLanguage) Code() string {
	if l == LanguageUkrainian {
		return "uk"
	}
	return "en"
}

// ContentInput описывает бизнес-данные для генерации недельного плана.
// Значение неизменяемо после передачи в генерацию.
type ContentInput struct {
	ID             uuid.UUID       `json:"id"`
	BusinessType   string          `json:"businessType"`
	TargetAudience string          `json:"targetAudience"`
	ContentGoal    string          `json:"contentGoal"`
	Mode           GenerationMode  `json:"mode"`
	Language       ContentLanguage `json:"language"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// NewContentInput создаёт вход с новым идентификатором.
func NewContentInput(businessType, audience, goal string, mode GenerationMode, language ContentLanguage) ContentInput {
	if language == "" {
		language = LanguageEnglish
	}
	return ContentInput{
		ID:             uuid.New(),
		BusinessType:   businessType,
		TargetAudience: audience,
		ContentGoal:    goal,
		Mode:           mode,
		Language:       language,
		CreatedAt:      time.Now().UTC(),
	}
}

// ContentCategory категория поста в календаре.
type ContentCategory string

const (
	CategoryProduct       ContentCategory = "Product"
	CategoryEducational   ContentCategory = "Educational"
	CategoryBehindScenes  ContentCategory = "Behind the Scenes"
	CategoryUserContent   ContentCategory = "User Content"
	CategoryPromotional   ContentCategory = "Promotional"
	CategoryInspirational ContentCategory = "Inspirational"
	CategoryTrending      ContentCategory = "Trending"
)

// DefaultCategory подставляется вместо нераспознанной категории из ответа модели.
const DefaultCategory = CategoryProduct

// AllCategories перечисляет категории в порядке ротации по неделе.
var AllCategories = []ContentCategory{
	CategoryProduct,
	CategoryEducational,
	CategoryBehindScenes,
	CategoryUserContent,
	CategoryPromotional,
	CategoryInspirational,
	CategoryTrending,
}

// ParseCategory сопоставляет строку из ответа модели с категорией.
// Нераспознанные значения не валят весь план: возвращается DefaultCategory.
func ParseCategory(raw string) (ContentCategory, bool) {
	for _, c := range AllCategories {
		if string(c) == raw {
			return c, true
		}
	}
	return DefaultCategory, false
}

// fallbackStyle используется, если категория не нашлась в таблице стилей.
const fallbackStyle = "professional style"

var categoryPromptStyles = map[ContentCategory]string{
	CategoryProduct:       "professional product photography, studio lighting",
	CategoryEducational:   "clean infographic style, educational diagram",
	CategoryBehindScenes:  "documentary style, candid moment",
	CategoryUserContent:   "authentic user-generated content style",
	CategoryPromotional:   "eye-catching promotional design, bold colors",
	CategoryInspirational: "motivational aesthetic, uplifting mood",
	CategoryTrending:      "viral content style, dynamic and energetic",
}

// PromptStyle возвращает стилевую подсказку категории для генерации промптов.
func (c ContentCategory) PromptStyle() string {
	if style, ok := categoryPromptStyles[c]; ok {
		return style
	}
	return fallbackStyle
}

// DaysPerWeek жёсткий инвариант календаря.
const DaysPerWeek = 7

// DayContent один день контент-плана.
type DayContent struct {
	ID          uuid.UUID       `json:"id"`
	DayNumber   int             `json:"dayNumber"`
	DayName     string          `json:"dayName"`
	Category    ContentCategory `json:"category"`
	Caption     string          `json:"caption"`
	Hashtags    []string        `json:"hashtags"`
	ImagePrompt *ImagePrompt    `json:"imagePrompt,omitempty"`
	VideoPrompt *VideoPrompt    `json:"videoPrompt,omitempty"`
	IsGenerated bool            `json:"isGenerated"`
}

// AttachPrompts прикрепляет сгенерированную пару промптов к дню.
func (d *DayContent) AttachPrompts(image ImagePrompt, video VideoPrompt) {
	d.ImagePrompt = &image
	d.VideoPrompt = &video
	d.IsGenerated = true
}

// WeeklyContent недельный контент-план. Days всегда содержит ровно 7 дней.
type WeeklyContent struct {
	ID          uuid.UUID    `json:"id"`
	Input       ContentInput `json:"input"`
	Days        []DayContent `json:"days"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// Day возвращает день по номеру (1-7).
func (w *WeeklyContent) Day(dayNumber int) (*DayContent, bool) {
	for i := range w.Days {
		if w.Days[i].DayNumber == dayNumber {
			return &w.Days[i], true
		}
	}
	return nil, false
}
