package domain

import (
	"encoding/json"
	"strings"
)

// Константы целевых генеративных моделей. Не выбираются моделью чата.
const (
	ImageModelTag    = "imagen-4"
	ImageAspectRatio = "16:9"
	ImageSampleCount = 2

	VideoTargetModel = "VEO3"
	VideoVersion     = 1.0
)

// CameraPositionMarker обязан буквально присутствовать в поле positioning
// видео-промпта: так VEO3 понимает физическое размещение камеры.
const CameraPositionMarker = "(thats where the camera is)"

// VisualRulesSuffix завершает visual_rules каждого видео-промпта.
const VisualRulesSuffix = "No subtitles, no text overlay"

// DefaultNegativePrompt подставляется, если модель не вернула негативный промпт.
const DefaultNegativePrompt = "blurry, distorted, low quality, watermark, jpeg artifacts, extra limbs"

// defaultColorPalette дополняет палитру до минимума из трёх цветов.
var defaultColorPalette = []string{"neutral tones", "soft white", "deep contrast"}

const (
	minPaletteSize = 3
	maxPaletteSize = 5
)

// CameraSettings параметры съёмки для изображения.
type CameraSettings struct {
	Angle    string `json:"angle"`
	Distance string `json:"distance"`
	Lens     string `json:"lens,omitempty"`
}

// ImagePromptStructure структурное описание кадра.
type ImagePromptStructure struct {
	Subject      string         `json:"subject"`
	Environment  string         `json:"environment"`
	Style        string         `json:"style"`
	Lighting     string         `json:"lighting"`
	Camera       CameraSettings `json:"camera"`
	ColorPalette []string       `json:"colorPalette"`
}

// ImageParameters фиксированные параметры генерации Imagen.
type ImageParameters struct {
	Model       string `json:"model"`
	AspectRatio string `json:"aspectRatio"`
	SampleCount int    `json:"sampleCount"`
	Seed        *int   `json:"seed,omitempty"`
}

// ImagePrompt промпт для генерации изображения под Imagen 4.
type ImagePrompt struct {
	Prompt         ImagePromptStructure `json:"prompt"`
	NegativePrompt string               `json:"negativePrompt"`
	Parameters     ImageParameters      `json:"parameters"`
}

// Normalize приводит промпт к жёстким контрактам Imagen:
// фиксированные параметры, палитра 3-5 цветов, непустой негативный промпт.
func (p *ImagePrompt) Normalize() {
	p.Parameters.Model = ImageModelTag
	p.Parameters.AspectRatio = ImageAspectRatio
	p.Parameters.SampleCount = ImageSampleCount
	if strings.TrimSpace(p.NegativePrompt) == "" {
		p.NegativePrompt = DefaultNegativePrompt
	}
	palette := make([]string, 0, maxPaletteSize)
	for _, color := range p.Prompt.ColorPalette {
		if trimmed := strings.TrimSpace(color); trimmed != "" {
			palette = append(palette, trimmed)
		}
	}
	for i := 0; len(palette) < minPaletteSize; i++ {
		palette = append(palette, defaultColorPalette[i%len(defaultColorPalette)])
	}
	if len(palette) > maxPaletteSize {
		palette = palette[:maxPaletteSize]
	}
	p.Prompt.ColorPalette = palette
}

// AssembledPrompt собирает однострочное описание кадра для instances[0].prompt.
func (p ImagePrompt) AssembledPrompt() string {
	lens := p.Prompt.Camera.Lens
	if lens == "" {
		lens = "professional camera"
	}
	var b strings.Builder
	b.WriteString(p.Prompt.Subject)
	b.WriteString(" in ")
	b.WriteString(p.Prompt.Environment)
	b.WriteString(", ")
	b.WriteString(p.Prompt.Style)
	b.WriteString(", ")
	b.WriteString(p.Prompt.Lighting)
	b.WriteString(", shot with ")
	b.WriteString(lens)
	b.WriteString(", ")
	b.WriteString(p.Prompt.Camera.Angle)
	b.WriteString(" angle, ")
	b.WriteString(p.Prompt.Camera.Distance)
	b.WriteString(" shot, color palette: ")
	b.WriteString(strings.Join(p.Prompt.ColorPalette, ", "))
	b.WriteString(", 8K, photorealistic, highly detailed")
	return b.String()
}

// AsJSON сериализует промпт в целевую схему провайдера изображений.
// Ключи отсортированы, вывод отформатирован: одинаковый вход даёт
// байт-в-байт одинаковый результат.
func (p ImagePrompt) AsJSON() string {
	var seed any
	if p.Parameters.Seed != nil {
		seed = *p.Parameters.Seed
	}
	payload := map[string]any{
		"instances": []any{
			map[string]any{"prompt": p.AssembledPrompt()},
		},
		"parameters": map[string]any{
			"sampleCount":    p.Parameters.SampleCount,
			"aspectRatio":    p.Parameters.AspectRatio,
			"negativePrompt": p.NegativePrompt,
			"seed":           seed,
		},
	}
	return marshalStable(payload)
}

// SceneEnvironment окружение сцены видео.
type SceneEnvironment struct {
	Setting  string `json:"setting"`
	Features string `json:"features"`
	Mood     string `json:"mood"`
}

// SubjectDescription описание субъекта в кадре.
type SubjectDescription struct {
	Description          string `json:"description"`
	Wardrobe             string `json:"wardrobe,omitempty"`
	CharacterConsistency string `json:"characterConsistency"`
}

// VisualStyle визуальная стилистика видео.
type VisualStyle struct {
	Aesthetic  string `json:"aesthetic"`
	Resolution string `json:"resolution"`
	Lighting   string `json:"lighting"`
}

// CameraWork операторская работа. Positioning обязан содержать
// CameraPositionMarker.
type CameraWork struct {
	Composition  string `json:"composition"`
	CameraMotion string `json:"cameraMotion"`
	Positioning  string `json:"positioning"`
}

// AudioLayers четыре слоя звука VEO3. Music необязателен.
type AudioLayers struct {
	Dialogue      string `json:"dialogue,omitempty"`
	PrimarySounds string `json:"primarySounds"`
	Ambient       string `json:"ambient"`
	Music         string `json:"music,omitempty"`
}

// VideoDetails детальная структура видео-промпта.
type VideoDetails struct {
	SceneEnvironment SceneEnvironment   `json:"sceneEnvironment"`
	Subject          SubjectDescription `json:"subject"`
	VisualStyle      VisualStyle        `json:"visualStyle"`
	CameraWork       CameraWork         `json:"cameraWork"`
	Audio            AudioLayers        `json:"audio"`
}

// VideoPrompt промпт для генерации видео под VEO3.
type VideoPrompt struct {
	PromptName     string       `json:"promptName"`
	CoreContent    string       `json:"coreContent"`
	Details        VideoDetails `json:"details"`
	NegativePrompt string       `json:"negativePrompt"`
	VisualRules    string       `json:"visualRules"`
}

// Normalize приводит промпт к жёстким контрактам VEO3: маркер позиции
// камеры, завершающее правило про субтитры, дефолтное разрешение.
func (p *VideoPrompt) Normalize() {
	if !strings.Contains(p.Details.CameraWork.Positioning, CameraPositionMarker) {
		positioning := strings.TrimSpace(p.Details.CameraWork.Positioning)
		if positioning == "" {
			p.Details.CameraWork.Positioning = CameraPositionMarker
		} else {
			p.Details.CameraWork.Positioning = positioning + " " + CameraPositionMarker
		}
	}
	rules := strings.TrimSpace(p.VisualRules)
	if !strings.HasSuffix(rules, VisualRulesSuffix) {
		if rules == "" {
			rules = VisualRulesSuffix
		} else {
			rules = strings.TrimRight(rules, ".") + ". " + VisualRulesSuffix
		}
	}
	p.VisualRules = rules
	if strings.TrimSpace(p.Details.VisualStyle.Resolution) == "" {
		p.Details.VisualStyle.Resolution = "720p"
	}
	if strings.TrimSpace(p.NegativePrompt) == "" {
		p.NegativePrompt = DefaultNegativePrompt
	}
}

// AsJSON сериализует промпт в целевую схему видео-провайдера.
// Детали и вся вложенность идут со snake_case ключами, отсортированными
// и отформатированными детерминированно.
func (p VideoPrompt) AsJSON() string {
	var wardrobe any
	if p.Details.Subject.Wardrobe != "" {
		wardrobe = p.Details.Subject.Wardrobe
	}
	var dialogue any
	if p.Details.Audio.Dialogue != "" {
		dialogue = p.Details.Audio.Dialogue
	}
	var music any
	if p.Details.Audio.Music != "" {
		music = p.Details.Audio.Music
	}
	payload := map[string]any{
		"prompt_name":     p.PromptName,
		"version":         VideoVersion,
		"target_ai_model": VideoTargetModel,
		"core_concept":    p.CoreContent,
		"details": map[string]any{
			"scene_environment": map[string]any{
				"setting":  p.Details.SceneEnvironment.Setting,
				"features": p.Details.SceneEnvironment.Features,
				"mood":     p.Details.SceneEnvironment.Mood,
			},
			"subject": map[string]any{
				"description":           p.Details.Subject.Description,
				"wardrobe":              wardrobe,
				"character_consistency": p.Details.Subject.CharacterConsistency,
			},
			"visual_style": map[string]any{
				"aesthetic":  p.Details.VisualStyle.Aesthetic,
				"resolution": p.Details.VisualStyle.Resolution,
				"lighting":   p.Details.VisualStyle.Lighting,
			},
			"camera_work": map[string]any{
				"composition":   p.Details.CameraWork.Composition,
				"camera_motion": p.Details.CameraWork.CameraMotion,
				"positioning":   p.Details.CameraWork.Positioning,
			},
			"audio": map[string]any{
				"dialogue":       dialogue,
				"primary_sounds": p.Details.Audio.PrimarySounds,
				"ambient":        p.Details.Audio.Ambient,
				"music":          music,
			},
		},
		"negative_prompt": p.NegativePrompt,
		"visual_rules":    p.VisualRules,
	}
	return marshalStable(payload)
}

// marshalStable выдаёт отсортированный pretty-printed JSON.
// encoding/json сортирует ключи map детерминированно.
func marshalStable(payload map[string]any) string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
