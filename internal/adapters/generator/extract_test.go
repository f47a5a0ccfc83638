package generator

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Ma3uR/easy-prompt/internal/domain"
)

func validDaysJSON() string {
	var days []string
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, name := range names {
		days = append(days, fmt.Sprintf(`{"dayNumber":%d,"dayName":"%s","category":"Product","caption":"caption %d","hashtags":["a","b"]}`, i+1, name, i+1))
	}
	return `{"days":[` + strings.Join(days, ",") + `]}`
}

func TestParseCalendarDirectJSON(t *testing.T) {
	payload, err := parseCalendarPayload(validDaysJSON())
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(payload.Days) != 7 {
		t.Fatalf("ожидали 7 дней, получили %d", len(payload.Days))
	}
}

func TestParseCalendarFencedWithProse(t *testing.T) {
	raw := "Here you go:\n```json\n" + validDaysJSON() + "\n```\nHope it helps!"
	payload, err := parseCalendarPayload(raw)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if payload.Days[0].DayName != "Monday" {
		t.Fatalf("извлечён не тот объект")
	}
}

func TestParseCalendarEmbeddedInProse(t *testing.T) {
	raw := "Sure! The calendar is " + validDaysJSON() + " — enjoy."
	if _, err := parseCalendarPayload(raw); err != nil {
		t.Fatalf("объект внутри прозы должен извлекаться: %v", err)
	}
}

func TestParseCalendarNoBraces(t *testing.T) {
	_, err := parseCalendarPayload("I could not generate anything today")
	var aiErr *domain.AIServiceError
	if !errors.As(err, &aiErr) {
		t.Fatalf("ожидали AIServiceError, получили %v", err)
	}
	if !strings.Contains(err.Error(), "invalid response format") {
		t.Fatalf("ожидали описательную ошибку формата, получили %v", err)
	}
}

func TestParseCalendarWrongDayCount(t *testing.T) {
	for _, count := range []int{5, 9} {
		var days []string
		for i := 0; i < count; i++ {
			days = append(days, fmt.Sprintf(`{"dayNumber":%d,"dayName":"Day","category":"Product","caption":"c","hashtags":[]}`, i+1))
		}
		raw := `{"days":[` + strings.Join(days, ",") + `]}`
		_, err := parseCalendarPayload(raw)
		if err == nil {
			t.Fatalf("календарь из %d дней должен отклоняться", count)
		}
		if !strings.Contains(err.Error(), fmt.Sprintf("%d", count)) {
			t.Fatalf("в ошибке должно быть фактическое количество %d: %v", count, err)
		}
	}
}

func TestParseCalendarMissingDays(t *testing.T) {
	if _, err := parseCalendarPayload(`{"items":[]}`); err == nil {
		t.Fatalf("объект без days должен отклоняться")
	}
}

func TestParsePromptPairValid(t *testing.T) {
	raw := "```json\n" + `{
		"imagePrompt": {
			"prompt": {"subject":"s","environment":"e","style":"st","lighting":"l","camera":{"angle":"a","distance":"d","lens":"85mm"},"colorPalette":["c1","c2","c3"]},
			"negativePrompt": "np",
			"parameters": {"model":"imagen-4","aspectRatio":"16:9","sampleCount":2}
		},
		"videoPrompt": {
			"promptName":"pn","coreContent":"cc",
			"details":{
				"sceneEnvironment":{"setting":"s","features":"f","mood":"m"},
				"subject":{"description":"d","wardrobe":"w","characterConsistency":"cc"},
				"visualStyle":{"aesthetic":"a","resolution":"720p","lighting":"l"},
				"cameraWork":{"composition":"c","cameraMotion":"m","positioning":"front (thats where the camera is)"},
				"audio":{"dialogue":"Speaking directly to camera saying: hi","primarySounds":"ps","ambient":"am","music":"mu"}
			},
			"negativePrompt":"np",
			"visualRules":"No subtitles, no text overlay"
		}
	}` + "\n```"
	payload, err := parsePromptPairPayload(raw)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if payload.ImagePrompt.Prompt.Subject != "s" || payload.VideoPrompt.PromptName != "pn" {
		t.Fatalf("payload разобран неверно: %+v", payload)
	}
}

func TestParsePromptPairMissingHalf(t *testing.T) {
	raw := `{"imagePrompt": {"prompt":{"subject":"s","environment":"e","style":"st","lighting":"l","camera":{"angle":"a","distance":"d"},"colorPalette":[]},"negativePrompt":"","parameters":{}}}`
	if _, err := parsePromptPairPayload(raw); err == nil {
		t.Fatalf("ответ без videoPrompt должен отклоняться целиком")
	}
}

func TestParsePromptPairGarbage(t *testing.T) {
	if _, err := parsePromptPairPayload("{not json at all"); err == nil {
		t.Fatalf("мусор должен отклоняться")
	}
}

func TestMapWeeklyContentCategoryFallback(t *testing.T) {
	raw := strings.Replace(validDaysJSON(), `"category":"Product","caption":"caption 3"`, `"category":"Foo","caption":"caption 3"`, 1)
	payload, err := parseCalendarPayload(raw)
	if err != nil {
		t.Fatalf("нераспознанная категория не должна валить план: %v", err)
	}
	input := domain.NewContentInput("b", "a", "g", domain.ModeQuick, domain.LanguageEnglish)
	plan := mapWeeklyContent(payload, input)
	if plan.Days[2].Category != domain.DefaultCategory {
		t.Fatalf("для дня с категорией Foo ожидали дефолт, получили %q", plan.Days[2].Category)
	}
	if plan.Days[0].Category != domain.CategoryProduct {
		t.Fatalf("остальные дни не должны меняться")
	}
}

func TestMapWeeklyContentFreshIdentity(t *testing.T) {
	payload, _ := parseCalendarPayload(validDaysJSON())
	input := domain.NewContentInput("b", "a", "g", domain.ModeQuick, domain.LanguageEnglish)
	plan := mapWeeklyContent(payload, input)
	if len(plan.Days) != domain.DaysPerWeek {
		t.Fatalf("план должен содержать 7 дней")
	}
	if plan.ID == input.ID {
		t.Fatalf("у плана должна быть собственная идентичность")
	}
	for _, day := range plan.Days {
		if day.IsGenerated || day.ImagePrompt != nil || day.VideoPrompt != nil {
			t.Fatalf("свежий план не должен содержать промптов")
		}
	}
}

func TestMapWeeklyContentRenumbersDays(t *testing.T) {
	var days []string
	numbers := []int{3, 3, 1, 7, 7, 2, 5}
	for _, n := range numbers {
		days = append(days, fmt.Sprintf(`{"dayNumber":%d,"dayName":"Day","category":"Product","caption":"c","hashtags":[]}`, n))
	}
	payload, err := parseCalendarPayload(`{"days":[` + strings.Join(days, ",") + `]}`)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	input := domain.NewContentInput("b", "a", "g", domain.ModeQuick, domain.LanguageEnglish)
	plan := mapWeeklyContent(payload, input)
	for i, day := range plan.Days {
		if day.DayNumber != i+1 {
			t.Fatalf("день на позиции %d должен получить номер %d, получил %d", i, i+1, day.DayNumber)
		}
	}
}

func TestMapPromptPairNormalizes(t *testing.T) {
	payload := promptPairPayload{
		ImagePrompt: &domain.ImagePrompt{},
		VideoPrompt: &domain.VideoPrompt{},
	}
	image, video := mapPromptPair(payload)
	if image.NegativePrompt != domain.DefaultNegativePrompt {
		t.Fatalf("негативный промпт должен подставляться по умолчанию")
	}
	if !strings.Contains(video.Details.CameraWork.Positioning, domain.CameraPositionMarker) {
		t.Fatalf("маркер позиции камеры должен добавляться")
	}
	if !strings.HasSuffix(video.VisualRules, domain.VisualRulesSuffix) {
		t.Fatalf("visual rules должны завершаться запретом субтитров")
	}
}
