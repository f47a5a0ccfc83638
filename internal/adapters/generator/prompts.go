package generator

import (
	"fmt"
	"strings"

	"github.com/Ma3uR/easy-prompt/internal/domain"
)

// Построение промптов: чистые функции без I/O. Три вида запросов —
// недельный календарь (quick), недельный календарь (quality) и
// пара image/video промптов для одного дня.

const ukrainianCalendarInstruction = `IMPORTANT: Generate ALL content in Ukrainian language (Українська мова).
- Captions must be in Ukrainian
- Hashtags should be in Ukrainian (transliterated if needed for platform compatibility)
- Use Ukrainian cultural context and references where appropriate
- Maintain natural Ukrainian language flow and expressions`

const englishCalendarInstruction = "Generate content in English language."

const calendarSchemaBlock = `{
    "days": [
        {
            "dayNumber": 1,
            "dayName": "Monday",
            "category": "Product",
            "caption": "Engaging caption text here",
            "hashtags": ["hashtag1", "hashtag2", "hashtag3", "hashtag4", "hashtag5"]
        }
    ]
}`

const qualityModeDirectives = `

QUALITY MODE - Use ALL provided data to create highly personalized content:
- Match the exact tone/style words provided
- Focus on the specific goals selected
- Use only the content categories chosen
- Incorporate any news hooks or seasonal events mentioned
- Align with the specified platforms and posting frequency
- Respect any restrictions or taboo topics
- Include the specified CTA in posts
- Consider the material resources available
- Target the specific audience segments provided`

// CalendarSystemPrompt собирает системный промпт генерации календаря.
// Параметризован режимом и языком.
func CalendarSystemPrompt(mode domain.GenerationMode, language domain.ContentLanguage) string {
	languageInstruction := englishCalendarInstruction
	if language == domain.LanguageUkrainian {
		languageInstruction = ukrainianCalendarInstruction
	}

	basePrompt := fmt.Sprintf(`You are an expert social media content strategist with deep knowledge of SMM categories and engagement patterns.

Generate a 7-day content calendar based on the provided business information.

%s

Requirements:
- Create diverse content across different categories
- Each day should have a unique angle/approach
- Captions should be engaging and platform-appropriate
- Include 5-7 relevant hashtags per post
- Ensure brand voice consistency throughout

Output MUST be valid JSON matching this exact structure:
%s

Categories to use (rotate throughout week):
- Product/Service showcase
- Educational/How-to content
- Behind the scenes
- User-generated content
- Promotional offers
- Inspirational/Motivational
- Trending topics/challenges`, languageInstruction, calendarSchemaBlock)

	if mode == domain.ModeQuality {
		return basePrompt + qualityModeDirectives
	}
	return basePrompt
}

// QuickUserPrompt собирает пользовательский промпт быстрого режима из трёх
// свободных полей.
func QuickUserPrompt(input domain.ContentInput) string {
	languageNote := ""
	if input.Language == domain.LanguageUkrainian {
		languageNote = "\nLANGUAGE: Generate all content in Ukrainian (captions and hashtags in Ukrainian)."
	}

	return fmt.Sprintf(`Business Type: %s
Target Audience: %s
Content Goal: %s%s

Generate a 7-day content calendar with diverse, engaging posts.
IMPORTANT: Return ONLY valid JSON, no additional text or explanation.

Return as JSON matching this EXACT structure:
%s

Ensure all 7 days are included with unique, engaging content.`,
		input.BusinessType, input.TargetAudience, input.ContentGoal, languageNote, calendarSchemaBlock)
}

// QualityUserPrompt сериализует развёрнутый бриф в один составной блок.
// Пустые элементы списков отфильтровываются, множества склеиваются запятыми.
func QualityUserPrompt(data domain.QualityModeInput, language domain.ContentLanguage) string {
	languageNote := ""
	if language == domain.LanguageUkrainian {
		languageNote = "\n\nIMPORTANT: Generate ALL content in Ukrainian language. Captions, hashtags, and any text must be in Ukrainian."
	}

	canUseUGC := "No"
	if data.CanUseUGC {
		canUseUGC = "Yes"
	}

	brandStory := ""
	if data.BrandStory != "" {
		brandStory = "BRAND STORY: " + data.BrandStory
	}

	return fmt.Sprintf(`Create a comprehensive 7-day content plan using this detailed business brief%s:

BUSINESS: %s in %s (%s)
Team: %s people, %s years in business

OFFERING:
- Products/Services: %s
- USP: %s
- Price Range: %s

AUDIENCE:
- Primary: %s
- Secondary: %s

GOALS: %s

PLATFORMS: %s
Frequency: %d posts/week, %d stories/week

TONE/STYLE: %s

CONTENT CATEGORIES: %s

NEWS HOOKS: %s
PROMOTIONS: %s

MATERIALS: %s
Can use UGC: %s

RESTRICTIONS: %s

CTA: %s
CONTACT: %s

%s

Create content that perfectly aligns with this brief. Each post should feel authentic to the brand and resonate with the target audience.`,
		languageNote,
		data.BusinessName, data.City, data.BusinessKind,
		data.TeamSize, data.YearsInBusiness,
		joinNonEmpty(data.TopProducts),
		data.UniqueSellingProposition,
		data.PriceRange,
		data.PrimaryAudience,
		data.SecondaryAudience,
		joinGoals(data.Goals),
		joinPlatforms(data.Platforms),
		data.PostsPerWeek, data.StoriesPerWeek,
		joinNonEmpty(data.ToneWords),
		joinSMMCategories(data.ContentCategories),
		data.MonthlyHooks,
		data.Promotions,
		data.PhotoVideoStatus,
		canUseUGC,
		data.Restrictions,
		data.MainCTA,
		data.ContactInfo,
		brandStory)
}

// promptPairSystemPrompt кодирует две выходные схемы и жёсткие требования
// VEO3 и Imagen 4. Фиксированный текст, не зависит от входа.
const promptPairSystemPrompt = `You are an expert prompt engineer specializing in Google's VEO3 and Imagen 4 models, trained on the latest best practices and research.

CRITICAL VEO3 Requirements (8 FUNDAMENTALS):
1. **Subject Definition**: Clear, specific character/object description with consistency markers
2. **Camera Positioning**: MUST use "(thats where the camera is)" syntax with physical placement
3. **Location/Setting**: Specific environment with features and mood
4. **Action Description**: Single focused action with movement quality descriptors (confident, energetic, deliberate)
5. **Lighting Style**: Cinematic specifications (three-point, golden hour, chiaroscuro)
6. **Audio Elements**: All 4 layers REQUIRED:
   - dialogue: "Speaking directly to camera saying: [exact words]" (20-30 words max for 8 seconds)
   - primary_sounds: Activity-specific audio
   - ambient: Environmental atmosphere
   - music: Genre and mood (optional but recommended)
7. **Movement Quality**: Describe HOW actions happen (smooth, frantic, graceful)
8. **Visual Rules**: ALWAYS end with "No subtitles, no text overlay"

VEO3 Technical Specs:
- 8-second duration at 24fps (192 frames total)
- 720p standard, 1080p enhanced, 4K maximum quality
- Professional camera terms: dolly, tracking, orbit, crane shots
- Lens specs enhance quality: "85mm portrait", "24mm wide angle"

CRITICAL Imagen 4 Requirements (Based on Latest Research):
1. **Hierarchical Structure**: [Image Type] + [Main Subject] + [Environment] + [Style/Composition]
2. **Subject First**: AI prioritizes earlier words - place subject immediately after image type
3. **Technical Quality Markers**: Include "8K", "photorealistic", "highly detailed", "professional"
4. **Photography Terms**: Specify lens ("35mm", "macro"), composition ("rule of thirds"), depth ("shallow DOF")
5. **Lighting Specifications**: "golden hour", "soft box lighting", "dramatic rim light"
6. **Color Palette**: Define 3-5 specific colors for consistency
7. **Negative Prompts**: "blurry, distorted, low quality, watermark, jpeg artifacts, extra limbs"
8. **Aspect Ratio**: Specify in parameters (16:9 for landscape, 9:16 for vertical)

Imagen 4 Quality Benchmarks:
- Token limit: 512 optimal (content beyond is ignored)
- Focus on 3-5 main visual elements (more causes clutter)
- CLIP Score target > 0.85 for alignment
- Aesthetic Score target > 7.0/10

Generate prompts that are:
- Specific and concrete (no abstract concepts)
- Technically precise (use professional terminology)
- Contextually relevant to the business and content
- Optimized for each model's strengths

Return ONLY valid JSON matching the expected structure.`

const promptPairSchemaBlock = `{
    "imagePrompt": {
        "prompt": {
            "subject": "detailed subject description",
            "environment": "environment description",
            "style": "visual style",
            "lighting": "lighting setup",
            "camera": {
                "angle": "camera angle",
                "distance": "shot distance",
                "lens": "lens type"
            },
            "colorPalette": ["color1", "color2", "color3"]
        },
        "negativePrompt": "things to avoid",
        "parameters": {
            "model": "imagen-4",
            "aspectRatio": "16:9",
            "sampleCount": 2
        }
    },
    "videoPrompt": {
        "promptName": "prompt name",
        "coreContent": "core concept",
        "details": {
            "sceneEnvironment": {
                "setting": "setting description",
                "features": "features",
                "mood": "mood"
            },
            "subject": {
                "description": "subject description",
                "wardrobe": "wardrobe details",
                "characterConsistency": "consistency notes"
            },
            "visualStyle": {
                "aesthetic": "aesthetic style",
                "resolution": "720p",
                "lighting": "lighting description"
            },
            "cameraWork": {
                "composition": "composition rules",
                "cameraMotion": "camera movement",
                "positioning": "camera position (thats where the camera is)"
            },
            "audio": {
                "dialogue": "Speaking directly to camera saying: [words]",
                "primarySounds": "primary sounds",
                "ambient": "ambient sounds",
                "music": "background music"
            }
        },
        "negativePrompt": "things to avoid",
        "visualRules": "No subtitles, no text overlay"
    }
}`

// PromptPairSystemPrompt возвращает фиксированный системный промпт для
// генерации пары image/video промптов.
func PromptPairSystemPrompt() string {
	return promptPairSystemPrompt
}

// PromptPairUserPrompt описывает конкретный день и бизнес-контекст.
// Стилевая подсказка берётся из таблицы категорий.
func PromptPairUserPrompt(day domain.DayContent, input domain.ContentInput) string {
	languageNote := ""
	if input.Language == domain.LanguageUkrainian {
		languageNote = "\n- Language: Ukrainian (Generate prompts that will create Ukrainian content)"
	}

	return fmt.Sprintf(`Business Context:
- Type: %s
- Audience: %s
- Goal: %s%s

Content Details:
- Day: %s
- Category: %s
- Caption: %s
- Hashtags: %s

Generate optimized VEO3 video prompt and Imagen 4 image prompt for this content.
Style reference: %s

Return ONLY valid JSON matching this structure:
%s`,
		input.BusinessType, input.TargetAudience, input.ContentGoal, languageNote,
		day.DayName, day.Category, day.Caption, strings.Join(day.Hashtags, ", "),
		day.Category.PromptStyle(), promptPairSchemaBlock)
}

func joinNonEmpty(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, ", ")
}

func joinGoals(goals []domain.ContentGoal) string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		out = append(out, string(g))
	}
	return strings.Join(out, ", ")
}

func joinPlatforms(platforms []domain.Platform) string {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, string(p))
	}
	return strings.Join(out, ", ")
}

func joinSMMCategories(categories []domain.SMMCategory) string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return strings.Join(out, ", ")
}
