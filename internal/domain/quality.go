package domain

// BusinessKind формат работы бизнеса.
type BusinessKind string

const (
	BusinessOffline BusinessKind = "Offline"
	BusinessOnline  BusinessKind = "Online"
	BusinessMixed   BusinessKind = "Mixed"
)

// ContentGoal цель продвижения в качественном режиме.
type ContentGoal string

const (
	GoalSales     ContentGoal = "Sales"
	GoalBooking   ContentGoal = "Booking/Reservation"
	GoalTraffic   ContentGoal = "Traffic to Store/Website"
	GoalFollowers ContentGoal = "Followers"
	GoalUGC       ContentGoal = "UGC/Reviews"
	GoalLeads     ContentGoal = "Leads (Applications)"
	GoalLaunch    ContentGoal = "Launch/Release"
)

// Platform площадка для публикаций.
type Platform string

const (
	PlatformInstagram      Platform = "Instagram"
	PlatformFacebook       Platform = "Facebook"
	PlatformTikTok         Platform = "TikTok"
	PlatformYouTube        Platform = "YouTube Shorts"
	PlatformLinkedIn       Platform = "LinkedIn"
	PlatformTelegram       Platform = "Telegram"
	PlatformPinterest      Platform = "Pinterest"
	PlatformGoogleBusiness Platform = "Google Business Profile"
)

// SMMCategory тематическая рубрика контента в брифе (20 вариантов).
type SMMCategory string

const (
	SMMProduct              SMMCategory = "Product/Service"
	SMMPromotion            SMMCategory = "Promotion/Special Offer"
	SMMBrandStory           SMMCategory = "Brand Story"
	SMMEducational          SMMCategory = "Educational"
	SMMValues               SMMCategory = "Values/Mission"
	SMMUGCReviews           SMMCategory = "UGC/Reviews"
	SMMBehindScenes         SMMCategory = "Behind the Scenes"
	SMMTrends               SMMCategory = "Trends"
	SMMExpertise            SMMCategory = "Expertise"
	SMMFAQMyths             SMMCategory = "FAQ/Myths"
	SMMStorytelling         SMMCategory = "Storytelling/Cases"
	SMMInteractive          SMMCategory = "Interactive"
	SMMInspiration          SMMCategory = "Inspiration/Motivation"
	SMMEntertainment        SMMCategory = "Entertainment"
	SMMSocialResponsibility SMMCategory = "Social Responsibility"
	SMMAnnouncements        SMMCategory = "Announcements/Events"
	SMMCustomerStories      SMMCategory = "Behind the Customer's Scenes"
	SMMTestDrive            SMMCategory = "Test Drive/Reviews"
	SMMComparisons          SMMCategory = "Comparisons/Alternatives"
	SMMSeasonal             SMMCategory = "Seasonal/Holiday"
)

// MaterialStatus наличие фото и видео материалов у клиента.
type MaterialStatus string

const (
	MaterialsBasic        MaterialStatus = "Have Basic"
	MaterialsProfessional MaterialStatus = "Have Professional"
	MaterialsNone         MaterialStatus = "None"
)

// QualityModeInput развёрнутый бриф для качественного режима.
// Все поля по умолчанию пустые; обязательность отдельных полей проверяется
// на границе usecase, а не в самом типе.
type QualityModeInput struct {
	// Секция 1: база
	BusinessName    string       `json:"businessName"`
	City            string       `json:"city"`
	BusinessKind    BusinessKind `json:"businessKind"`
	YearsInBusiness string       `json:"yearsInBusiness"`
	TeamSize        string       `json:"teamSize"`

	// Секция 2: оффер и УТП
	TopProducts              []string `json:"topProducts"`
	UniqueSellingProposition string   `json:"uniqueSellingProposition"`
	PriceRange               string   `json:"priceRange"`

	// Секция 3: аудитория
	PrimaryAudience   string `json:"primaryAudience"`
	SecondaryAudience string `json:"secondaryAudience"`

	// Секция 4: цели (до 3)
	Goals []ContentGoal `json:"goals"`

	// Секция 5: площадки и частота
	Platforms      []Platform `json:"platforms"`
	PostsPerWeek   int        `json:"postsPerWeek"`
	StoriesPerWeek int        `json:"storiesPerWeek"`

	// Секция 6: тон (до 3 слов)
	ToneWords []string `json:"toneWords"`

	// Секция 7: рубрики (рекомендовано 6-8)
	ContentCategories []SMMCategory `json:"contentCategories"`

	// Секция 8: инфоповоды
	MonthlyHooks string `json:"monthlyHooks"`

	// Секция 9: акции и бюджет
	Promotions        string `json:"promotions"`
	AdvertisingBudget string `json:"advertisingBudget"`

	// Секция 10: материалы
	PhotoVideoStatus MaterialStatus `json:"photoVideoStatus"`
	WhoOnCamera      string         `json:"whoOnCamera"`
	CanUseUGC        bool           `json:"canUseUGC"`

	// Секция 11: ограничения
	Restrictions string `json:"restrictions"`

	// Секция 12: CTA и контакты
	MainCTA     string `json:"mainCTA"`
	ContactInfo string `json:"contactInfo"`

	// Необязательные обогащающие поля
	BrandStory              string   `json:"brandStory"`
	Competitors             string   `json:"competitors"`
	Geography               string   `json:"geography"`
	PeakDays                string   `json:"peakDays"`
	TopFAQs                 []string `json:"topFAQs"`
	Hashtags                string   `json:"hashtags"`
	PotentialCollaborations string   `json:"potentialCollaborations"`
}
