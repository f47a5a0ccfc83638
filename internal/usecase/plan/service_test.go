package plan

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ma3uR/easy-prompt/internal/domain"
)

type stubRepo struct {
	mu       sync.Mutex
	plans    map[uuid.UUID]domain.WeeklyContent
	saveErr  error
	attached []int
}

func newStubRepo() *stubRepo {
	return &stubRepo{plans: map[uuid.UUID]domain.WeeklyContent{}}
}

func (s *stubRepo) SavePlan(_ context.Context, plan domain.WeeklyContent) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
	return nil
}

func (s *stubRepo) GetPlan(_ context.Context, id uuid.UUID) (domain.WeeklyContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[id]
	if !ok {
		return domain.WeeklyContent{}, domain.ErrPlanNotFound
	}
	return plan, nil
}

func (s *stubRepo) ListHistory(_ context.Context, limit int) ([]domain.WeeklyContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.WeeklyContent
	for _, p := range s.plans {
		if len(out) >= limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubRepo) AttachPrompts(_ context.Context, planID uuid.UUID, dayNumber int, image domain.ImagePrompt, video domain.VideoPrompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[planID]
	if !ok {
		return domain.ErrPlanNotFound
	}
	day, ok := plan.Day(dayNumber)
	if !ok {
		return domain.ErrDayNotFound
	}
	day.AttachPrompts(image, video)
	s.plans[planID] = plan
	s.attached = append(s.attached, dayNumber)
	return nil
}

// snapshotRepo хранит планы сериализованными, как реальное хранилище:
// каждое чтение возвращает независимую копию. beforeAttach имитирует
// параллельного писателя, успевшего закоммитить свой день раньше нас.
type snapshotRepo struct {
	mu           sync.Mutex
	plans        map[uuid.UUID][]byte
	beforeAttach func(plan *domain.WeeklyContent)
}

func newSnapshotRepo() *snapshotRepo {
	return &snapshotRepo{plans: map[uuid.UUID][]byte{}}
}

func (s *snapshotRepo) SavePlan(_ context.Context, plan domain.WeeklyContent) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = data
	return nil
}

func (s *snapshotRepo) GetPlan(_ context.Context, id uuid.UUID) (domain.WeeklyContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.plans[id]
	if !ok {
		return domain.WeeklyContent{}, domain.ErrPlanNotFound
	}
	var plan domain.WeeklyContent
	if err := json.Unmarshal(data, &plan); err != nil {
		return domain.WeeklyContent{}, err
	}
	return plan, nil
}

func (s *snapshotRepo) ListHistory(_ context.Context, limit int) ([]domain.WeeklyContent, error) {
	return nil, nil
}

func (s *snapshotRepo) AttachPrompts(_ context.Context, planID uuid.UUID, dayNumber int, image domain.ImagePrompt, video domain.VideoPrompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.plans[planID]
	if !ok {
		return domain.ErrPlanNotFound
	}
	var plan domain.WeeklyContent
	if err := json.Unmarshal(data, &plan); err != nil {
		return err
	}
	if s.beforeAttach != nil {
		s.beforeAttach(&plan)
	}
	day, ok := plan.Day(dayNumber)
	if !ok {
		return domain.ErrDayNotFound
	}
	day.AttachPrompts(image, video)
	updated, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	s.plans[planID] = updated
	return nil
}

type stubGenerator struct {
	plan      domain.WeeklyContent
	image     domain.ImagePrompt
	video     domain.VideoPrompt
	err       error
	weeklies  int
	promptReq []domain.DayContent
}

func (s *stubGenerator) GenerateWeekly(_ context.Context, input domain.ContentInput, _ *domain.QualityModeInput) (domain.WeeklyContent, error) {
	s.weeklies++
	if s.err != nil {
		return domain.WeeklyContent{}, s.err
	}
	plan := s.plan
	plan.Input = input
	return plan, nil
}

func (s *stubGenerator) GeneratePrompts(_ context.Context, day domain.DayContent, _ domain.ContentInput) (domain.ImagePrompt, domain.VideoPrompt, error) {
	s.promptReq = append(s.promptReq, day)
	if s.err != nil {
		return domain.ImagePrompt{}, domain.VideoPrompt{}, s.err
	}
	return s.image, s.video, nil
}

type stubQueue struct {
	jobs []domain.PromptJob
}

func (s *stubQueue) Enqueue(_ context.Context, job domain.PromptJob) error {
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *stubQueue) Pop(_ context.Context) (domain.PromptJob, error) {
	return domain.PromptJob{}, errors.New("not implemented")
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Once(key string, _ time.Duration, fn func() error) error {
	c.mu.Lock()
	_, exists := c.data[key]
	if !exists {
		c.data[key] = []byte("1")
	}
	c.mu.Unlock()
	if exists {
		return nil
	}
	if err := fn(); err != nil {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return err
	}
	return nil
}

func (c *memoryCache) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return value, nil
}

func testPlan() domain.WeeklyContent {
	days := make([]domain.DayContent, 0, domain.DaysPerWeek)
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, name := range names {
		days = append(days, domain.DayContent{
			ID:        uuid.New(),
			DayNumber: i + 1,
			DayName:   name,
			Category:  domain.AllCategories[i],
			Caption:   "caption",
			Hashtags:  []string{"tag"},
		})
	}
	return domain.WeeklyContent{ID: uuid.New(), Days: days, GeneratedAt: time.Now().UTC()}
}

func quickInput() domain.ContentInput {
	return domain.NewContentInput("Coffee Shop", "Young professionals", "Drive morning traffic", domain.ModeQuick, domain.LanguageEnglish)
}

func TestGenerateWeeklySavesPlan(t *testing.T) {
	repo := newStubRepo()
	gen := &stubGenerator{plan: testPlan()}
	service := NewService(repo, gen, newMemoryCache(), nil, zerolog.Nop(), 20)

	plan, err := service.GenerateWeekly(context.Background(), quickInput(), nil)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(plan.Days) != 7 {
		t.Fatalf("ожидали 7 дней")
	}
	if _, ok := repo.plans[plan.ID]; !ok {
		t.Fatalf("план должен быть сохранён")
	}
}

func TestGenerateWeeklyInvalidQuickInput(t *testing.T) {
	service := NewService(newStubRepo(), &stubGenerator{plan: testPlan()}, nil, nil, zerolog.Nop(), 20)
	input := domain.NewContentInput("", "audience", "goal", domain.ModeQuick, domain.LanguageEnglish)
	_, err := service.GenerateWeekly(context.Background(), input, nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("ожидали ErrInvalidInput, получили %v", err)
	}
}

func TestGenerateWeeklyQualityRequiresBrief(t *testing.T) {
	service := NewService(newStubRepo(), &stubGenerator{plan: testPlan()}, nil, nil, zerolog.Nop(), 20)
	input := domain.NewContentInput("b", "a", "g", domain.ModeQuality, domain.LanguageEnglish)

	cases := []*domain.QualityModeInput{
		nil,
		{PrimaryAudience: "families", Goals: []domain.ContentGoal{domain.GoalSales}},
		{BusinessName: "Bakery", Goals: []domain.ContentGoal{domain.GoalSales}},
		{BusinessName: "Bakery", PrimaryAudience: "families"},
	}
	for i, quality := range cases {
		if _, err := service.GenerateWeekly(context.Background(), input, quality); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("кейс %d: ожидали ErrInvalidInput, получили %v", i, err)
		}
	}

	ok := &domain.QualityModeInput{BusinessName: "Bakery", PrimaryAudience: "families", Goals: []domain.ContentGoal{domain.GoalSales}}
	if _, err := service.GenerateWeekly(context.Background(), input, ok); err != nil {
		t.Fatalf("полный бриф должен проходить: %v", err)
	}
}

func TestGenerateWeeklyGeneratorErrorPropagates(t *testing.T) {
	gen := &stubGenerator{err: domain.NewAIServiceError("модель вернула 5 дней вместо 7")}
	service := NewService(newStubRepo(), gen, nil, nil, zerolog.Nop(), 20)
	_, err := service.GenerateWeekly(context.Background(), quickInput(), nil)
	var aiErr *domain.AIServiceError
	if !errors.As(err, &aiErr) {
		t.Fatalf("ошибка генератора должна пробрасываться без изменений: %v", err)
	}
}

func TestGeneratePromptsForDayAttaches(t *testing.T) {
	repo := newStubRepo()
	stored := testPlan()
	repo.plans[stored.ID] = stored
	gen := &stubGenerator{
		image: domain.ImagePrompt{NegativePrompt: "np"},
		video: domain.VideoPrompt{PromptName: "pn"},
	}
	service := NewService(repo, gen, newMemoryCache(), nil, zerolog.Nop(), 20)

	plan, err := service.GeneratePromptsForDay(context.Background(), stored.ID, 3)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	day, _ := plan.Day(3)
	if !day.IsGenerated || day.ImagePrompt == nil || day.VideoPrompt == nil {
		t.Fatalf("день 3 должен получить промпты")
	}
	other, _ := plan.Day(4)
	if other.IsGenerated {
		t.Fatalf("соседние дни не должны меняться")
	}
	if len(gen.promptReq) != 1 || gen.promptReq[0].DayNumber != 3 {
		t.Fatalf("генератор должен получить именно день 3")
	}
	if len(repo.attached) != 1 || repo.attached[0] != 3 {
		t.Fatalf("прикрепление должно пройти через хранилище")
	}
}

func TestGeneratePromptsForDayKeepsSiblingPrompts(t *testing.T) {
	repo := newSnapshotRepo()
	stored := testPlan()
	if err := repo.SavePlan(context.Background(), stored); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	// Между нашим чтением плана и записью параллельная генерация
	// успевает прикрепить промпты к дню 1.
	repo.beforeAttach = func(plan *domain.WeeklyContent) {
		day, _ := plan.Day(1)
		day.AttachPrompts(domain.ImagePrompt{NegativePrompt: "np1"}, domain.VideoPrompt{PromptName: "pn1"})
	}
	gen := &stubGenerator{
		image: domain.ImagePrompt{NegativePrompt: "np2"},
		video: domain.VideoPrompt{PromptName: "pn2"},
	}
	service := NewService(repo, gen, newMemoryCache(), nil, zerolog.Nop(), 20)

	plan, err := service.GeneratePromptsForDay(context.Background(), stored.ID, 2)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if day, _ := plan.Day(1); !day.IsGenerated {
		t.Fatalf("возвращённый план потерял промпты дня 1")
	}

	fromCache, err := service.GetPlan(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	for _, dayNumber := range []int{1, 2} {
		day, _ := fromCache.Day(dayNumber)
		if !day.IsGenerated || day.VideoPrompt == nil {
			t.Fatalf("GetPlan потерял промпты дня %d, хотя хранилище их содержит", dayNumber)
		}
	}
}

func TestGeneratePromptsForDayUnknownDay(t *testing.T) {
	repo := newStubRepo()
	stored := testPlan()
	repo.plans[stored.ID] = stored
	service := NewService(repo, &stubGenerator{}, nil, nil, zerolog.Nop(), 20)

	if _, err := service.GeneratePromptsForDay(context.Background(), stored.ID, 9); !errors.Is(err, domain.ErrDayNotFound) {
		t.Fatalf("ожидали ErrDayNotFound, получили %v", err)
	}
}

func TestGeneratePromptsForDayUnknownPlan(t *testing.T) {
	service := NewService(newStubRepo(), &stubGenerator{}, nil, nil, zerolog.Nop(), 20)
	if _, err := service.GeneratePromptsForDay(context.Background(), uuid.New(), 1); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("ожидали ErrPlanNotFound, получили %v", err)
	}
}

func TestEnqueuePromptsDeduplicates(t *testing.T) {
	repo := newStubRepo()
	stored := testPlan()
	repo.plans[stored.ID] = stored
	queue := &stubQueue{}
	service := NewService(repo, &stubGenerator{}, newMemoryCache(), queue, zerolog.Nop(), 20)

	if err := service.EnqueuePrompts(context.Background(), stored.ID, 2); err != nil {
		t.Fatalf("первая постановка должна пройти: %v", err)
	}
	if err := service.EnqueuePrompts(context.Background(), stored.ID, 2); !errors.Is(err, ErrPromptJobInFlight) {
		t.Fatalf("повторная постановка должна отклоняться: %v", err)
	}
	if err := service.EnqueuePrompts(context.Background(), stored.ID, 5); err != nil {
		t.Fatalf("другой день ставится независимо: %v", err)
	}
	if len(queue.jobs) != 2 {
		t.Fatalf("ожидали 2 задачи в очереди, получили %d", len(queue.jobs))
	}
}

func TestGetPlanUsesCache(t *testing.T) {
	repo := newStubRepo()
	stored := testPlan()
	repo.plans[stored.ID] = stored
	c := newMemoryCache()
	service := NewService(repo, &stubGenerator{}, c, nil, zerolog.Nop(), 20)

	first, err := service.GetPlan(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}

	// После прогрева кэша хранилище может быть недоступно.
	repo.mu.Lock()
	delete(repo.plans, stored.ID)
	repo.mu.Unlock()

	second, err := service.GetPlan(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("план должен читаться из кэша: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("из кэша вернулся другой план")
	}
}

func TestHistoryLimitClamped(t *testing.T) {
	repo := newStubRepo()
	for i := 0; i < 5; i++ {
		p := testPlan()
		repo.plans[p.ID] = p
	}
	service := NewService(repo, &stubGenerator{}, nil, nil, zerolog.Nop(), 3)
	history, err := service.History(context.Background(), 100)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(history) > 3 {
		t.Fatalf("лимит истории должен ограничиваться, получили %d", len(history))
	}
}
