package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Ma3uR/easy-prompt/internal/adapters/generator"
	"github.com/Ma3uR/easy-prompt/internal/adapters/repo"
	"github.com/Ma3uR/easy-prompt/internal/domain"
	"github.com/Ma3uR/easy-prompt/internal/infra/cache"
	"github.com/Ma3uR/easy-prompt/internal/infra/config"
	"github.com/Ma3uR/easy-prompt/internal/infra/db"
	httpinfra "github.com/Ma3uR/easy-prompt/internal/infra/http"
	applog "github.com/Ma3uR/easy-prompt/internal/infra/log"
	"github.com/Ma3uR/easy-prompt/internal/infra/metrics"
	"github.com/Ma3uR/easy-prompt/internal/infra/openai"
	"github.com/Ma3uR/easy-prompt/internal/infra/queue"
	planusecase "github.com/Ma3uR/easy-prompt/internal/usecase/plan"
)

func main() {
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(cfg.PGDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("api: нет подключения к БД")
	}
	defer pool.Close()

	repoAdapter := repo.NewPostgres(pool)
	if err := repoAdapter.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("api: не удалось подготовить схему")
	}

	var planCache domain.Cache
	var promptQueue domain.PromptQueue
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		planCache = cache.NewRedis(redisClient)
		promptQueue = queue.NewRedisPromptQueue(redisClient, cfg.Queues.Prompts)
	}
	if cfg.Rabbit.URL != "" {
		rabbitQueue, err := queue.NewRabbitPromptQueue(cfg.Rabbit.URL, cfg.Rabbit.ManagementURL, cfg.Queues.Prompts)
		if err != nil {
			log.Fatal().Err(err).Msg("api: не удалось создать очередь RabbitMQ")
		}
		promptQueue = rabbitQueue
	}

	client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Endpoint, cfg.OpenAI.Model, cfg.Timeout())
	gen := generator.NewOpenAI(client, cfg.Timeout(), logger.With().Str("component", "generator").Logger())
	service := planusecase.NewService(repoAdapter, gen, planCache, promptQueue, logger.With().Str("component", "plan_service").Logger(), cfg.Limits.HistoryMax)

	server := httpinfra.NewServer(logger)
	registerRoutes(server.Router, service)

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.Start(":" + strconv.Itoa(cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("api: сервер остановился с ошибкой")
	}
}

type generateRequest struct {
	BusinessType   string                   `json:"businessType"`
	TargetAudience string                   `json:"targetAudience"`
	ContentGoal    string                   `json:"contentGoal"`
	Mode           string                   `json:"mode"`
	Language       string                   `json:"language"`
	Quality        *domain.QualityModeInput `json:"quality,omitempty"`
}

func registerRoutes(r chi.Router, service domain.PlanService) {
	r.Route("/api/v1/plans", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			defer req.Body.Close()
			var body generateRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			input := domain.NewContentInput(body.BusinessType, body.TargetAudience, body.ContentGoal, parseMode(body.Mode), parseLanguage(body.Language))
			plan, err := service.GenerateWeekly(req.Context(), input, body.Quality)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, plan)
		})

		r.Get("/history", func(w http.ResponseWriter, req *http.Request) {
			limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
			history, err := service.History(req.Context(), limit)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			if history == nil {
				history = []domain.WeeklyContent{}
			}
			writeJSON(w, http.StatusOK, map[string]any{"history": history})
		})

		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, err := uuid.Parse(chi.URLParam(req, "id"))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid plan id")
				return
			}
			plan, err := service.GetPlan(req.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, plan)
		})

		r.Post("/{id}/days/{dayNumber}/prompts", func(w http.ResponseWriter, req *http.Request) {
			id, err := uuid.Parse(chi.URLParam(req, "id"))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid plan id")
				return
			}
			dayNumber, err := strconv.Atoi(chi.URLParam(req, "dayNumber"))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid day number")
				return
			}
			if req.URL.Query().Get("async") == "1" {
				if err := service.EnqueuePrompts(req.Context(), id, dayNumber); err != nil {
					writeDomainError(w, err)
					return
				}
				writeJSON(w, http.StatusAccepted, map[string]string{"status": "enqueued"})
				return
			}
			plan, err := service.GeneratePromptsForDay(req.Context(), id, dayNumber)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, plan)
		})

		r.Get("/{id}/days/{dayNumber}/payloads", func(w http.ResponseWriter, req *http.Request) {
			id, err := uuid.Parse(chi.URLParam(req, "id"))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid plan id")
				return
			}
			dayNumber, err := strconv.Atoi(chi.URLParam(req, "dayNumber"))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid day number")
				return
			}
			plan, err := service.GetPlan(req.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			day, ok := plan.Day(dayNumber)
			if !ok {
				writeDomainError(w, domain.ErrDayNotFound)
				return
			}
			if day.ImagePrompt == nil || day.VideoPrompt == nil {
				writeError(w, http.StatusConflict, "prompts are not generated for this day yet")
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"image": json.RawMessage(day.ImagePrompt.AsJSON()),
				"video": json.RawMessage(day.VideoPrompt.AsJSON()),
			})
		})
	})
}

func parseMode(raw string) domain.GenerationMode {
	if raw == string(domain.ModeQuality) {
		return domain.ModeQuality
	}
	return domain.ModeQuick
}

func parseLanguage(raw string) domain.ContentLanguage {
	switch raw {
	case "uk", "ukrainian", string(domain.LanguageUkrainian):
		return domain.LanguageUkrainian
	default:
		return domain.LanguageEnglish
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	var aiErr *domain.AIServiceError
	var netErr *domain.NetworkError
	var storageErr *domain.StorageError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPlanNotFound), errors.Is(err, domain.ErrDayNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, planusecase.ErrPromptJobInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &netErr):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &aiErr):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &storageErr):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
