package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ma3uR/easy-prompt/internal/adapters/generator"
	"github.com/Ma3uR/easy-prompt/internal/adapters/repo"
	"github.com/Ma3uR/easy-prompt/internal/domain"
	"github.com/Ma3uR/easy-prompt/internal/infra/cache"
	"github.com/Ma3uR/easy-prompt/internal/infra/config"
	"github.com/Ma3uR/easy-prompt/internal/infra/db"
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
		log.Fatal().Err(err).Msg("worker: нет подключения к БД")
	}
	defer pool.Close()

	repoAdapter := repo.NewPostgres(pool)
	if err := repoAdapter.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("worker: не удалось подготовить схему")
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
			log.Fatal().Err(err).Msg("worker: не удалось создать очередь RabbitMQ")
		}
		promptQueue = rabbitQueue
	}
	if promptQueue == nil {
		log.Fatal().Msg("worker: не задан ни REDIS_ADDR, ни RABBIT_URL")
	}

	client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Endpoint, cfg.OpenAI.Model, cfg.Timeout())
	gen := generator.NewOpenAI(client, cfg.Timeout(), logger.With().Str("component", "generator").Logger())
	service := planusecase.NewService(repoAdapter, gen, planCache, promptQueue, logger.With().Str("component", "plan_service").Logger(), cfg.Limits.HistoryMax)

	go metrics.StartServer(ctx, logger, cfg.Port)

	logger.Info().Str("queue", cfg.Queues.Prompts).Msg("воркер промптов запущен")
	run(ctx, logger, promptQueue, service)
	logger.Info().Msg("воркер остановлен")
}

// run обрабатывает задачи до отмены контекста. Ошибка одной задачи
// не останавливает цикл.
func run(ctx context.Context, logger zerolog.Logger, promptQueue domain.PromptQueue, service domain.PlanService) {
	for {
		job, err := promptQueue.Pop(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			logger.Error().Err(err).Msg("не удалось прочитать задачу из очереди")
			continue
		}
		if _, err := service.GeneratePromptsForDay(ctx, job.PlanID, job.DayNumber); err != nil {
			logger.Error().Err(err).
				Str("plan_id", job.PlanID.String()).
				Int("day", job.DayNumber).
				Msg("задача генерации промптов завершилась ошибкой")
			continue
		}
		logger.Info().
			Str("plan_id", job.PlanID.String()).
			Int("day", job.DayNumber).
			Msg("промпты для дня сгенерированы")
	}
}
