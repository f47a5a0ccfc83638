package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	PlanRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_requests_total",
		Help: "Количество запросов на генерацию недельного плана",
	}, []string{"mode", "language"})

	PlanGenerationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_generation_seconds",
		Help:    "Время генерации недельного плана",
		Buckets: prometheus.DefBuckets,
	})

	PromptPairRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prompt_pair_requests_total",
		Help: "Количество запросов на генерацию пары промптов",
	}, []string{"category"})

	ExtractionFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "extraction_failures_total",
		Help: "Ошибки извлечения JSON из ответа модели",
	}, []string{"kind"})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 25, 30, 45, 60, 90, 120},
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "target", "status"})

	LLMGenerationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_generation_duration_seconds",
		Help:    "Длительность генерации ответа LLM",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})

	LLMTokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Количество токенов, использованных LLM",
	}, []string{"model", "type"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		PlanRequestsTotal,
		PlanGenerationSeconds,
		PromptPairRequestsTotal,
		ExtractionFailuresTotal,
		NetworkRequestDuration,
		NetworkRequestTotal,
		LLMGenerationDuration,
		LLMTokensTotal,
	)
}

// ObserveNetworkRequest фиксирует длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	elapsed := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(elapsed)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}

// ObserveLLMGeneration фиксирует длительность и расход токенов LLM.
func ObserveLLMGeneration(model string, elapsed time.Duration, promptTokens, completionTokens, totalTokens int) {
	LLMGenerationDuration.WithLabelValues(model).Observe(elapsed.Seconds())
	LLMTokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	LLMTokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	LLMTokensTotal.WithLabelValues(model, "total").Add(float64(totalTokens))
}

// IncExtractionFailure фиксирует ошибку извлечения по виду запроса.
func IncExtractionFailure(kind string) {
	ExtractionFailuresTotal.WithLabelValues(kind).Inc()
}

// IncPlanRequest фиксирует запрос на генерацию плана.
func IncPlanRequest(mode, language string) {
	PlanRequestsTotal.WithLabelValues(mode, language).Inc()
}

// IncPromptPairRequest фиксирует запрос на генерацию пары промптов.
func IncPromptPairRequest(category string) {
	PromptPairRequestsTotal.WithLabelValues(category).Inc()
}

// StartServer запускает HTTP сервер с эндпоинтом /metrics.
func StartServer(ctx context.Context, logger zerolog.Logger, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownTimeout); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: graceful shutdown failed")
		}
	}()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("metrics: server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: server stopped")
		}
	}()
}
