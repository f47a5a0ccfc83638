package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию сервисов.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	Port   int    `envconfig:"PORT" default:"8080"`

	OpenAI struct {
		APIKey         string `envconfig:"OPENAI_API_KEY"`
		Endpoint       string `envconfig:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1"`
		Model          string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
		TimeoutSeconds int    `envconfig:"OPENAI_TIMEOUT_SECONDS" default:"30"`
		// MaxRetries зарезервирован интерфейсом конфигурации: клиент
		// делает ровно одну попытку, повтор остаётся за вызывающим.
		MaxRetries int `envconfig:"OPENAI_MAX_RETRIES" default:"3"`
	} `envconfig:""`

	PGDSN string `envconfig:"PG_DSN"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	Rabbit struct {
		URL           string `envconfig:"RABBIT_URL"`
		ManagementURL string `envconfig:"RABBIT_MANAGEMENT_URL"`
	} `envconfig:""`

	Limits struct {
		HistoryMax int `envconfig:"HISTORY_MAX_ITEMS" default:"20"`
	} `envconfig:""`

	Queues struct {
		Prompts string `envconfig:"PROMPT_QUEUE_KEY" default:"prompt_jobs"`
	} `envconfig:""`
}

// Timeout возвращает таймаут запроса к chat completions.
func (c AppConfig) Timeout() time.Duration {
	return time.Duration(c.OpenAI.TimeoutSeconds) * time.Second
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}
