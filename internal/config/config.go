package config

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env           string        `yaml:"env" env-default:"local"`
	UserAgent     string        `yaml:"user_agent" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"`
	Sources       []string      `yaml:"sources" env-default:"olx,xt,xbikers" validate:"min=1"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" env-default:"10s"`
	RunOnce       bool          `yaml:"run_once" env-default:"false"`
	CrawlInterval time.Duration `yaml:"crawl_interval" env-default:"0s"`
	Notifications bool          `yaml:"notifications" env-default:"true"`
	RabbitMQ      `yaml:"rabbitmq"`
	Redis         `yaml:"redis"`
}

type RabbitMQ struct {
	URL       string `yaml:"url" env:"RABBITMQ_URL" env-required:"true" validate:"required"`
	QueueName string `yaml:"queue_name" env-default:"parsed_bicycle_ads"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR" env-default:"redis:6379" validate:"required"`
	Db   int    `yaml:"db" env-default:"0"`
}

func MustLoad(configPath string) *Config {
	// проверка существования файла
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", configPath)
	}

	if err := validator.New().Struct(cfg); err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	return &cfg
}
