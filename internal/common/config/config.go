package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"*"`
	}

	Postgres struct {
		URL string `env:"DATABASE_URL,required"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string `env:"BOT_TOKEN,required"`

		// Max accepted age of init data, in seconds. 0 disables the check.
		InitDataTTL int `env:"INITDATA_TTL" envDefault:"0"`
	}
}

// InitDataTTL returns the configured freshness window as a duration.
func (c *Config) InitDataTTL() time.Duration {
	return time.Duration(c.Telegram.InitDataTTL) * time.Second
}

func Load() (*Config, error) {
	// В production окружении переменные могут быть установлены напрямую,
	// поэтому отсутствие .env файла не является ошибкой
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
