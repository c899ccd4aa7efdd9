package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env            string        `env:"ENV" env-default:"dev"`
	HTTPPort       string        `env:"HTTP_PORT" env-default:"8080"`
	DatabaseURL    string        `env:"DATABASE_URL" env-required:"true"`
	JWTSecret      string        `env:"JWT_SECRET" env-required:"true"`
	RedisAddr      string        `env:"REDIS_ADDR" env-default:""`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DBConnMaxIdle  time.Duration `env:"DB_CONN_MAX_IDLE" env-default:"5m"`
	DBConnMaxLife  time.Duration `env:"DB_CONN_MAX_LIFE" env-default:"30m"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
}

// MustLoad reads configuration from the environment. If this returns,
// the required values are present.
func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %v", err)
	}
	return &cfg
}
