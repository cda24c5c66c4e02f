package util

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port             string        `env:"PORT" envDefault:"8080" validate:"required,number"`
	TokenSecret      string        `env:"TOKEN_SECRET" validate:"required,len=32"`
	TokenKind        string        `env:"TOKEN_KIND" envDefault:"jwt" validate:"oneof=jwt paseto"`
	TokenDuration    time.Duration `env:"TOKEN_DURATION" envDefault:"720h" validate:"gt=0"`
	AllowedOrigins   []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`
	TimeControlsFile string        `env:"TIME_CONTROLS_FILE"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console" validate:"oneof=console json"`
	EgressBuffer     int           `env:"EGRESS_BUFFER" envDefault:"32" validate:"min=1"`
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}
