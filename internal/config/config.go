package config

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Store Migration Auth

type Configuration struct {
	Server    Server    `debugmap:"visible"`
	Store     Store     `debugmap:"visible"`
	Migration Migration `debugmap:"visible"`
	Auth      Auth      `debugmap:"visible"`
	LogFormat string    `debugmap:"visible" default:"console" validate:"oneof=console json"`
	LogLevel  string    `debugmap:"visible" default:"debug" validate:"oneof=debug info warn error"`
}

type Server struct {
	ServerMode string `debugmap:"visible" default:"dev" validate:"oneof=dev prod"`
	HTTPPort   int    `debugmap:"visible" default:"8000" validate:"min=1,max=65535"`
}

type Store struct {
	// DSN is a DuckDB database path (":memory:" for an in-memory database) or a postgres:// URL.
	DSN           string `debugmap:"hidden" default:"network-store.duckdb" validate:"required"`
	MaxInListSize int    `debugmap:"visible" default:"1000" validate:"min=1"`
}

type Migration struct {
	NumWorkers int `debugmap:"visible" default:"3" validate:"min=1"`
}

type Auth struct {
	Enabled bool   `debugmap:"visible" default:"false"`
	Secret  string `debugmap:"hidden" validate:"required_if=Enabled true"`
}

// NewConfigurationWithDefaults returns a configuration filled with the default tag values,
// then with opts applied.
func NewConfigurationWithDefaults(opts ...ConfigurationOption) *Configuration {
	c := &Configuration{}
	if err := defaults.Set(c); err != nil {
		panic(fmt.Sprintf("invalid configuration defaults: %v", err))
	}
	return c.WithOptions(opts...)
}

func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
