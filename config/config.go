package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServicePort       string `env:"SERVICE_PORT" envDefault:"8080"`
	MetricsPort       string `env:"METRICS_PORT" envDefault:"9090"`
	MidtransConfig    MidtransConfig
	RecordStoreConfig RecordStoreConfig
	TracingConfig     TracingConfig
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf, err := Parse()
	if err != nil {
		log.Error().Err(err).Str("component", "CreateNewConfig").Msg("")
	}

	return conf
}

// Parse reads the process environment into a Config without touching .env.
func Parse() (*Config, error) {
	conf := Config{}
	if err := env.Parse(&conf); err != nil {
		return &conf, err
	}

	return &conf, nil
}
