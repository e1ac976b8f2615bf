package config

import "github.com/midtrans/midtrans-go"

type MidtransConfig struct {
	ServerKey    string `env:"MIDTRANS_SERVER_KEY"`
	IsProduction bool   `env:"MIDTRANS_IS_PRODUCTION" envDefault:"false"`
	// BaseURL overrides the environment derived API host when set.
	BaseURL string `env:"MIDTRANS_BASE_URL"`
}

func (c MidtransConfig) IsConfigured() bool {
	return c.ServerKey != ""
}

func (c MidtransConfig) Environment() midtrans.EnvironmentType {
	if c.IsProduction {
		return midtrans.Production
	}

	return midtrans.Sandbox
}

func (c MidtransConfig) APIBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}

	return c.Environment().BaseUrl()
}
