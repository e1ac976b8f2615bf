package config

import "strings"

type RecordStoreConfig struct {
	URL        string `env:"SUPABASE_URL"`
	ServiceKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
}

func (c RecordStoreConfig) IsConfigured() bool {
	return c.URL != "" && c.ServiceKey != ""
}

// IsPostgres reports whether URL is a Postgres DSN rather than a PostgREST host.
func (c RecordStoreConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://")
}

type TracingConfig struct {
	CollectorHost string `env:"COLLECTOR_HOST"`
}
