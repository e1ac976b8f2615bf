package postgres

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/XSAM/otelsql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

var lock = &sync.Mutex{}
var db *sqlx.DB

// GetDBInstance opens the shared connection for a postgres:// DSN. When the
// DSN carries no password, password is used instead.
func GetDBInstance(dsn, password string) (*sqlx.DB, error) {
	lock.Lock()
	defer lock.Unlock()

	if db != nil {
		log.Info().Str("component", "GetDBInstance").Msg("instance is already created")
		return db, nil
	}

	connURL, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}

	if _, hasPassword := connURL.User.Password(); !hasPassword && password != "" {
		connURL.User = url.UserPassword(connURL.User.Username(), password)
	}

	dbName := ""
	if len(connURL.Path) > 1 {
		dbName = connURL.Path[1:]
	}

	sqlDB, err := otelsql.Open("postgres", connURL.String(),
		otelsql.WithAttributes(
			semconv.DBSystemPostgreSQL,
			semconv.DBNameKey.String(dbName),
		),
		otelsql.WithSpanOptions(otelsql.SpanOptions{
			DisableQuery: true,
		}),
	)
	if err != nil {
		return nil, err
	}

	conn := sqlx.NewDb(sqlDB, "postgres")
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db = conn
	return db, nil
}
