package postgres

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"
)

// Options holds the discrete pieces the connection string is assembled from.
type Options struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Open connects to postgres and verifies the connection with a ping.
func Open(opts Options) (*sql.DB, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(opts.User, opts.Password),
		Host:   fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Path:   opts.Name,
	}
	q := dsn.Query()
	if opts.SSLMode != "" {
		q.Set("sslmode", opts.SSLMode)
	}
	dsn.RawQuery = q.Encode()

	db, err := sql.Open("postgres", dsn.String())
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	return db, nil
}
