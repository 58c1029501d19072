package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/voyageai/recommender-backend/pkg/config"
	"github.com/voyageai/recommender-backend/pkg/retry"
)

// Client wraps the SQLite connection to the tourism database artifact.
// The file is produced by the external data pipeline; this service only
// reads it.
type Client struct {
	db *sql.DB
}

// NewClient opens the database file and verifies it is readable
func NewClient(cfg *config.DatabaseConfig) (*Client, error) {
	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// The driver is pure Go; a single writerless connection pool is plenty
	// for snapshot loads.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	if _, err := db.Exec("PRAGMA query_only=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set read-only pragma: %w", err)
	}

	err = retry.DoWithNotify(
		context.Background(),
		retry.DefaultConfig(),
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.PingContext(ctx)
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().
				Int("attempt", attempt).
				Err(err).
				Dur("next_delay", nextDelay).
				Msg("SQLite connection attempt failed, retrying")
		},
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite after retries: %w", err)
	}

	log.Info().Str("path", cfg.SQLitePath).Msg("SQLite database opened")
	return &Client{db: db}, nil
}

// DB returns the underlying database connection
func (c *Client) DB() *sql.DB {
	return c.db
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the connection to the database
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
