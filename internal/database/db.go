package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the application tables when they do not exist yet. It is
// safe to call on every startup: all statements use IF NOT EXISTS.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			event_url        VARCHAR(255) NOT NULL,
			name             VARCHAR(255) NULL,
			start_date       DATE NOT NULL,
			end_date         DATE NOT NULL,
			location_uid     VARCHAR(128) NULL,
			location_name    VARCHAR(255) NULL,
			location_address VARCHAR(512) NULL,
			estimated_time   VARCHAR(64) NULL,
			max_participants INT NULL,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at       DATETIME NULL,
			PRIMARY KEY (event_url)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS user_event_selections (
			id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			username        VARCHAR(128) NOT NULL,
			event_url       VARCHAR(255) NOT NULL,
			selections_json JSON NOT NULL,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			deleted_at      DATETIME NULL,
			PRIMARY KEY (id),
			UNIQUE KEY uq_user_event (username, event_url),
			KEY idx_event_url (event_url)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
