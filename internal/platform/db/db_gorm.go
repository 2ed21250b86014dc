// Package db opens the gorm database used by the sqlite and postgres storage drivers.
package db

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipebox/internal/platform/jsonstore"
)

// connectTimeout bounds how long startup waits for postgres to accept connections.
const connectTimeout = 60 * time.Second

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config describes a postgres connection.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN returns the postgres key/value connection string for cfg.
func BuildDSN(cfg Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode)
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenPostgres connects to postgres and prepares the collections table.
func OpenPostgres(cfg Config) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), gormConfig())
	})
	if err != nil {
		return nil, err
	}
	return migrate(db)
}

// OpenSQLite opens (creating if needed) the sqlite file at path and prepares
// the collections table. path may be ":memory:".
func OpenSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection also keeps ":memory:" shared
	sqlDB.SetMaxOpenConns(1)
	return migrate(db)
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func migrate(db *gorm.DB) (*gorm.DB, error) {
	if err := jsonstore.MigrateDocuments(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

func gormConfig() *gorm.Config {
	// missing collection rows are expected on first start
	return &gorm.Config{Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})}
}
