package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/beyondgbrowse/snowgate/internal/config"
	"github.com/beyondgbrowse/snowgate/internal/pkg/logger"
)

// SQLiteDriverName is the database/sql driver registered by modernc.org/sqlite
const SQLiteDriverName = "sqlite"

// SQLiteDB wraps an embedded SQLite database
type SQLiteDB struct {
	DB *sqlx.DB
}

// NewSQLite opens the database at cfg.Path and applies schema
func NewSQLite(ctx context.Context, cfg config.SQLiteConfig, schema string) (*SQLiteDB, error) {
	db, err := sqlx.Open(SQLiteDriverName, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// each connection to an in-memory database sees its own copy
	if isMemory(cfg.Path) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	if schema != "" {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
		}
	}

	logger.Info("opened SQLite database", zap.String("path", cfg.Path))

	return &SQLiteDB{DB: db}, nil
}

// Ping checks the database
func (db *SQLiteDB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Close closes the database
func (db *SQLiteDB) Close() error {
	if db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
