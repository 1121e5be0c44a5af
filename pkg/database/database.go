package database

import (
	"fmt"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hooklinehq/hookline/pkg/config"
)

var (
	conn *gorm.DB
	mu   sync.Mutex
)

// Connect opens the shared database connection. Safe to call once at startup;
// subsequent callers use Conn.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if conn != nil {
		return conn, nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	conn = db
	return conn, nil
}

// Conn returns the shared connection. Panics if Connect was never called,
// which indicates a wiring bug, not a runtime condition.
func Conn() *gorm.DB {
	if conn == nil {
		panic("database connection not initialized")
	}
	return conn
}

// SetConn replaces the shared connection. Used by tests.
func SetConn(db *gorm.DB) {
	mu.Lock()
	defer mu.Unlock()
	conn = db
}
