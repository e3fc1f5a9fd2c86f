package database

import (
	"testing"
	"time"

	"tasktrack/internal/models"

	"gorm.io/gorm/logger"
)

func TestDefaultPoolConfig(t *testing.T) {
	config := DefaultPoolConfig()

	if config.Driver != "sqlite" {
		t.Errorf("Expected Driver to be 'sqlite', got %s", config.Driver)
	}

	if config.MaxOpenConns != 25 {
		t.Errorf("Expected MaxOpenConns to be 25, got %d", config.MaxOpenConns)
	}

	if config.MaxIdleConns != 10 {
		t.Errorf("Expected MaxIdleConns to be 10, got %d", config.MaxIdleConns)
	}

	if config.ConnMaxLifetime != time.Hour {
		t.Errorf("Expected ConnMaxLifetime to be 1 hour, got %v", config.ConnMaxLifetime)
	}

	if config.ConnMaxIdleTime != time.Minute*30 {
		t.Errorf("Expected ConnMaxIdleTime to be 30 minutes, got %v", config.ConnMaxIdleTime)
	}
}

func TestNewDatabasePool_WithNilConfig(t *testing.T) {
	_, err := NewDatabasePool(nil)

	if err == nil {
		t.Error("Expected error due to empty DSN, got nil")
	}
}

func TestNewDatabasePool_UnsupportedDriver(t *testing.T) {
	config := &PoolConfig{
		Driver: "oracle",
		DSN:    "whatever",
	}

	_, err := NewDatabasePool(config)

	if err == nil {
		t.Error("Expected error for unsupported driver, got nil")
	}
}

func TestNewDatabasePool_InMemorySQLite(t *testing.T) {
	config := &PoolConfig{
		Driver:          "sqlite",
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute * 30,
		ConnMaxIdleTime: time.Minute * 15,
		LogLevel:        logger.Silent,
	}

	pool, err := NewDatabasePool(config)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer pool.Close()

	if err := pool.Health(); err != nil {
		t.Errorf("Expected healthy pool, got: %v", err)
	}

	if err := pool.Migrate(); err != nil {
		t.Fatalf("Expected migration to succeed, got: %v", err)
	}

	// Migration must be idempotent across restarts.
	if err := pool.Migrate(); err != nil {
		t.Errorf("Expected repeated migration to succeed, got: %v", err)
	}

	user := models.User{Username: "alice", Password: "hash"}
	if err := pool.DB.Create(&user).Error; err != nil {
		t.Fatalf("Expected user insert to succeed, got: %v", err)
	}

	if user.ID == 0 {
		t.Error("Expected autoincrement ID to be assigned")
	}
}

func TestDatabasePool_Stats_WithoutConnection(t *testing.T) {
	pool := &DatabasePool{
		DB: nil,
		config: &PoolConfig{
			MaxOpenConns: 10,
		},
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Stats() should handle nil DB gracefully, but got panic: %v", r)
		}
	}()

	stats := pool.Stats()

	if _, hasError := stats["error"]; !hasError {
		t.Error("Expected error in stats when DB is nil")
	}
}

func TestDatabasePool_Health_WithoutConnection(t *testing.T) {
	pool := &DatabasePool{
		DB: nil,
	}

	if err := pool.Health(); err == nil {
		t.Error("Expected error when checking health with nil DB")
	}
}

func TestDatabasePool_Close_WithoutConnection(t *testing.T) {
	pool := &DatabasePool{
		DB: nil,
	}

	if err := pool.Close(); err != nil {
		t.Errorf("Expected Close with nil DB to be a no-op, got: %v", err)
	}
}
