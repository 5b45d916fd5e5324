package postgres

import (
	"context"
	"errors"
	"testing"

	"fate-inyeon/internal/config"
)

func TestDSN_EscapesCredentials(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "fate",
		DBUser:     "app",
		DBPassword: "p@ss word",
		DBSSLMode:  "disable",
	})
	want := "postgres://app:p%40ss%20word@db:5432/fate?sslmode=disable"
	if got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}

func TestPool_NilIsSafe(t *testing.T) {
	var p *Pool
	if err := p.Ping(context.Background()); !errors.Is(err, ErrNilPool) {
		t.Fatalf("expected ErrNilPool, got %v", err)
	}
	var n int
	if err := p.QueryRow(context.Background(), "SELECT 1").Scan(&n); !errors.Is(err, ErrNilPool) {
		t.Fatalf("expected ErrNilPool, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
