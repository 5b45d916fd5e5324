package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "fate-inyeon")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Store.Driver != DriverMongo {
		t.Fatalf("expected mongo driver, got %q", cfg.Store.Driver)
	}
	if cfg.Mongo.Database != "fate-inyeon" {
		t.Fatalf("unexpected mongo db %q", cfg.Mongo.Database)
	}
	if cfg.JWT.SignupExpiresIn != time.Hour || cfg.JWT.LoginExpiresIn != 12*time.Hour {
		t.Fatalf("unexpected token lifetimes %+v", cfg.JWT)
	}
	if cfg.Redis.PairLockTTL != 5*time.Second {
		t.Fatalf("unexpected lock ttl %s", cfg.Redis.PairLockTTL)
	}
	if cfg.IsProduction() {
		t.Fatalf("test env must not be production")
	}
}

func TestFromEnv_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HTTP_PORT", " ")

	_, err := FromEnv()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected missing env error, got %v", err)
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") || !strings.Contains(err.Error(), "HTTP_PORT") {
		t.Fatalf("error must list every missing key: %v", err)
	}
}

func TestFromEnv_PostgresNeedsCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")

	_, err := FromEnv()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected missing env error, got %v", err)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "cassandra")
	t.Setenv("JWT_LOGIN_EXPIRES_IN", "forever")

	_, err := FromEnv()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected invalid env error, got %v", err)
	}
	if !strings.Contains(err.Error(), "DB_DRIVER") || !strings.Contains(err.Error(), "JWT_LOGIN_EXPIRES_IN") {
		t.Fatalf("error must list every invalid key: %v", err)
	}
}
