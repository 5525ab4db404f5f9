package config

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"testing"
	"time"
)

func setKeyEnv(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate test key: %v", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to marshal public key: %v", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})

	t.Setenv("JWT_PUBLIC_KEY", string(publicPEM))
	t.Setenv("JWT_PRIVATE_KEY", string(privatePEM))
}

func TestLoad(t *testing.T) {
	setKeyEnv(t)

	ctx := context.Background()
	cfg, err := Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	// Test default values
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected Server.Port to be '8080', got '%s'", cfg.Server.Port)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected Server.Host to be '0.0.0.0', got '%s'", cfg.Server.Host)
	}

	if cfg.Server.ReadTimeout.Duration != 15*time.Second {
		t.Errorf("Expected Server.ReadTimeout to be 15s, got %v", cfg.Server.ReadTimeout.Duration)
	}

	if cfg.Postgres.Host != "localhost" {
		t.Errorf("Expected Postgres.Host to be 'localhost', got '%s'", cfg.Postgres.Host)
	}

	if cfg.Postgres.MigrationsURL != "file://migrations" {
		t.Errorf("Expected Postgres.MigrationsURL to be 'file://migrations', got '%s'", cfg.Postgres.MigrationsURL)
	}

	if cfg.Redis.Host != "localhost" {
		t.Errorf("Expected Redis.Host to be 'localhost', got '%s'", cfg.Redis.Host)
	}

	if cfg.JWT.Issuer != "taskdeck" {
		t.Errorf("Expected JWT.Issuer to be 'taskdeck', got '%s'", cfg.JWT.Issuer)
	}

	if cfg.JWT.AccessTokenExpiry.Duration != 15*time.Minute {
		t.Errorf("Expected JWT.AccessTokenExpiry to be 15m, got %v", cfg.JWT.AccessTokenExpiry.Duration)
	}

	if cfg.JWT.RefreshTokenExpiry.Duration != 7*24*time.Hour {
		t.Errorf("Expected JWT.RefreshTokenExpiry to be 7d, got %v", cfg.JWT.RefreshTokenExpiry.Duration)
	}

	if cfg.Security.BCryptCost != 12 {
		t.Errorf("Expected Security.BCryptCost to be 12, got %d", cfg.Security.BCryptCost)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be 'development', got '%s'", cfg.Env)
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Error("Expected CORS.AllowedOrigins to have at least one value")
	}
}

func TestLoad_MissingKeys(t *testing.T) {
	os.Unsetenv("JWT_PUBLIC_KEY")
	os.Unsetenv("JWT_PRIVATE_KEY")

	if _, err := Load(context.Background()); err == nil {
		t.Error("Expected error when JWT keys are not set")
	}
}

func TestLoad_InvalidKeyPEM(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY", "not a pem")
	t.Setenv("JWT_PRIVATE_KEY", "not a pem")

	if _, err := Load(context.Background()); err == nil {
		t.Error("Expected error for unparseable key PEM")
	}
}

func TestDuration_EnvDecode(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"30s", 30 * time.Second},
		{"15m", 15 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		var d Duration
		if err := d.EnvDecode(context.Background(), tt.input); err != nil {
			t.Errorf("EnvDecode(%q) returned error: %v", tt.input, err)
			continue
		}
		if d.Duration != tt.want {
			t.Errorf("EnvDecode(%q) = %v, want %v", tt.input, d.Duration, tt.want)
		}
	}
}

func TestDuration_EnvDecodeInvalid(t *testing.T) {
	var d Duration
	if err := d.EnvDecode(context.Background(), "xd"); err == nil {
		t.Error("Expected error for invalid days value")
	}
	if err := d.EnvDecode(context.Background(), "bogus"); err == nil {
		t.Error("Expected error for invalid duration")
	}
}
