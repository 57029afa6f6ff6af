package config

import (
	"strings"
	"testing"
	"time"
)

func productionConfig() *Config {
	return &Config{
		Environment:          EnvProduction,
		LogLevel:             "info",
		SessionAuthKey:       strings.Repeat("a", 32),
		SessionEncryptionKey: strings.Repeat("b", 16),
		CORSAllowedOrigins:   "https://shop.example.com",
	}
}

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid production config", func(*Config) {}, ""},
		{"non-production skips checks", func(c *Config) {
			c.Environment = EnvDevelopment
			c.SessionAuthKey = ""
		}, ""},
		{"short auth key", func(c *Config) { c.SessionAuthKey = "short" }, "SESSION_AUTH_KEY"},
		{"short encryption key", func(c *Config) { c.SessionEncryptionKey = "short" }, "SESSION_ENCRYPTION_KEY"},
		{"debug logging", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
		{"wildcard CORS", func(c *Config) { c.CORSAllowedOrigins = "*" }, "CORS_ALLOWED_ORIGINS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := productionConfig()
			tt.mutate(cfg)

			err := ValidateForProduction(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %s, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DishInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		wantErr  bool
	}{
		{"default", 250 * time.Millisecond, false},
		{"zero", 0, true},
		{"negative", -time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&Config{KitchenDishInterval: tt.interval})
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "KITCHEN_DISH_INTERVAL") {
					t.Fatalf("expected KITCHEN_DISH_INTERVAL error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDescribe_HidesSecrets(t *testing.T) {
	cfg := productionConfig()
	cfg.DatabaseURL = "postgres://shop:s3cret@db:5432/reactiveshop"
	cfg.SessionAuthKey = "cookie-signing-key-do-not-print!"

	out := Describe(cfg)

	if strings.Contains(out, "s3cret") || strings.Contains(out, cfg.SessionAuthKey) {
		t.Fatalf("secret leaked into %q", out)
	}
	if !strings.Contains(out, "xxxxxx:xxxxxx@db:5432") {
		t.Fatalf("database URL not masked in %q", out)
	}
	if !strings.Contains(out, "https://shop.example.com") {
		t.Fatalf("non-secret setting missing from %q", out)
	}
}

func TestValidateForProduction_ReportsEveryBrokenRule(t *testing.T) {
	cfg := productionConfig()
	cfg.SessionAuthKey = ""
	cfg.CORSAllowedOrigins = "*"

	err := ValidateForProduction(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"SESSION_AUTH_KEY", "CORS_ALLOWED_ORIGINS"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
