package config

import "testing"

func setRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PAYMENT_SIGNATURE_KEY", "test-key")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, expected default 8080", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, expected development", cfg.Environment)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment should be true by default")
	}
}

func TestLoadConfigMissingMongo(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGODB_URI", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when MONGODB_URI is missing")
	}
}

func TestLoadConfigMissingPaymentKey(t *testing.T) {
	setRequired(t)
	t.Setenv("PAYMENT_SIGNATURE_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when PAYMENT_SIGNATURE_KEY is missing")
	}
}

func TestIsProduction(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction should be true")
	}
}
