package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port               string
	MongoDBURI         string
	RedisAddr          string
	RedisPassword      string
	JWTSecret          string
	PaymentSignatureKey string
	PaymentReturnURL   string
	Environment        string
	LogLevel           string
	CORSOrigin         string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnvWithDefault("PORT", "8080"),
		MongoDBURI:          os.Getenv("MONGODB_URI"),
		RedisAddr:           getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		PaymentSignatureKey: os.Getenv("PAYMENT_SIGNATURE_KEY"),
		PaymentReturnURL:    getEnvWithDefault("PAYMENT_RETURN_URL", "http://localhost:3000/payment/result"),
		Environment:         getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
		CORSOrigin:          getEnvWithDefault("CORS_ORIGIN", "http://localhost:3000"),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PaymentSignatureKey == "" {
		return nil, fmt.Errorf("PAYMENT_SIGNATURE_KEY is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
