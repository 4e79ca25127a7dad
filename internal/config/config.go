package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/pricing"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/service"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Discount DiscountConfig
	Order    OrderConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys []string // Valid API keys for authentication
}

type DiscountConfig struct {
	CodeFiles []string // Extra discount code files, plain or gzipped
}

// OrderConfig selects the workflow policy. DiscountPolicy and ItemValidation,
// when set, override the corresponding field of the named preset.
type OrderConfig struct {
	Policy         string
	DiscountPolicy string
	ItemValidation string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"apitest"}),
		},
		Discount: DiscountConfig{
			CodeFiles: getEnvAsSlice("DISCOUNT_CODE_FILES", nil),
		},
		Order: OrderConfig{
			Policy:         getEnv("ORDER_POLICY", "legacy"),
			DiscountPolicy: os.Getenv("DISCOUNT_POLICY"),
			ItemValidation: os.Getenv("ITEM_VALIDATION"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if _, err := c.Order.Resolve(); err != nil {
		return err
	}

	return nil
}

// Resolve builds the workflow policy from the preset and its overrides
func (o OrderConfig) Resolve() (service.Policy, error) {
	policy, err := service.PolicyByName(o.Policy)
	if err != nil {
		return service.Policy{}, err
	}

	if o.DiscountPolicy != "" {
		p, err := pricing.ParseDiscountPolicy(o.DiscountPolicy)
		if err != nil {
			return service.Policy{}, err
		}
		policy.UnknownDiscount = p
	}

	if o.ItemValidation != "" {
		v, err := service.ParseItemValidation(o.ItemValidation)
		if err != nil {
			return service.Policy{}, err
		}
		policy.ItemValidation = v
	}

	return policy, nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
