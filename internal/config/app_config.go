/*
Package config - Seniority Engine Application Configuration

==============================================================================
FILE: internal/config/app_config.go
==============================================================================

DESCRIPTION:
    Central application configuration for the seniority-engine backend.
    Loads settings from environment variables, .env files, and optionally
    from HashiCorp Vault for production secrets management.

USER PERSPECTIVE:
    - Controls server port, database connection, JWT settings
    - Loads engine tuning defaults from a JSON file

DEVELOPER GUIDELINES:
    ✅  OK to modify: Add new configuration fields, new env var mappings
    ⚠️  CAUTION: Changing default values (may affect existing deployments)
    ❌  DO NOT modify: Security-critical defaults without review
    📝  Always add new fields with sensible defaults

SYNTAX EXPLANATION:
    - AppConfig struct: Holds all configuration with mapstructure tags
    - LoadAppConfig(): Entry point called from main.go
    - godotenv.Load(): Loads .env file if present
    - Vault integration: Optional, for production secret management

CONFIGURATION SOURCES (priority order):
    1. HashiCorp Vault (if VAULT_ADDR is set)
    2. Environment variables
    3. .env file
    4. Default values in DefaultAppConfig()

==============================================================================
*/
package config

import (
	"context"
	"fmt"

	"os"
	"strconv"

	"github.com/hashicorp/vault/api"
	"github.com/joho/godotenv"
	"github.com/mergeops/seniority-engine/internal/config/scenario"
)

// AppConfig contains all application configuration
type AppConfig struct {
	// Server configuration
	ServerPort int    `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"ENVIRONMENT"`

	// Database configuration
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBDriver    string `mapstructure:"DB_DRIVER"`

	// JWT configuration
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	JWTRefreshHours    int    `mapstructure:"JWT_REFRESH_HOURS"`

	// Security
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// CORS
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Rate limiting
	RateLimitRequestsPerMinute int `mapstructure:"RATE_LIMIT_REQUESTS_PER_MINUTE"`

	// Scenario engine tuning (loaded from JSON)
	ScenarioConfig *scenario.Config

	// Vault client
	VaultClient *api.Client
}

// DefaultAppConfig returns configuration with default values
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		ServerPort:                 8080,
		Env:                        "development",
		DatabaseURL:                "./seniority_engine.db",
		DBDriver:                   "sqlite",
		JWTSecret:                  "your-secret-key-change-in-production",
		JWTExpirationHours:         24,
		JWTRefreshHours:            168,
		BcryptCost:                 12,
		LogLevel:                   "info",
		CORSAllowedOrigins:         "*",
		RateLimitRequestsPerMinute: 60,
		ScenarioConfig:             scenario.DefaultConfig(),
	}
}

// LoadAppConfig loads all application configuration
func LoadAppConfig(configDir string) (*AppConfig, error) {
	// Load environment variables
	_ = godotenv.Load()

	config := DefaultAppConfig()

	// Load from environment variables
	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.ServerPort = port
		}
	}
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		config.Env = env
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.DatabaseURL = dbURL
	}
	if dbDriver := os.Getenv("DB_DRIVER"); dbDriver != "" {
		config.DBDriver = dbDriver
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.JWTSecret = jwtSecret
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.CORSAllowedOrigins = corsOrigins
	}

	// Load secrets from Vault if configured
	if os.Getenv("VAULT_ADDR") != "" {
		if err := loadFromVault(config); err != nil {
			// Log the error but continue, allowing fallback to env vars
			fmt.Printf("Warning: Could not load secrets from Vault: %v\n", err)
		}
	}

	// Load scenario engine tuning defaults from JSON
	if configDir != "" {
		scenarioLoader := scenario.NewLoader(configDir)
		scenarioConfig, err := scenarioLoader.Load()
		if err != nil {
			return nil, fmt.Errorf("error loading scenario config: %w", err)
		}
		config.ScenarioConfig = scenarioConfig
	}

	return config, nil
}

// loadFromVault connects to Vault and loads secrets.
func loadFromVault(c *AppConfig) error {
	vaultConfig := api.DefaultConfig() // VAULT_ADDR and VAULT_TOKEN are read from env vars

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return fmt.Errorf("failed to create vault client: %w", err)
	}
	c.VaultClient = client

	// Reading secrets from kv-v2 engine at path "secret/seniority-engine"
	secretPath := os.Getenv("VAULT_SECRET_PATH")
	if secretPath == "" {
		secretPath = "secret/data/seniority-engine" // Default path
	}

	secret, err := client.KVv2(secretPath).Get(context.Background(), "")
	if err != nil {
		return fmt.Errorf("failed to read secrets from vault path %s: %w", secretPath, err)
	}

	if dbURL, ok := secret.Data["DATABASE_URL"].(string); ok {
		c.DatabaseURL = dbURL
	}
	if jwtSecret, ok := secret.Data["JWT_SECRET"].(string); ok {
		c.JWTSecret = jwtSecret
	}

	fmt.Println("Successfully loaded secrets from Vault")
	return nil
}

// IsProduction returns true if environment is production
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment returns true if environment is development
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// IsTesting returns true if environment is testing
func (c *AppConfig) IsTesting() bool {
	return c.Env == "testing"
}
