package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Settlement configuration
	DefaultFeeBps int32   // Service fee in basis points applied when a pot does not set one
	ResolverIDs   []int64 // User IDs that may resolve pots and disputes

	// Sweep worker configuration
	SweepInterval time.Duration

	// Event feed configuration
	NATSURL string // Empty disables the external event feed

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Settlement defaults
		DefaultFeeBps: 500, // 5% default service fee

		// Sweep worker
		SweepInterval: 1 * time.Minute,

		// Event feed
		NATSURL: os.Getenv("NATS_URL"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if feeBps := os.Getenv("DEFAULT_FEE_BPS"); feeBps != "" {
		if parsedFee, err := strconv.ParseInt(feeBps, 10, 32); err == nil && parsedFee >= 0 && parsedFee <= 10000 {
			config.DefaultFeeBps = int32(parsedFee)
		}
	}
	if interval := os.Getenv("SWEEP_INTERVAL"); interval != "" {
		if parsedInterval, err := time.ParseDuration(interval); err == nil && parsedInterval > 0 {
			config.SweepInterval = parsedInterval
		}
	}

	// Parse resolver user IDs
	if resolverIDs := os.Getenv("RESOLVER_USER_IDS"); resolverIDs != "" {
		idStrings := strings.Split(resolverIDs, ",")
		for _, idStr := range idStrings {
			idStr = strings.TrimSpace(idStr)
			if idStr != "" {
				if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
					config.ResolverIDs = append(config.ResolverIDs, id)
				}
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
