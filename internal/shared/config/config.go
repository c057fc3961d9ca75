// Package config loads runtime settings from the environment, with an
// optional .env file in the working directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Generation GenerationConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	NAT        NATConfig
}

type ServerConfig struct {
	Address      string `validate:"required,hostname_port"`
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type LoggingConfig struct {
	Level      string `validate:"oneof=debug info warn error"`
	JSONFormat bool
}

type StorageConfig struct {
	Driver string `validate:"oneof=sqlite3 postgres"`
	DSN    string `validate:"required"`
}

type CacheConfig struct {
	Enabled bool
	Dir     string // empty keeps the cache in memory
	TTL     time.Duration
}

type GenerationConfig struct {
	Workers  int `validate:"gte=1"`
	MaxBatch int `validate:"gte=1"`
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64 `validate:"gt=0"`
	BurstSize         int     `validate:"gte=1"`
}

type CORSConfig struct {
	AllowedOrigins []string `validate:"min=1"`
}

type NATConfig struct {
	Enabled bool
	Lease   time.Duration
}

var validate = validator.New()

// Load reads .env if present, then the environment, and validates the
// result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("ignoring unreadable .env file", "error", err)
	}
	return FromEnv()
}

// FromEnv builds a config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server:     loadServerConfig(),
		Logging:    loadLoggingConfig(),
		Storage:    loadStorageConfig(),
		Cache:      loadCacheConfig(),
		Generation: loadGenerationConfig(),
		RateLimit:  loadRateLimitConfig(),
		CORS:       loadCORSConfig(),
		NAT:        loadNATConfig(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Address:      getEnv("SERVER_ADDRESS", "0.0.0.0:8080"),
		ReadTimeout:  time.Duration(getInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(getInt("SERVER_WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		IdleTimeout:  time.Duration(getInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		JSONFormat: getBool("LOG_JSON", false),
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Driver: getEnv("STORAGE_DRIVER", "sqlite3"),
		DSN:    getEnv("STORAGE_DSN", "stellar-forge.db"),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getBool("CACHE_ENABLED", true),
		Dir:     getEnv("CACHE_DIR", ""),
		TTL:     time.Duration(getInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
	}
}

func loadGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Workers:  getInt("GENERATION_WORKERS", runtime.NumCPU()),
		MaxBatch: getInt("GENERATION_MAX_BATCH", 1000),
	}
}

func loadRateLimitConfig() RateLimitConfig {
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil {
		rps = 20
	}
	return RateLimitConfig{
		Enabled:           getBool("RATE_LIMIT_ENABLED", true),
		RequestsPerSecond: rps,
		BurstSize:         getInt("RATE_LIMIT_BURST", 40),
	}
}

func loadCORSConfig() CORSConfig {
	var origins []string
	for _, o := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return CORSConfig{AllowedOrigins: origins}
}

func loadNATConfig() NATConfig {
	return NATConfig{
		Enabled: getBool("NAT_ENABLED", false),
		Lease:   time.Duration(getInt("NAT_LEASE_MINUTES", 120)) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
