package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bolzplatz/tippspiel/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	DBURL string

	OpenLigaBaseURL string
	OpenLigaTimeout time.Duration

	// Competitions are feed shortcuts pulled on every sync, e.g. bl1,dfb.
	Competitions []string
	// NoDrawCompetitions are knockout competitions where draws cannot be
	// predicted.
	NoDrawCompetitions []string
	Season             string
	TeamFilter         string
	SyncWorkers        int

	AccessCode       string
	JWTSecret        string
	TokenTTL         time.Duration
	InternalJobToken string

	CORSAllowedOrigins []string
	LogLevel           logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}
	openLigaTimeout, err := getEnvAsDuration("OPENLIGA_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENLIGA_TIMEOUT: %w", err)
	}
	tokenTTL, err := getEnvAsDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("parse TOKEN_TTL: %w", err)
	}
	syncWorkers, err := getEnvAsInt("SYNC_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_WORKERS: %w", err)
	}
	if syncWorkers < 1 {
		return Config{}, fmt.Errorf("SYNC_WORKERS must be at least 1, got %d", syncWorkers)
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "tippspiel"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,

		DBURL: getEnv("DB_URL", ""),

		OpenLigaBaseURL: getEnv("OPENLIGA_BASE_URL", "https://api.openligadb.de"),
		OpenLigaTimeout: openLigaTimeout,

		Competitions:       splitCSV(getEnv("COMPETITIONS", "bl1,dfb")),
		NoDrawCompetitions: splitCSV(getEnv("NO_DRAW_COMPETITIONS", "dfb")),
		Season:             getEnv("SEASON", "2024"),
		TeamFilter:         getEnv("TEAM_FILTER", ""),
		SyncWorkers:        syncWorkers,

		AccessCode:       getEnv("ACCESS_CODE", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenTTL:         tokenTTL,
		InternalJobToken: getEnv("INTERNAL_JOB_TOKEN", ""),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.Competitions) == 0 {
		return Config{}, fmt.Errorf("COMPETITIONS must name at least one competition")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
