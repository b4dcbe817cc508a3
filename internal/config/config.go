package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Organizer backend (the app's main API, which owns the data)
	OrganizerAPIURL string

	// Place search
	PlacesAPIURL string
	PlacesAPIKey string
	PlacesLat    float64
	PlacesLon    float64
	PlacesRadius int

	// AI fallback
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	AIVoiceEnabled bool

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache
	CacheTTL time.Duration

	// Observability
	OTLPEndpoint string

	// JWT / Auth
	JWTSecret string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		OrganizerAPIURL: getEnv("ORGANIZER_API_URL", "http://localhost:3000"),

		PlacesAPIURL: getEnv("PLACES_API_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesAPIKey: getEnv("PLACES_API_KEY", ""),
		PlacesLat:    getEnvFloat("PLACES_LAT", -25.4411),
		PlacesLon:    getEnvFloat("PLACES_LON", -49.2670),
		PlacesRadius: getEnvInt("PLACES_RADIUS", 2000),

		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AIVoiceEnabled: getEnv("AI_VOICE_ENABLED", "true") == "true",

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 50),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		JWTSecret: getEnv("JWT_SECRET", "voice-bfv-default-dev-secret-change-me"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
