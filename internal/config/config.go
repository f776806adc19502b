package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	DatabaseURL string

	// Scheduling policy. Slot duration applies to every provider; the
	// generator itself takes it as a parameter so tests can vary it.
	SlotDurationMinutes int

	// Staff authentication
	StaffJWTSecret string

	// PracticeID scopes the settings store; single-tenant deployments keep
	// the default.
	PracticeID string

	// Redis practice-settings store
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Rate limiting for public endpoints
	RateLimitPerSecond float64
	RateLimitBurst     int

	CORSAllowedOrigins string

	// AWS / LocalStack
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Transcription pipeline
	UseMemoryQueue         bool
	WorkerCount            int
	TranscriptionQueueURL  string
	TranscriptionJobsTable string
	VisitAudioBucket       string
	BedrockModelID         string
	GeminiAPIKey           string
	GeminiModelID          string

	// Email notifications
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SlotDurationMinutes: getEnvAsInt("SLOT_DURATION_MINUTES", 30),

		StaffJWTSecret: getEnv("STAFF_JWT_SECRET", ""),

		PracticeID: getEnv("PRACTICE_ID", "default"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		UseMemoryQueue:         getEnvAsBool("USE_MEMORY_QUEUE", false),
		WorkerCount:            getEnvAsInt("WORKER_COUNT", 2),
		TranscriptionQueueURL:  getEnv("TRANSCRIPTION_QUEUE_URL", ""),
		TranscriptionJobsTable: getEnv("TRANSCRIPTION_JOBS_TABLE", "transcription-jobs"),
		VisitAudioBucket:       getEnv("VISIT_AUDIO_BUCKET", ""),
		BedrockModelID:         getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
		GeminiAPIKey:           getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:          getEnv("GEMINI_MODEL_ID", "gemini-1.5-flash"),

		EmailProvider:     getEnv("EMAIL_PROVIDER", "auto"),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "no-reply@harborhealth.example"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Harbor Health"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
	}
}

// SlotDuration returns the configured slot granularity as a time.Duration.
func (c *Config) SlotDuration() time.Duration {
	minutes := c.SlotDurationMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
