package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Razorpay gateway configuration
	RazorpayBaseURL   string
	RazorpayKeyID     string
	RazorpayKeySecret string

	// OTPLESS provider configuration
	OTPLessBaseURL      string
	OTPLessClientID     string
	OTPLessClientSecret string
	OTPChannel          string
	OTPLength           int
	OTPExpiryMinutes    int

	// Auth
	JWTSecret string

	// Booking configuration
	SlotHoldTimeout time.Duration
	EarningsZone    string

	// Asset storage
	S3Bucket string

	// Rate limiting
	OTPRequestsPerMinute int

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Razorpay
		RazorpayBaseURL:   getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),

		// OTPLESS
		OTPLessBaseURL:      getEnv("OTPLESS_BASE_URL", "https://auth.otpless.app"),
		OTPLessClientID:     getEnv("OTPLESS_CLIENT_ID", ""),
		OTPLessClientSecret: getEnv("OTPLESS_CLIENT_SECRET", ""),
		OTPChannel:          getEnv("OTP_CHANNEL", "SMS"),
		OTPLength:           getEnvAsInt("OTP_LENGTH", 6),
		OTPExpiryMinutes:    getEnvAsInt("OTP_EXPIRY_MINUTES", 5),

		// Auth
		JWTSecret: getEnv("JWT_SECRET", ""),

		// Booking
		SlotHoldTimeout: getEnvAsDuration("SLOT_HOLD_TIMEOUT", "5m"),
		EarningsZone:    getEnv("EARNINGS_TIMEZONE", "Asia/Kolkata"),

		// Assets
		S3Bucket: getEnv("S3_BUCKET_NAME", "turf-assets"),

		// Rate limiting
		OTPRequestsPerMinute: getEnvAsInt("OTP_REQUESTS_PER_MINUTE", 5),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
