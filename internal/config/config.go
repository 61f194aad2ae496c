package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port                  int
	MaxPrincipal          float64
	MaxRate               float64
	MaxYears              int
	DefaultCommercialRate float64
	DefaultProvidentRate  float64
	OTELEndpoint          string
	OTELServiceName       string
	LogLevel              string
	DevelopmentMode       bool
	GeminiAPIKey          string
	GeminiModel           string
	AdviceTimeout         time.Duration
	AdviceCacheTTL        time.Duration
	RedisAddr             string
	RedisPassword         string
	RateLimitRPS          float64
	RateLimitBurst        int
	ShutdownTimeout       time.Duration
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnvInt("PORT", 8000),
		MaxPrincipal:          getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxRate:               getEnvFloat("MAX_RATE", 36),
		MaxYears:              getEnvInt("MAX_YEARS", 30),
		DefaultCommercialRate: getEnvFloat("DEFAULT_COMMERCIAL_RATE", 3.45),
		DefaultProvidentRate:  getEnvFloat("DEFAULT_PROVIDENT_RATE", 2.85),
		OTELEndpoint:          getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:       getEnvString("OTEL_SERVICE_NAME", "mcp-mortgage-server"),
		LogLevel:              getEnvString("LOG_LEVEL", "INFO"),
		DevelopmentMode:       getEnvBool("DEVELOPMENT_MODE", false),
		GeminiAPIKey:          getEnvString("GEMINI_API_KEY", ""),
		GeminiModel:           getEnvString("GEMINI_MODEL", "gemini-2.5-flash"),
		AdviceTimeout:         getEnvDuration("ADVICE_TIMEOUT", 20*time.Second),
		AdviceCacheTTL:        getEnvDuration("ADVICE_CACHE_TTL", time.Hour),
		RedisAddr:             getEnvString("REDIS_ADDR", ""),
		RedisPassword:         getEnvString("REDIS_PASSWORD", ""),
		RateLimitRPS:          getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:        getEnvInt("RATE_LIMIT_BURST", 20),
		ShutdownTimeout:       getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// AdviceEnabled сообщает, настроен ли генератор советов
func (c *Config) AdviceEnabled() bool {
	return c.GeminiAPIKey != ""
}
