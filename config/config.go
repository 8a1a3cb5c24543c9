package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Gemini     GeminiConfig
	Documents  DocumentsConfig
	Classifier ClassifierConfig
	App        AppConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

type GeminiConfig struct {
	URL           string
	APIKey        string
	UseADC        bool
	Timeout       time.Duration
	RateLimit     float64
	RateBurst     int
	RetryAttempts int
}

type DocumentsConfig struct {
	Dir string
}

type ClassifierConfig struct {
	KeywordsFile string
}

type AppConfig struct {
	ServiceName string
	Environment string
	LogLevel    string
	Version     string
}

const defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-preview-05-20:generateContent"

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "5000"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Gemini: GeminiConfig{
			URL:           getEnv("GEMINI_API_URL", defaultGeminiURL),
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			UseADC:        getEnvAsBool("GEMINI_USE_ADC", false),
			Timeout:       getEnvAsDuration("GEMINI_TIMEOUT", 60*time.Second),
			RateLimit:     getEnvAsFloat("GEMINI_RATE_LIMIT", 0),
			RateBurst:     getEnvAsInt("GEMINI_RATE_BURST", 1),
			RetryAttempts: getEnvAsInt("RETRY_ATTEMPTS", 3),
		},
		Documents: DocumentsConfig{
			Dir: getEnv("DOCUMENTS_DIR", "documents"),
		},
		Classifier: ClassifierConfig{
			KeywordsFile: getEnv("CLASSIFIER_KEYWORDS_FILE", ""),
		},
		App: AppConfig{
			ServiceName: getEnv("SERVICE_NAME", "policy-claims-backend"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Documents.Dir == "" {
		return fmt.Errorf("DOCUMENTS_DIR is required")
	}

	if c.Gemini.URL == "" {
		return fmt.Errorf("GEMINI_API_URL is required")
	}

	if c.Gemini.RetryAttempts < 1 {
		return fmt.Errorf("RETRY_ATTEMPTS must be at least 1")
	}

	if c.Gemini.RateLimit < 0 {
		return fmt.Errorf("GEMINI_RATE_LIMIT must not be negative")
	}

	for _, origin := range c.Server.CORSAllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS entry %q must be * or start with http:// or https://", origin)
		}
	}

	if c.Gemini.APIKey == "" && !c.Gemini.UseADC {
		log.Println("Warning: GEMINI_API_KEY is not set and GEMINI_USE_ADC is false, model calls will fail")
	}

	return nil
}

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
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
