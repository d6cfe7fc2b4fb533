package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Limits   LimitsConfig
	Billing  BillingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini string
	TitleTopic   string // Thread title generation topic
}

type AIConfig struct {
	Model      string // e.g. "gemini-1.5-flash"
	TitleModel string // cheaper model used for title generation
}

// LimitsConfig holds the free-tier daily caps per feature.
// Pro-tier caps are unlimited (-1) and never configured here.
type LimitsConfig struct {
	FreeGraphsDaily        int
	FreeFlashcardsDaily    int
	FreeSolutionsDaily     int
	FreePracticeTestsDaily int
}

type BillingConfig struct {
	ServerKey    string
	IsProduction bool
	ProProductId string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "MathTutor"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			TitleTopic:   getEnv("THREAD_TITLE_TOPIC_NAME", "GENERATE_THREAD_TITLE"),
		},
		Ai: AIConfig{
			Model:      getEnv("LLM_MODEL", "gemini-1.5-flash"),
			TitleModel: getEnv("LLM_TITLE_MODEL", "gemini-1.5-flash"),
		},
		Limits: LimitsConfig{
			FreeGraphsDaily:        getEnvAsInt("FREE_GRAPHS_DAILY_LIMIT", 2),
			FreeFlashcardsDaily:    getEnvAsInt("FREE_FLASHCARDS_DAILY_LIMIT", 1),
			FreeSolutionsDaily:     getEnvAsInt("FREE_SOLUTIONS_DAILY_LIMIT", 3),
			FreePracticeTestsDaily: getEnvAsInt("FREE_PRACTICE_TESTS_DAILY_LIMIT", 1),
		},
		Billing: BillingConfig{
			ServerKey:    getEnv("BILLING_SERVER_KEY", ""),
			IsProduction: getEnv("BILLING_IS_PRODUCTION", "false") == "true",
			ProProductId: getEnv("BILLING_PRO_PRODUCT_ID", "pro-monthly"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
