package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Sheets   SheetsConfig
	Summary  SummaryConfig
}

type AppConfig struct {
	Port        string
	Environment string
	LogFilePath string
	RedisURL    string
}

type DatabaseConfig struct {
	Connection string `validate:"required"`
	Timeout    time.Duration
}

type TelegramConfig struct {
	Token         string `validate:"required"`
	APIBaseURL    string
	WebhookSecret string
	Timeout       time.Duration
}

type SheetsConfig struct {
	DrillingSheetID   string `validate:"required"`
	CompletionSheetID string `validate:"required"`
	CredsURL          string `validate:"required,url"`
	Timeout           time.Duration
}

type SummaryConfig struct {
	Enabled  bool
	Endpoint string
	APIKey   string
	FolderID string
	Timeout  time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "3000"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "bot.log"),
			RedisURL:    getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Timeout:    getEnvAsDuration("DB_TIMEOUT", 5*time.Second),
		},
		Telegram: TelegramConfig{
			Token:         getEnv("TELEGRAM_TOKEN", ""),
			APIBaseURL:    getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
			WebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
			Timeout:       getEnvAsDuration("TELEGRAM_TIMEOUT", 10*time.Second),
		},
		Sheets: SheetsConfig{
			DrillingSheetID:   getEnv("DRILLING_SHEET_ID", ""),
			CompletionSheetID: getEnv("COMPLETION_SHEET_ID", ""),
			CredsURL:          getEnv("CREDS_URL", ""),
			Timeout:           getEnvAsDuration("SHEETS_TIMEOUT", 10*time.Second),
		},
		Summary: SummaryConfig{
			Enabled:  getEnvAsBool("SUMMARY_ENABLED", false),
			Endpoint: getEnv("SUMMARY_ENDPOINT", "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"),
			APIKey:   getEnv("SUMMARY_API_KEY", ""),
			FolderID: getEnv("SUMMARY_FOLDER_ID", ""),
			Timeout:  getEnvAsDuration("SUMMARY_TIMEOUT", 30*time.Second),
		},
	}
}

// Validate checks the settings a running bot cannot do without.
// Summary settings are not required: the summarizer is optional enrichment.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c.Database); err != nil {
		return err
	}
	if err := v.Struct(c.Telegram); err != nil {
		return err
	}
	return v.Struct(c.Sheets)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
