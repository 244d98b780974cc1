// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Planning PlanningConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SessionConfig controls where preview sessions live and how long an
// uncommitted session stays valid.
type SessionConfig struct {
	RedisEnabled  bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTLSeconds    int
}

// PlanningConfig exposes the optimizer/classifier constants as tunable
// policy. Thresholds and strategy flags still arrive per request; these are
// the defaults behind the math itself.
type PlanningConfig struct {
	ForecastHorizonDays float64
	ConfidenceFloor     float64
	ConfidenceCeil      float64
	CriticalMultiplier  float64
	FastMultiplier      float64
	SlowMultiplier      float64
	NonMovingMultiplier float64
	UrgentCoverRatio    float64
	HighCoverRatio      float64
	HighRiskThreshold   float64
	MediumRiskThreshold float64
	FallbackSupplier    string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "procurement")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("SESSION_REDIS_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("SESSION_TTL_SECONDS", 900)
		viper.SetDefault("PLANNING_FORECAST_HORIZON_DAYS", 30.0)
		viper.SetDefault("PLANNING_CONFIDENCE_FLOOR", 0.3)
		viper.SetDefault("PLANNING_CONFIDENCE_CEIL", 1.0)
		viper.SetDefault("PLANNING_CRITICAL_MULTIPLIER", 1.5)
		viper.SetDefault("PLANNING_FAST_MULTIPLIER", 1.2)
		viper.SetDefault("PLANNING_SLOW_MULTIPLIER", 1.0)
		viper.SetDefault("PLANNING_NON_MOVING_MULTIPLIER", 0.5)
		viper.SetDefault("PLANNING_URGENT_COVER_RATIO", 0.25)
		viper.SetDefault("PLANNING_HIGH_COVER_RATIO", 0.5)
		viper.SetDefault("PLANNING_HIGH_RISK_THRESHOLD", 80.0)
		viper.SetDefault("PLANNING_MEDIUM_RISK_THRESHOLD", 50.0)
		viper.SetDefault("PLANNING_FALLBACK_SUPPLIER", "Default Supplier")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Session: SessionConfig{
				RedisEnabled:  viper.GetBool("SESSION_REDIS_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				TTLSeconds:    viper.GetInt("SESSION_TTL_SECONDS"),
			},
			Planning: PlanningConfig{
				ForecastHorizonDays: viper.GetFloat64("PLANNING_FORECAST_HORIZON_DAYS"),
				ConfidenceFloor:     viper.GetFloat64("PLANNING_CONFIDENCE_FLOOR"),
				ConfidenceCeil:      viper.GetFloat64("PLANNING_CONFIDENCE_CEIL"),
				CriticalMultiplier:  viper.GetFloat64("PLANNING_CRITICAL_MULTIPLIER"),
				FastMultiplier:      viper.GetFloat64("PLANNING_FAST_MULTIPLIER"),
				SlowMultiplier:      viper.GetFloat64("PLANNING_SLOW_MULTIPLIER"),
				NonMovingMultiplier: viper.GetFloat64("PLANNING_NON_MOVING_MULTIPLIER"),
				UrgentCoverRatio:    viper.GetFloat64("PLANNING_URGENT_COVER_RATIO"),
				HighCoverRatio:      viper.GetFloat64("PLANNING_HIGH_COVER_RATIO"),
				HighRiskThreshold:   viper.GetFloat64("PLANNING_HIGH_RISK_THRESHOLD"),
				MediumRiskThreshold: viper.GetFloat64("PLANNING_MEDIUM_RISK_THRESHOLD"),
				FallbackSupplier:    viper.GetString("PLANNING_FALLBACK_SUPPLIER"),
			},
		}
	})

	return instance
}
