package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env     string
	Port    int
	Service string

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Pricing  PricingConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// KafkaConfig configures domain event publication.
type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	ScheduleTopic string
	FacultyTopic  string
}

// PricingConfig governs the external degree pricing lookup and its breaker.
type PricingConfig struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold int
	FailureWindow    time.Duration
	Cooldown         time.Duration
}

// CacheConfig tunes response caching for classroom listings.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load(service string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v, service)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.Service = service

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Kafka = KafkaConfig{
		Enabled:       v.GetBool("KAFKA_ENABLED"),
		Brokers:       splitAndTrim(v.GetString("KAFKA_BROKERS")),
		ScheduleTopic: v.GetString("KAFKA_SCHEDULE_TOPIC"),
		FacultyTopic:  v.GetString("KAFKA_FACULTY_TOPIC"),
	}

	cfg.Pricing = PricingConfig{
		BaseURL:          v.GetString("PRICING_BASE_URL"),
		Timeout:          parseDuration(v.GetString("PRICING_TIMEOUT"), 3*time.Second),
		FailureThreshold: v.GetInt("PRICING_FAILURE_THRESHOLD"),
		FailureWindow:    parseDuration(v.GetString("PRICING_FAILURE_WINDOW"), 5*time.Minute),
		Cooldown:         parseDuration(v.GetString("PRICING_COOLDOWN"), 5*time.Minute),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", service)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_SCHEDULE_TOPIC", "campus.schedule.events")
	v.SetDefault("KAFKA_FACULTY_TOPIC", "campus.faculty.events")

	v.SetDefault("PRICING_BASE_URL", "http://localhost:8100")
	v.SetDefault("PRICING_TIMEOUT", "3s")
	v.SetDefault("PRICING_FAILURE_THRESHOLD", 10)
	v.SetDefault("PRICING_FAILURE_WINDOW", "5m")
	v.SetDefault("PRICING_COOLDOWN", "5m")

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
