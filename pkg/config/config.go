package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Bookmark backends supported by BOOKMARK_BACKEND.
const (
	BookmarkBackendPostgres = "postgres"
	BookmarkBackendRedis    = "redis"
)

type Config struct {
	Env            string
	Port           int
	APIPrefix      string
	ConnectTimeout time.Duration

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	Catalog     CatalogConfig
	Bookmarks   BookmarksConfig
	Submissions SubmissionsConfig
	Metrics     MetricsConfig
	Docs        DocsConfig
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

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CatalogConfig points the catalog store and smart-search parser at their data files.
// Empty paths fall back to the embedded defaults.
type CatalogConfig struct {
	File            string
	KeywordsFile    string
	ParserCacheSize int
}

// BookmarksConfig selects the bookmark store and the reminder horizon.
type BookmarksConfig struct {
	Backend        string
	ReminderWindow time.Duration
}

// SubmissionsConfig tunes the asynchronous submission intake.
type SubmissionsConfig struct {
	Workers    int
	Retries    int
	RetryDelay time.Duration
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// DocsConfig toggles the Swagger UI outside production.
type DocsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.ConnectTimeout = parseDuration(v.GetString("CONNECT_TIMEOUT"), 30*time.Second)

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

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Catalog = CatalogConfig{
		File:            v.GetString("CATALOG_FILE"),
		KeywordsFile:    v.GetString("KEYWORDS_FILE"),
		ParserCacheSize: v.GetInt("PARSER_CACHE_SIZE"),
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("BOOKMARK_BACKEND")))
	if backend != BookmarkBackendRedis {
		backend = BookmarkBackendPostgres
	}
	cfg.Bookmarks = BookmarksConfig{
		Backend:        backend,
		ReminderWindow: parseDuration(v.GetString("REMINDER_WINDOW"), 7*24*time.Hour),
	}

	cfg.Submissions = SubmissionsConfig{
		Workers:    v.GetInt("SUBMISSION_WORKERS"),
		Retries:    v.GetInt("SUBMISSION_RETRIES"),
		RetryDelay: parseDuration(v.GetString("SUBMISSION_RETRY_DELAY"), 2*time.Second),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}
	cfg.Docs = DocsConfig{Enabled: v.GetBool("ENABLE_DOCS")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("CONNECT_TIMEOUT", "30s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "spark")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "spark-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("KEYWORDS_FILE", "")
	v.SetDefault("PARSER_CACHE_SIZE", 512)

	v.SetDefault("BOOKMARK_BACKEND", BookmarkBackendPostgres)
	v.SetDefault("REMINDER_WINDOW", "168h")

	v.SetDefault("SUBMISSION_WORKERS", 2)
	v.SetDefault("SUBMISSION_RETRIES", 3)
	v.SetDefault("SUBMISSION_RETRY_DELAY", "2s")

	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("ENABLE_DOCS", true)
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
