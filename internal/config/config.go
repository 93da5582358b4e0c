package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
	City       CityConfig
	Upload     UploadConfig
	OpenAQ     OpenAQConfig
	Nominatim  NominatimConfig
	Escalation EscalationConfig
	SMTP       SMTPConfig
	Worker     WorkerConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	Env       string
	RateLimit int

	// CORSOrigins is a comma separated list; empty uses local dev origins
	CORSOrigins string
}

type DatabaseConfig struct {
	// Driver is sqlite or postgres
	Driver          string
	Path            string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL    time.Duration
	AirQualityCacheTTL time.Duration
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type CityConfig struct {
	// ProfilePath points to a YAML city profile; empty uses the built-in one
	ProfilePath string
}

type UploadConfig struct {
	Dir string
}

type OpenAQConfig struct {
	BaseURL string
	APIKey  string
	// Timeout bounds one HTTP request, TotalTimeout the whole heatmap fetch
	Timeout      time.Duration
	TotalTimeout time.Duration
	Limit        int
}

type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Limit     int
}

type EscalationConfig struct {
	Enabled   bool
	Radius    float64
	Window    time.Duration
	Threshold int
}

type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	FallbackTo string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

// Load reads .env (when present) and the process environment
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			RateLimit:   v.GetInt("API_RATE_LIMIT"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Path:            v.GetString("DB_PATH"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL:    time.Duration(v.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
			AirQualityCacheTTL: time.Duration(v.GetInt("AIRQ_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		City: CityConfig{
			ProfilePath: v.GetString("CITY_PROFILE"),
		},
		Upload: UploadConfig{
			Dir: v.GetString("UPLOAD_DIR"),
		},
		OpenAQ: OpenAQConfig{
			BaseURL:      v.GetString("OPENAQ_BASE_URL"),
			APIKey:       v.GetString("OPENAQ_API_KEY"),
			Timeout:      time.Duration(v.GetInt("OPENAQ_TIMEOUT")) * time.Second,
			TotalTimeout: time.Duration(v.GetInt("OPENAQ_TOTAL_TIMEOUT")) * time.Second,
			Limit:        v.GetInt("OPENAQ_LIMIT"),
		},
		Nominatim: NominatimConfig{
			BaseURL:   v.GetString("NOMINATIM_BASE_URL"),
			UserAgent: v.GetString("NOMINATIM_USER_AGENT"),
			Timeout:   time.Duration(v.GetInt("NOMINATIM_TIMEOUT")) * time.Second,
			Limit:     v.GetInt("NOMINATIM_LIMIT"),
		},
		Escalation: EscalationConfig{
			Enabled:   v.GetBool("ESCALATION_ENABLED"),
			Radius:    v.GetFloat64("ESCALATION_RADIUS"),
			Window:    time.Duration(v.GetInt("ESCALATION_WINDOW_DAYS")) * 24 * time.Hour,
			Threshold: v.GetInt("ESCALATION_THRESHOLD"),
		},
		SMTP: SMTPConfig{
			Host:       v.GetString("SMTP_HOST"),
			Port:       v.GetInt("SMTP_PORT"),
			User:       v.GetString("SMTP_USER"),
			Password:   v.GetString("SMTP_PASSWORD"),
			From:       v.GetString("SMTP_FROM"),
			FallbackTo: v.GetString("SMTP_FALLBACK_TO"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_RATE_LIMIT", 120)

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "complaints.db")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 1800)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 300)

	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("GEOCODE_CACHE_TTL", 86400)
	v.SetDefault("AIRQ_CACHE_TTL", 900)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("UPLOAD_DIR", "uploads")

	v.SetDefault("OPENAQ_BASE_URL", "https://api.openaq.org/v3")
	v.SetDefault("OPENAQ_TIMEOUT", 15)
	v.SetDefault("OPENAQ_TOTAL_TIMEOUT", 20)
	v.SetDefault("OPENAQ_LIMIT", 100)

	v.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("NOMINATIM_USER_AGENT", "complaint-map/1.0")
	v.SetDefault("NOMINATIM_TIMEOUT", 6)
	v.SetDefault("NOMINATIM_LIMIT", 5)

	v.SetDefault("ESCALATION_ENABLED", true)
	v.SetDefault("ESCALATION_RADIUS", 0.005)
	v.SetDefault("ESCALATION_WINDOW_DAYS", 30)
	v.SetDefault("ESCALATION_THRESHOLD", 3)

	v.SetDefault("SMTP_PORT", 587)

	v.SetDefault("WORKER_CONSUMER_GROUP", "complaint-escalation-workers")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
}

// Validate rejects settings the services cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Escalation.Radius <= 0 {
		return errors.New("ESCALATION_RADIUS must be positive")
	}
	if c.Escalation.Threshold < 1 {
		return errors.New("ESCALATION_THRESHOLD must be at least 1")
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseDSN returns the driver-specific data source name
func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.Path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// RedisEnabled reports whether a Redis host was configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// SMTPEnabled reports whether escalation mails can be sent
func (c *Config) SMTPEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}
