package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultRenewalCron runs the renewal scan every day at 07:00.
	DefaultRenewalCron = "0 7 * * *"
	// MaxUploadSizeBytes is the hard ceiling on a single document upload.
	MaxUploadSizeBytes int64 = 10 * 1024 * 1024
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	S3        S3Config
	Redis     RedisConfig
	Admin     AdminConfig
	Upload    UploadConfig
	Wizard    WizardConfig
	Scheduler SchedulerConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port         string
	GinMode      string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
	SignedURLExpiry time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// AdminConfig holds the shared staff credential. PasswordHash wins over Password.
type AdminConfig struct {
	PasswordHash string
	Password     string
}

type UploadConfig struct {
	MaxSizeBytes int64
}

type WizardConfig struct {
	DraftTTL time.Duration
}

type SchedulerConfig struct {
	RenewalCron       string
	RenewalWindowDays int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			GinMode:      v.GetString("GIN_MODE"),
			Environment:  v.GetString("ENVIRONMENT"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			DBName:       v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		JWT: JWTConfig{
			Secret:            v.GetString("JWT_SECRET"),
			AccessTokenExpiry: v.GetDuration("JWT_ACCESS_TOKEN_EXPIRY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(v.GetString("ALLOWED_ORIGINS")),
		},
		S3: S3Config{
			Region:          v.GetString("AWS_REGION"),
			Bucket:          v.GetString("AWS_S3_BUCKET"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			BaseURL:         v.GetString("AWS_S3_BASE_URL"),
			SignedURLExpiry: v.GetDuration("SIGNED_URL_EXPIRY"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
			Password:     v.GetString("ADMIN_PASSWORD"),
		},
		Upload: UploadConfig{
			MaxSizeBytes: v.GetInt64("UPLOAD_MAX_SIZE_BYTES"),
		},
		Wizard: WizardConfig{
			DraftTTL: v.GetDuration("WIZARD_DRAFT_TTL"),
		},
		Scheduler: SchedulerConfig{
			RenewalCron:       v.GetString("RENEWAL_SCAN_CRON"),
			RenewalWindowDays: v.GetInt("RENEWAL_WINDOW_DAYS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.Upload.MaxSizeBytes > MaxUploadSizeBytes {
		log.Printf("UPLOAD_MAX_SIZE_BYTES=%d exceeds the %d byte limit, using the limit", cfg.Upload.MaxSizeBytes, MaxUploadSizeBytes)
		cfg.Upload.MaxSizeBytes = MaxUploadSizeBytes
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "admin")
	v.SetDefault("DB_PASSWORD", "1234")
	v.SetDefault("DB_NAME", "permits")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)

	v.SetDefault("JWT_SECRET", "your-secret-key")
	v.SetDefault("JWT_ACCESS_TOKEN_EXPIRY", "8h")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("AWS_REGION", "ap-southeast-1")
	v.SetDefault("AWS_S3_BUCKET", "business-permit-documents")
	v.SetDefault("SIGNED_URL_EXPIRY", "168h")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("UPLOAD_MAX_SIZE_BYTES", MaxUploadSizeBytes)
	v.SetDefault("WIZARD_DRAFT_TTL", "24h")

	v.SetDefault("RENEWAL_SCAN_CRON", DefaultRenewalCron)
	v.SetDefault("RENEWAL_WINDOW_DAYS", 30)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be less than or equal to DB_MAX_OPEN_CONNS")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && c.JWT.Secret == "your-secret-key" {
		return fmt.Errorf("JWT_SECRET must be changed in production")
	}
	if c.Admin.PasswordHash == "" && c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
	}
	if c.S3.Bucket == "" {
		return fmt.Errorf("AWS_S3_BUCKET is required")
	}
	// S3 presigned URLs cannot outlive seven days.
	if c.S3.SignedURLExpiry <= 0 || c.S3.SignedURLExpiry > 7*24*time.Hour {
		return fmt.Errorf("SIGNED_URL_EXPIRY must be between 1s and 168h")
	}
	if c.Upload.MaxSizeBytes <= 0 || c.Upload.MaxSizeBytes > MaxUploadSizeBytes {
		return fmt.Errorf("UPLOAD_MAX_SIZE_BYTES must be between 1 and %d", MaxUploadSizeBytes)
	}
	if c.Scheduler.RenewalWindowDays < 0 {
		return fmt.Errorf("RENEWAL_WINDOW_DAYS must be non-negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
