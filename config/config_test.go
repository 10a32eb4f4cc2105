package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "city-hall")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "permits", cfg.Database.DBName)
	assert.Equal(t, 8*time.Hour, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.S3.SignedURLExpiry)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, "0 7 * * *", cfg.Scheduler.RenewalCron)
	assert.Equal(t, DefaultRenewalCron, cfg.Scheduler.RenewalCron)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$12$abc")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://permits.example.gov, https://admin.example.gov")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("SIGNED_URL_EXPIRY", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://permits.example.gov", "https://admin.example.gov"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.S3.SignedURLExpiry)
}

func TestLoad_ClampsUploadSize(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "city-hall")
	t.Setenv("UPLOAD_MAX_SIZE_BYTES", "52428800")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, MaxUploadSizeBytes, cfg.Upload.MaxSizeBytes)
}

func TestLoad_RequiresAdminCredential(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080", Environment: "development"},
			Database:  DatabaseConfig{Host: "localhost", DBName: "permits", MaxIdleConns: 5, MaxOpenConns: 10},
			JWT:       JWTConfig{Secret: "secret"},
			Admin:     AdminConfig{Password: "pw"},
			S3:        S3Config{Bucket: "docs", SignedURLExpiry: time.Hour},
			Upload:    UploadConfig{MaxSizeBytes: 1024},
			Scheduler: SchedulerConfig{RenewalWindowDays: 30},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "SERVER_PORT"},
		{name: "idle above open", mutate: func(c *Config) { c.Database.MaxIdleConns = 20 }, wantErr: "DB_MAX_IDLE_CONNS"},
		{name: "default secret in production", mutate: func(c *Config) {
			c.Server.Environment = "production"
			c.JWT.Secret = "your-secret-key"
		}, wantErr: "JWT_SECRET"},
		{name: "signed url too long", mutate: func(c *Config) { c.S3.SignedURLExpiry = 8 * 24 * time.Hour }, wantErr: "SIGNED_URL_EXPIRY"},
		{name: "zero upload size", mutate: func(c *Config) { c.Upload.MaxSizeBytes = 0 }, wantErr: "UPLOAD_MAX_SIZE_BYTES"},
		{name: "upload size above limit", mutate: func(c *Config) { c.Upload.MaxSizeBytes = MaxUploadSizeBytes + 1 }, wantErr: "UPLOAD_MAX_SIZE_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "permits", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=permits sslmode=disable", db.DSN())
}
