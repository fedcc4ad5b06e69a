package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")

	cfg := LoadConfig()

	assert.Equal(t, "LOCAL", cfg.EnvType)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "naive", cfg.DueOffsetMode)
	assert.Equal(t, 7, cfg.CertificateWindowDays)
	assert.Equal(t, 30, cfg.ContractWindowDays)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "£", cfg.CurrencySymbol)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_PrefixedEnvironment(t *testing.T) {
	t.Setenv("ENV_TYPE", "server")
	t.Setenv("SERVER_DB_DRIVER", "postgres")
	t.Setenv("SERVER_DB_HOST", "db.internal")
	t.Setenv("SERVER_DB_PORT", "5432")
	t.Setenv("SERVER_DB_USER", "pm")
	t.Setenv("SERVER_DB_PASSWORD", "secret")
	t.Setenv("SERVER_SERVER_PORT", "9000")
	t.Setenv("DUE_OFFSET_MODE", "CALENDAR")
	t.Setenv("JWT_TTL", "2h")

	cfg := LoadConfig()

	assert.Equal(t, "SERVER", cfg.EnvType)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "calendar", cfg.DueOffsetMode)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Contains(t, cfg.GetDSN(), "host=db.internal")
	assert.Contains(t, cfg.GetDSN(), "port=5432")
}

func TestLoadConfig_UnknownEnvTypeFallsBackToLocal(t *testing.T) {
	t.Setenv("ENV_TYPE", "staging")
	t.Setenv("LOCAL_DB_PATH", "local.db")

	cfg := LoadConfig()

	assert.Equal(t, "LOCAL", cfg.EnvType)
	assert.Equal(t, "local.db", cfg.GetDSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "bad driver", mutate: func(c *Config) { c.DBDriver = "oracle" }, wantErr: "DB_DRIVER"},
		{name: "bad offset mode", mutate: func(c *Config) { c.DueOffsetMode = "fuzzy" }, wantErr: "DUE_OFFSET_MODE"},
		{name: "negative window", mutate: func(c *Config) { c.CertificateWindowDays = -1 }, wantErr: "negative"},
		{name: "bad zone", mutate: func(c *Config) { c.TimeZone = "Mars/Olympus" }, wantErr: "TIME_ZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDSN_MySQL(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "n"}
	assert.Equal(t, "u:p@tcp(h:3306)/n?charset=utf8mb4&parseTime=True&loc=Local", cfg.GetDSN())
	assert.Equal(t, "localhost:6379", (&Config{RedisHost: "localhost", RedisPort: "6379"}).GetRedisAddr())
}
