package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string
	// AppEnv selects logger and gin modes: "development" or "production"
	AppEnv string
	LogDir string

	// Database
	DBDriver        string // mysql, postgres, sqlite
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBPath          string // sqlite file
	DBMigrationMode string // "auto" (default) or "drop"

	// Server
	ServerPort    string
	AllowedOrigin string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisEnabled  bool

	// JWT Authentication
	JWTSecretKey string
	JWTTTL       time.Duration

	// Admin
	DefaultAdminEmail    string
	DefaultAdminPassword string

	// Business
	BusinessName   string
	CurrencySymbol string
	TimeZone       string

	// Reconciliation
	DueOffsetMode         string // "naive" or "calendar"
	CertificateWindowDays int
	ContractWindowDays    int

	// Rate limiting for the public auth routes
	LoginRatePerSecond float64
	LoginBurst         int
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	switch strings.ToUpper(envType) {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	return &Config{
		EnvType: strings.ToUpper(envType),
		AppEnv:  getEnv("APP_ENV", "development"),
		LogDir:  getEnv("LOG_DIR", "logs"),

		DBDriver:        strings.ToLower(getEnv(prefix+"DB_DRIVER", getEnv("DB_DRIVER", "sqlite"))),
		DBHost:          getEnv(prefix+"DB_HOST", "localhost"),
		DBUser:          getEnv(prefix+"DB_USER", ""),
		DBPassword:      getEnv(prefix+"DB_PASSWORD", ""),
		DBName:          getEnv(prefix+"DB_NAME", "property_manager"),
		DBPort:          getEnv(prefix+"DB_PORT", "3306"),
		DBPath:          getEnv(prefix+"DB_PATH", "property_manager.db"),
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", "auto"),

		ServerPort:    getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "8080")),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		RedisHost:     getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort:     getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", false),

		JWTSecretKey: getEnv("JWT_SECRET_KEY", "property-manager-secret-change-in-production"),
		JWTTTL:       getEnvAsDuration("JWT_TTL", 24*time.Hour),

		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@urbanbase.local"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),

		BusinessName:   getEnv("BUSINESS_NAME", "Urban Base Properties"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "£"),
		TimeZone:       getEnv("TIME_ZONE", "Europe/London"),

		DueOffsetMode:         strings.ToLower(getEnv("DUE_OFFSET_MODE", "naive")),
		CertificateWindowDays: getEnvAsInt("CERTIFICATE_WINDOW_DAYS", 7),
		ContractWindowDays:    getEnvAsInt("CONTRACT_WINDOW_DAYS", 30),

		LoginRatePerSecond: getEnvAsFloat("LOGIN_RATE_PER_SECOND", 1),
		LoginBurst:         getEnvAsInt("LOGIN_BURST", 5),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// Validate checks settings that would otherwise fail late
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q: must be mysql, postgres or sqlite", c.DBDriver)
	}
	switch c.DueOffsetMode {
	case "naive", "calendar":
	default:
		return fmt.Errorf("unsupported DUE_OFFSET_MODE %q: must be naive or calendar", c.DueOffsetMode)
	}
	if c.CertificateWindowDays < 0 || c.ContractWindowDays < 0 {
		return fmt.Errorf("reconciliation windows must not be negative")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location returns the business time zone, falling back to the host zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	switch c.DBDriver {
	case "mysql":
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.TimeZone)
	default:
		return c.DBPath
	}
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
