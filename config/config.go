package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the application reads from the environment.
type Config struct {
	Env         string
	Host        string
	Port        string
	FrontendURL string
	LogDir      string

	Backend  Backend
	Identity Identity
	Payment  Payment
	Image    Image
	Database Database
	Redis    Redis

	EncryptionKey string
	RoleCacheTTL  time.Duration
}

// Backend is the REST backend the app consumes.
type Backend struct {
	BaseURL string
	Timeout time.Duration
}

// Identity is the identity provider project.
type Identity struct {
	APIKey    string
	ProjectID string
	BaseURL   string
	TokenURL  string
	KeysURL   string
}

type Payment struct {
	PublishableKey string
}

type Image struct {
	APIKey    string
	UploadURL string
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Redis is optional; an empty Addr keeps the role cache in memory.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional outside local development
	envErr := godotenv.Load()

	cfg := &Config{
		Env:         getEnv("APP_ENV", "local"),
		Host:        getEnv("APP_HOST", "0.0.0.0"),
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		LogDir:      getEnv("LOG_DIR", "log/app"),
		Backend: Backend{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:3000"),
			Timeout: getEnvDuration("BACKEND_TIMEOUT", 15*time.Second),
		},
		Identity: Identity{
			APIKey:    getEnv("IDENTITY_API_KEY", ""),
			ProjectID: getEnv("IDENTITY_PROJECT_ID", ""),
			BaseURL:   getEnv("IDENTITY_BASE_URL", "https://identitytoolkit.googleapis.com/v1"),
			TokenURL:  getEnv("IDENTITY_TOKEN_URL", "https://securetoken.googleapis.com/v1/token"),
			KeysURL: getEnv("IDENTITY_KEYS_URL",
				"https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"),
		},
		Payment: Payment{
			PublishableKey: getEnv("PAYMENT_PUBLISHABLE_KEY", ""),
		},
		Image: Image{
			APIKey:    getEnv("IMAGE_UPLOAD_KEY", ""),
			UploadURL: getEnv("IMAGE_UPLOAD_URL", "https://api.imgbb.com/1/upload"),
		},
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_DATABASE", "parcel_delivery"),
			User:     getEnv("DB_USERNAME", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		RoleCacheTTL:  getEnvDuration("ROLE_CACHE_TTL", 5*time.Minute),
	}

	return cfg, envErr
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
