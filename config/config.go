package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries every environment-derived setting. It is loaded once in main
// and passed by handle to the components that need it.
type Config struct {
	Port        string
	AppEnv      string
	DatabaseURL string
	JWTSecret   string
	RedisAddr   string

	// Identity provider (GoTrue-compatible REST service).
	IdentityURL         string
	IdentityAnonKey     string
	IdentityServiceRole string

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8000"),
		AppEnv:              getEnv("APP_ENV", "development"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           getEnv("JWT_SECRET", "solid_secret_key"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		IdentityURL:         os.Getenv("IDENTITY_URL"),
		IdentityAnonKey:     os.Getenv("IDENTITY_ANON_KEY"),
		IdentityServiceRole: os.Getenv("IDENTITY_SERVICE_ROLE"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		EmailUser:           os.Getenv("EMAIL_USER"),
		EmailPass:           os.Getenv("EMAIL_PASS"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}
	cfg.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ServerKey resolves the elevated identity credential used by the privileged
// inventory endpoint. Outside production a missing service-role key falls back
// to the anon key; the second return reports whether that insecure fallback
// was taken. An empty key in production is returned as-is and must be treated
// as a server misconfiguration by the caller.
func (c *Config) ServerKey() (key string, insecureFallback bool) {
	if c.IdentityServiceRole != "" {
		return c.IdentityServiceRole, false
	}
	if c.IsProduction() {
		return "", false
	}
	return c.IdentityAnonKey, true
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
