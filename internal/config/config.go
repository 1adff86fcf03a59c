package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
	JWTExpiry time.Duration

	// Session cookie lifetime, usually mirrors JWTExpiry.
	CookieExpiry time.Duration

	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string

	StripeAPIKey    string
	StripeSecretKey string

	RazorpayKeyID     string
	RazorpayKeySecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	return &Config{
		Port:      getEnvOrDefault("PORT", "4000"),
		MongoURI:  getEnvOrDefault("MONGO_URI", ""),
		DBName:    getEnvOrDefault("DB_NAME", "storefront"),
		JWTSecret: getEnvOrDefault("JWT_SECRET", ""),
		JWTExpiry: getDurationEnv("JWT_EXPIRY_DAYS", 3, 24*time.Hour),

		CookieExpiry: getDurationEnv("COOKIE_EXPIRY_DAYS", 3, 24*time.Hour),

		CloudinaryName:   getEnvOrDefault("CLOUDINARY_NAME", ""),
		CloudinaryKey:    getEnvOrDefault("CLOUDINARY_KEY", ""),
		CloudinarySecret: getEnvOrDefault("CLOUDINARY_SECRET", ""),

		StripeAPIKey:    getEnvOrDefault("STRIPE_API_KEY", ""),
		StripeSecretKey: getEnvOrDefault("STRIPE_SECRET_KEY", ""),

		RazorpayKeyID:     getEnvOrDefault("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnvOrDefault("RAZORPAY_KEY_SECRET", ""),

		SMTPHost: getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort: getIntEnv("SMTP_PORT", 587),
		SMTPUser: getEnvOrDefault("SMTP_USER", ""),
		SMTPPass: getEnvOrDefault("SMTP_PASS", ""),
		MailFrom: getEnvOrDefault("MAIL_FROM", "no-reply@storefront.local"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
