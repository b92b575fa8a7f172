package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port       string
	BackendURL string
	MongoURI   string
	DBName     string

	// BackendServiceToken authenticates the background pollers. Without it
	// the pollers are not started.
	BackendServiceToken string

	GeminiAPIKey string
	GeminiModel  string

	AWSRegion     string
	AWSBucketName string

	// JWTSecret is optional. When empty, bearer tokens are decoded without
	// verification and the backend stays the authority.
	JWTSecret string

	SendGridAPIKey  string
	NotifyFromEmail string
	NotifyToEmail   string

	OrderPollInterval  time.Duration
	NotifyPollInterval time.Duration
	RequestTimeout     time.Duration
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = getEnv("PORT", "8080")
	BackendURL = getEnv("BACKEND_URL", "http://localhost:5000")
	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	DBName = getEnv("DB_NAME", "decordream")
	BackendServiceToken = os.Getenv("BACKEND_SERVICE_TOKEN")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	GeminiModel = getEnv("GEMINI_MODEL", "gemini-1.5-flash")

	AWSRegion = getEnv("AWS_REGION", "us-east-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	JWTSecret = os.Getenv("JWT_SECRET")

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	NotifyFromEmail = getEnv("NOTIFY_FROM_EMAIL", "no-reply@decordream.shop")
	NotifyToEmail = os.Getenv("NOTIFY_TO_EMAIL")

	OrderPollInterval = getDuration("ORDER_POLL_INTERVAL", 30*time.Second)
	NotifyPollInterval = getDuration("NOTIFY_POLL_INTERVAL", time.Minute)
	RequestTimeout = getDuration("REQUEST_TIMEOUT", 15*time.Second)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
