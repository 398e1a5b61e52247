package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr        string
	GinMode        string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	Fast2SMSAPIKey string
	UploadDir      string
	CORSOrigins    []string
}

// LoadEnv reads configuration from the environment, with .env support for
// local development. Missing values fall back to development defaults.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	env := Env{
		AppAddr:        getenv("APP_ADDR", ":8080"),
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		MongoURI:       getenv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:        getenv("MONGO_DB", "cabzii"),
		JWTSecret:      getenv("JWT_SECRET", "super-secret-key-change-me"),
		Fast2SMSAPIKey: strings.TrimSpace(os.Getenv("FAST2SMS_API_KEY")),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}
	return env
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
