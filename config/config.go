package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultJWTSecret is the fallback signing key used when JWT_SECRET is unset.
// Carried over from the original deployment and known to be weak; always set
// JWT_SECRET in real environments.
const DefaultJWTSecret = "telehealth-dev-secret"

// Config holds the project config values
type Config struct {
	URL           string
	DatabaseName  string
	BaseURL       string
	Port          string
	JWTSecret     string
	CloudinaryURL string
}

// New sets up all config related services
func New() *Config {

	// .env is optional; real env vars win in deployed environments
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("ENV"))
	if err == nil {
		defer logger.Sync()
		_ = zap.ReplaceGlobals(logger)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		zap.S().Warn("JWT_SECRET not set, falling back to built-in development secret")
		secret = DefaultJWTSecret
	}

	return &Config{
		URL:           os.Getenv("DB_URI"),
		DatabaseName:  os.Getenv("DB_NAME"),
		BaseURL:       os.Getenv("BASE_URL"),
		Port:          os.Getenv("PORT"),
		JWTSecret:     secret,
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
	}
}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ErrorStatus is a useful function that will log, write http headers and the
// error envelope for a given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	b, _ := json.Marshal(errorEnvelope{Success: false, Error: fmt.Sprintf("%s, %v", message, err)})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
