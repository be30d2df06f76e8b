package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID          string
	LogLevel           string
	KMSKeyName         string
	AccessTokenSecret  string
	RefreshTokenSecret string
	// TokenSecretName is a Secret Manager resource name used at bootstrap
	// when the token secrets are not set via env.
	TokenSecretName string
}

func New() *Config {
	// A missing .env file is fine; env vars win either way.
	_ = godotenv.Load()

	return &Config{
		ProjectID:          os.Getenv("PROJECTID"),
		LogLevel:           os.Getenv("LOGLEVEL"),
		KMSKeyName:         os.Getenv("KMSKEYNAME"),
		AccessTokenSecret:  os.Getenv("ACCESSTOKENSECRET"),
		RefreshTokenSecret: os.Getenv("REFRESHTOKENSECRET"),
		TokenSecretName:    os.Getenv("TOKENSECRETNAME"),
	}
}
