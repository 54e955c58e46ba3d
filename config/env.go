package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env (or ENV_FILE) into the process environment. A missing
// file is fine; variables may come from the environment itself.
func LoadEnv() {
	file := GetEnv("ENV_FILE", ".env")
	if err := godotenv.Load(file); err != nil {
		GetLogger().WithField("file", file).Debug("env file not loaded")
		return
	}
	GetLogger().WithField("file", file).Info("environment loaded")
}

// GetEnv returns the value of key or def when it is unset or empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
