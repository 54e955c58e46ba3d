package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName        string
	Port           string
	Env            string
	Debug          bool
	NearExpiryDays int
	PopularLimit   int
	MediaDir       string
	DefaultUnit    string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:        GetEnv("APP_NAME", "warehouse"),
			Port:           GetEnv("PORT", "8080"),
			Env:            os.Getenv("APP_ENV"),
			Debug:          os.Getenv("DEBUG") == "true",
			NearExpiryDays: envInt("NEAR_EXPIRY_DAYS", 30),
			PopularLimit:   envInt("POPULAR_LIMIT", 20),
			MediaDir:       GetEnv("MEDIA_DIR", "media"),
			DefaultUnit:    GetEnv("DEFAULT_UNIT", "pcs"),
		}
	})
}

// App returns AppConfig, loading it on first use.
func App() *Config {
	LoadAppConfig()
	return AppConfig
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
