package config

import (
	"os"
	"strconv"
)

// Config for the alicuotas-data HTTP API.
type Config struct {
	HTTP struct {
		Addr string
	}
	// Store selects the KV backend: "file" (default), "redis" or "postgres".
	Store struct {
		Backend  string
		DataPath string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Database string
		SSLMode  string
	}
	Log struct {
		Level  string
		Format string
	}
	PayPhone PayPhoneConfig
}

// PayPhoneConfig holds the two provider identifiers plus the confirmation
// endpoint base URL.
type PayPhoneConfig struct {
	APIURL  string
	Token   string
	StoreID string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Store.Backend = getEnv("STORE_BACKEND", "file")
	cfg.Store.DataPath = getEnv("DATA_PATH", "data/alicuotas.json")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "alicuotas")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.PayPhone.APIURL = getEnv("PAYPHONE_API_URL", "https://pay.payphonetodoesposible.com")
	cfg.PayPhone.Token = getEnv("PAYPHONE_TOKEN", "")
	cfg.PayPhone.StoreID = getEnv("PAYPHONE_STORE_ID", "")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
