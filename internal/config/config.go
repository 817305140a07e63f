package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbSSLMode      string
	GuestStoreDir  string
	JWTSecret      string
	CacheTTL       time.Duration
	TrustedProxies []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DbHost:         getEnv("POSTGRES_HOST", "db"),
		DbPort:         getEnv("POSTGRES_PORT", "5432"),
		DbUser:         getEnv("POSTGRES_USER", "focusquest"),
		DbPassword:     getEnv("POSTGRES_PASSWORD", "focusquest"),
		DbName:         getEnv("POSTGRES_DATABASE", "focusquest"),
		DbSSLMode:      getEnv("POSTGRES_SSL_MODE", "disable"),
		GuestStoreDir:  getEnv("GUEST_STORE_DIR", "data"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CacheTTL:       parseCacheTTL(os.Getenv("TASK_CACHE_TTL_SECONDS")),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseCacheTTL(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
