package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	CBR     CBRConfig
	Cache   CacheConfig
	Profile ProfileConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type CBRConfig struct {
	DailyURL   string
	DynamicURL string
	Timeout    time.Duration
}

type CacheConfig struct {
	TTL time.Duration
}

// ProfileConfig points at the optional profile-service event sink.
// An empty BaseURL disables event recording.
type ProfileConfig struct {
	BaseURL  string
	ClientID string
	Timeout  time.Duration
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8000),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		CBR: CBRConfig{
			DailyURL:   getEnvString("CBR_DAILY_URL", "https://www.cbr.ru/scripts/XML_daily.asp"),
			DynamicURL: getEnvString("CBR_DYNAMIC_URL", "https://www.cbr.ru/scripts/XML_dynamic.asp"),
			Timeout:    getEnvDuration("CBR_TIMEOUT", 20*time.Second),
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL", 15*time.Minute),
		},
		Profile: ProfileConfig{
			BaseURL:  getEnvString("PROFILE_BASE_URL", ""),
			ClientID: getEnvString("PROFILE_CLIENT_ID", "default"),
			Timeout:  getEnvDuration("PROFILE_TIMEOUT", 5*time.Second),
		},
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %d\n", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		fmt.Printf("Warning: Invalid duration for %s, using default: %s\n", key, defaultValue)
		return defaultValue
	}

	return value
}
