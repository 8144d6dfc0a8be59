package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	HTTPAddr    string
	BackendURL  string
	RealtimeURL string
	GelfAddr    string
	SessionFile string
}

func Load() *Config {
	return &Config{
		HTTPAddr:    getEnv("GATEWAY_ADDR", ":3000"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:3001"),
		RealtimeURL: getEnv("REALTIME_URL", ""),
		GelfAddr:    getEnv("GATEWAY_GELF_ADDR", ""),
		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "compliance-gateway", "session.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
