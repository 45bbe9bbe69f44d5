package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envDebug     = "BLOCKFALL_DEBUG"
	envConfigDir = "BLOCKFALL_CONFIG_DIR"
)

// loadDotEnv pulls a local .env into the environment. Absence is normal.
func loadDotEnv() {
	_ = godotenv.Load()
}

func envBool(key string) bool {
	value := strings.TrimSpace(os.Getenv(key))
	return strings.EqualFold(value, "true") || value == "1"
}
