package config

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Load pulls settings from .env (when present), the process environment
// and ext-cfg.yaml, in that order.
func Load() {
	if err := godotenv.Load(); err != nil {
		zap.S().Debugf("no .env file loaded: %v", err)
	}
	if err := LoadEnv(); err != nil {
		zap.S().Fatalf("failed to load environment: %v", err)
	}
	if err := LoadExtractorConfigs(); err != nil {
		zap.S().Fatalf("failed to load extractor configs: %v", err)
	}
}
