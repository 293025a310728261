package config

import (
	"os"
	"strconv"

	"mex/models"

	"go.uber.org/zap"
)

var Env = GetDefaultConfig()

func LoadEnv() error {
	if value := os.Getenv("DB_HOST"); value != "" {
		Env.DBHost = value
	}
	if value := os.Getenv("DB_PORT"); value != "" {
		if port, err := strconv.Atoi(value); err == nil {
			Env.DBPort = port
		} else {
			zap.S().Fatal("DB_PORT env is not a valid integer")
		}
	}
	if value := os.Getenv("DB_NAME"); value != "" {
		Env.DBName = value
	}
	if value := os.Getenv("DB_USER"); value != "" {
		Env.DBUser = value
	}
	if value := os.Getenv("DB_PASSWORD"); value != "" {
		Env.DBPassword = value
	}
	if value := os.Getenv("HTTP_PROXY"); value != "" {
		Env.HTTPProxy = value
	}
	if value := os.Getenv("HTTPS_PROXY"); value != "" {
		Env.HTTPSProxy = value
	}
	if value := os.Getenv("NO_PROXY"); value != "" {
		Env.NoProxy = value
	}
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		Env.LogLevel = value
	}
	if value := os.Getenv("LOG_FILE"); value != "" {
		if logFile, err := strconv.ParseBool(value); err == nil {
			Env.LogFile = logFile
		} else {
			zap.S().Fatal("LOG_FILE env is not a valid boolean")
		}
	}
	if value := os.Getenv("CACHING"); value != "" {
		if caching, err := strconv.ParseBool(value); err == nil {
			Env.Caching = caching
		} else {
			zap.S().Fatal("CACHING env is not a valid boolean")
		}
	}
	return nil
}

func GetDefaultConfig() *models.EnvConfig {
	return &models.EnvConfig{
		DBHost: "localhost",
		DBPort: 3306,
		DBName: "mex",
		DBUser: "mex",

		LogLevel: "info",
	}
}
