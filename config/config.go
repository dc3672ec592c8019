// Package config centralizes environment-driven configuration.
package config

import (
	"os"
	"strconv"

	"github.com/syncflowhq/syncflow/internal/db"
)

// Environment variable names
const (
	EnvAPIPort      = "SYNCFLOW_API_PORT"
	EnvPublicURL    = "SYNCFLOW_PUBLIC_URL"
	EnvResendAPIKey = "RESEND_API_KEY"

	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvDBName     = "DB_NAME"
)

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvInt retrieves an integer environment variable with a fallback value
// if not set or not parseable
func GetEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// DBOptionsFromEnv builds database connection options from the environment.
// Unset values fall back to the db package defaults.
func DBOptionsFromEnv() db.Options {
	return db.Options{
		Host:     GetEnv(EnvDBHost, ""),
		Port:     GetEnvInt(EnvDBPort, 0),
		User:     GetEnv(EnvDBUser, ""),
		Password: GetEnv(EnvDBPassword, ""),
		DBName:   GetEnv(EnvDBName, ""),
	}
}
