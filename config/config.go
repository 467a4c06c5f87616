// Package config exposes build identity and process-level configuration
// read from the environment. Runtime-tunable settings live in the settings
// table behind service.SettingService.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// defaultJWTSecret is only acceptable for local development. Production
// deployments must set DAFTAR_JWT_SECRET.
const defaultJWTSecret = "dev-secret-change-me"

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("DAFTAR_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("DAFTAR_DEBUG") == "true"
}

// GetJWTSecret returns the session token signing key and whether it is the
// development fallback.
func GetJWTSecret() (secret string, isFallback bool) {
	secret = os.Getenv("DAFTAR_JWT_SECRET")
	if secret == "" {
		return defaultJWTSecret, true
	}
	return secret, false
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("DAFTAR_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/daftar"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("DAFTAR_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}
