package internal

import (
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var currentLevel = LogLevelInfo

func init() {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		currentLevel = LogLevelDebug
	case "info":
		currentLevel = LogLevelInfo
	case "warn", "warning":
		currentLevel = LogLevelWarn
	case "error":
		currentLevel = LogLevelError
	}
}

func Debugf(format string, args ...interface{}) {
	if currentLevel <= LogLevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if currentLevel <= LogLevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if currentLevel <= LogLevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if currentLevel <= LogLevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}
