/*
 * IPTVProxy serves an M3U playlist through an Xtream-codes compatible API and stream proxy.
 * Copyright (C) 2025  Lucas Duport
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents logging levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds the process wide logging configuration.
var Config = struct {
	DebugLoggingEnabled bool
	LogLevel            LogLevel
	LogFilePath         string
	logFile             *os.File
	mu                  sync.Mutex
}{
	LogLevel: LevelInfo,
}

func init() {
	ConfigureLogging(os.Getenv("LOG_LEVEL"), os.Getenv("DEBUG_LOGGING") == "true", os.Getenv("LOG_FILE"))
}

// ParseLogLevel maps a textual level to a LogLevel. Unknown values fall back
// to debug when debug logging is on, info otherwise.
func ParseLogLevel(level string, debug bool) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	if debug {
		return LevelDebug
	}
	return LevelInfo
}

// ConfigureLogging applies level, debug flag and optional log file. It is
// called once from init with the environment and again by the CLI once flags
// and config file are resolved.
func ConfigureLogging(level string, debug bool, logFilePath string) {
	Config.mu.Lock()
	defer Config.mu.Unlock()

	Config.DebugLoggingEnabled = debug
	Config.LogLevel = ParseLogLevel(level, debug)

	if logFilePath == "" || logFilePath == Config.LogFilePath {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		log.Printf("Error creating log directory: %v", err)
		return
	}
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Error opening log file: %v", err)
		return
	}
	if Config.logFile != nil {
		Config.logFile.Close()
	}
	Config.logFile = file
	Config.LogFilePath = logFilePath
	log.SetOutput(file)
}

// Close closes any open log files
func Close() {
	Config.mu.Lock()
	defer Config.mu.Unlock()
	if Config.logFile != nil {
		log.SetOutput(os.Stderr)
		Config.logFile.Close()
		Config.logFile = nil
		Config.LogFilePath = ""
	}
}

// IsDebugEnabled reports whether debug lines are currently emitted.
func IsDebugEnabled() bool {
	return Config.DebugLoggingEnabled || Config.LogLevel == LevelDebug
}

// InfoLog logs an info message
func InfoLog(format string, v ...interface{}) {
	if Config.LogLevel <= LevelInfo {
		logWithCaller(LevelInfo, format, v...)
	}
}

// WarnLog logs a warning message
func WarnLog(format string, v ...interface{}) {
	if Config.LogLevel <= LevelWarn {
		logWithCaller(LevelWarn, format, v...)
	}
}

// DebugLog logs a debug message if debug logging is enabled
func DebugLog(format string, v ...interface{}) {
	if IsDebugEnabled() {
		logWithCaller(LevelDebug, format, v...)
	}
}

// ErrorLog logs an error message
func ErrorLog(format string, v ...interface{}) {
	if Config.LogLevel <= LevelError {
		logWithCaller(LevelError, format, v...)
	}
}

func logWithCaller(level LogLevel, format string, v ...interface{}) {
	caller := "unknown"
	if _, file, line, ok := runtime.Caller(2); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	log.Println(fmt.Sprintf("%s [%s] (%s) %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, caller, fmt.Sprintf(format, v...)))
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
