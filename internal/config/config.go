package config

import "os"

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func Addr() string {
	return getenv("APP_ADDR", ":8080")
}

// StorePath locates the sqlite database holding save slots.
func StorePath() string {
	return getenv("APP_STORE_PATH", "minefield.db")
}

// LogPath locates the rotating server log file.
func LogPath() string {
	return getenv("APP_LOG_PATH", "logs/server.log")
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
