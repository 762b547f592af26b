// Package config loads process configuration from the environment
// (optionally seeded from a .env file). Configuration is read once at
// startup and never re-read.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken     string
	AllowedUsers []int64
	DBPath       string
	HTTPAddr     string

	DigestHour   int
	DigestMinute int
	DigestLines  int

	HistoryLimit int
}

// Load reads configuration from the environment. BOT_TOKEN and
// ALLOWED_USERS are required; everything else has a default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		DBPath:       getDefault("DB_PATH", "sales.db"),
		HTTPAddr:     getDefault("HTTP_ADDR", ":8081"),
		DigestLines:  getIntDefault("DIGEST_LINES", 5),
		HistoryLimit: getIntDefault("HISTORY_LIMIT", 10),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	users, err := parseUserList(os.Getenv("ALLOWED_USERS"))
	if err != nil {
		return nil, err
	}
	cfg.AllowedUsers = users

	hour, minute, err := parseDigestTime(getDefault("DIGEST_TIME", "21:00"))
	if err != nil {
		return nil, err
	}
	cfg.DigestHour = hour
	cfg.DigestMinute = minute

	return cfg, nil
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// parseUserList parses a comma-separated list of Telegram user IDs.
func parseUserList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("ALLOWED_USERS is required")
	}

	parts := strings.Split(raw, ",")
	users := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ALLOWED_USERS has an invalid entry %q: %w", part, err)
		}
		users = append(users, id)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("ALLOWED_USERS is required")
	}
	return users, nil
}

// parseDigestTime parses "HH:MM" local time.
func parseDigestTime(raw string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("DIGEST_TIME must be HH:MM, got %q", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("DIGEST_TIME has an invalid hour in %q", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("DIGEST_TIME has an invalid minute in %q", raw)
	}
	return hour, minute, nil
}
