package config

import (
	"strconv"
	"strings"
)

// ApplyEnv layers the NBREAD_* variables and NO_COLOR onto o.
func ApplyEnv(getenv func(string) string, o *Options) error {
	o.Theme = envOr(getenv, "NBREAD_THEME", o.Theme)
	o.Pager = envOr(getenv, "NBREAD_PAGER", o.Pager)
	o.Debug = envBool(getenv, "NBREAD_DEBUG", o.Debug)
	if getenv("NO_COLOR") != "" {
		o.NoColor = true
	}
	if v := getenv("NBREAD_PAGING"); v != "" {
		mode, err := ParsePagingMode(v)
		if err != nil {
			return &ConfigError{Field: "NBREAD_PAGING", Message: "invalid paging mode " + strconv.Quote(v)}
		}
		o.Paging = mode
	}
	return nil
}

// Columns reads COLUMNS, returning 0 when unset or invalid.
func Columns(getenv func(string) string) int {
	n, err := strconv.Atoi(strings.TrimSpace(getenv("COLUMNS")))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(getenv func(string) string, key string, fallback bool) bool {
	if v := getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
