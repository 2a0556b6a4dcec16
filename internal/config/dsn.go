package config

import (
	"net/url"
	"os"
	"strings"
)

// DSNSource represents where the database DSN was loaded from.
type DSNSource string

const (
	DSNSourceEnv     DSNSource = "environment"
	DSNSourceConfig  DSNSource = "config_file"
	DSNSourceDefault DSNSource = "default"
)

// GetDSNSource returns where the database DSN was sourced from.
func GetDSNSource(cfg *Config) DSNSource {
	if os.Getenv("SHIKABOM_DATABASE_DSN") != "" || os.Getenv("DATABASE_URL") != "" {
		return DSNSourceEnv
	}
	if cfg != nil && cfg.Database.DSN != "" && cfg.Database.DSN != Default().Database.DSN {
		return DSNSourceConfig
	}
	return DSNSourceDefault
}

// MaskDSN hides the password of a URL-style DSN for display.
// Key/value DSNs get their password= value masked.
func MaskDSN(dsn string) string {
	if dsn == "" {
		return "(not set)"
	}
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			return u.String()
		}
		return dsn
	}

	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
