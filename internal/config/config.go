// internal/config/config.go
//
// Runtime configuration for the CLI and server.
//
// Layers, later ones winning:
//   1. built-in defaults
//   2. an optional INI file (explicit path, or HANGMAN_CONFIG)
//   3. environment variables (a .env file is loaded into the
//      environment by main via godotenv before Load runs)
//
// INI layout:
//
//	[server]  port, client_origin, production
//	[log]     level
//	[game]    lexicon, word_length
//	[db]      path
//	[auth]    jwt_secret, jwt_expires_days, cookie_name
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/ini.v1"
)

// Config holds every tunable the binary reads.
type Config struct {
	Port           string
	ClientOrigin   string
	Production     bool
	LogLevel       string
	LexiconPath    string // empty: embedded word list
	WordLength     int
	DBPath         string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           "5175",
		ClientOrigin:   "http://localhost:5173",
		LogLevel:       "info",
		WordLength:     5,
		DBPath:         "./data/hangman.db",
		JWTSecret:      "dev_secret_change_me",
		JWTExpiresDays: 14,
		CookieName:     "hangman_token",
	}
}

// Load builds a Config from defaults, the INI file at path (or the one
// named by HANGMAN_CONFIG when path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("HANGMAN_CONFIG")
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}

	str := func(section, key string, dst *string) {
		if k, err := f.Section(section).GetKey(key); err == nil {
			*dst = k.String()
		}
	}
	num := func(section, key string, dst *int) error {
		k, err := f.Section(section).GetKey(key)
		if err != nil {
			return nil
		}
		n, err := k.Int()
		if err != nil {
			return fmt.Errorf("config: %s.%s: %w", section, key, err)
		}
		*dst = n
		return nil
	}

	str("server", "port", &c.Port)
	str("server", "client_origin", &c.ClientOrigin)
	if k, err := f.Section("server").GetKey("production"); err == nil {
		b, err := k.Bool()
		if err != nil {
			return fmt.Errorf("config: server.production: %w", err)
		}
		c.Production = b
	}
	str("log", "level", &c.LogLevel)
	str("game", "lexicon", &c.LexiconPath)
	if err := num("game", "word_length", &c.WordLength); err != nil {
		return err
	}
	str("db", "path", &c.DBPath)
	str("auth", "jwt_secret", &c.JWTSecret)
	if err := num("auth", "jwt_expires_days", &c.JWTExpiresDays); err != nil {
		return err
	}
	str("auth", "cookie_name", &c.CookieName)
	return nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("PORT", &c.Port)
	str("CLIENT_ORIGIN", &c.ClientOrigin)
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Production = v == "production"
	}
	str("LOG_LEVEL", &c.LogLevel)
	str("LEXICON_FILE", &c.LexiconPath)
	if err := num("WORD_LENGTH", &c.WordLength); err != nil {
		return err
	}
	str("DB_PATH", &c.DBPath)
	str("JWT_SECRET", &c.JWTSecret)
	if err := num("JWT_EXPIRES_DAYS", &c.JWTExpiresDays); err != nil {
		return err
	}
	str("COOKIE_NAME", &c.CookieName)
	return nil
}
