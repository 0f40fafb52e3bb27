package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"HANGMAN_CONFIG", "PORT", "CLIENT_ORIGIN", "APP_ENV", "LOG_LEVEL", "LEXICON_FILE",
		"WORD_LENGTH", "DB_PATH", "JWT_SECRET", "JWT_EXPIRES_DAYS", "COOKIE_NAME",
	} {
		t.Setenv(k, "")
	}
}

func writeINI(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hangman.ini")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeINI(t, `
[server]
port = 9000
production = true

[game]
lexicon = /srv/words.txt
word_length = 7

[auth]
jwt_expires_days = 3
`)
	t.Setenv("PORT", "9100")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("Port = %q, env should win", cfg.Port)
	}
	if !cfg.Production || cfg.LexiconPath != "/srv/words.txt" || cfg.WordLength != 7 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.JWTExpiresDays != 3 || cfg.JWTSecret != "s3cret" {
		t.Errorf("auth = %d/%q", cfg.JWTExpiresDays, cfg.JWTSecret)
	}
	if cfg.CookieName != "hangman_token" {
		t.Errorf("CookieName = %q, default expected", cfg.CookieName)
	}
}

func TestLoadFromHangmanConfigEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HANGMAN_CONFIG", writeINI(t, "[log]\nlevel = debug\n"))
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{"missing file", filepath.Join(os.TempDir(), "does-not-exist-hangman.ini"), nil},
		{"bad ini number", "[game]\nword_length = five\n", nil},
		{"bad ini bool", "[server]\nproduction = maybe\n", nil},
		{"bad env number", "", map[string]string{"WORD_LENGTH": "x"}},
		{"bad env expiry", "", map[string]string{"JWT_EXPIRES_DAYS": "soon"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := tc.file
			if path != "" && !filepath.IsAbs(path) {
				path = writeINI(t, tc.file)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestAppEnvProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Production {
		t.Error("Production = false")
	}
}
