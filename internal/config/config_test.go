package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	// Check defaults are applied
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.DatabasePath != "./data/almanac.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "./data/almanac.db")
	}
	if len(cfg.DefaultLocales) != 2 || cfg.DefaultLocales[0] != "en" || cfg.DefaultLocales[1] != "ta" {
		t.Errorf("DefaultLocales = %v, want [en ta]", cfg.DefaultLocales)
	}
	if cfg.UTCOffset() != 5.5 {
		t.Errorf("UTCOffset() = %v, want 5.5", cfg.UTCOffset())
	}
	if cfg.AlmanacMaxDays != 90 {
		t.Errorf("AlmanacMaxDays = %d, want 90", cfg.AlmanacMaxDays)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Errorf("rate limit = %v/%d, want 10/20", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	// Set custom values
	os.Setenv("PORT", "3000")
	os.Setenv("ENV", "production")
	os.Setenv("DATABASE_PATH", "/data/test.db")
	os.Setenv("API_KEY", "secret-key-123")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("DEFAULT_LOCALES", " hi, en ,")
	os.Setenv("DEFAULT_UTC_OFFSET", "-08:00")
	os.Setenv("ALMANAC_MAX_DAYS", "366")
	os.Setenv("RATE_LIMIT_RPS", "2.5")
	os.Setenv("RATE_LIMIT_BURST", "5")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if len(cfg.DefaultLocales) != 2 || cfg.DefaultLocales[0] != "hi" || cfg.DefaultLocales[1] != "en" {
		t.Errorf("DefaultLocales = %v, want [hi en]", cfg.DefaultLocales)
	}
	if cfg.UTCOffset() != -8 {
		t.Errorf("UTCOffset() = %v, want -8", cfg.UTCOffset())
	}
	if cfg.AlmanacMaxDays != 366 {
		t.Errorf("AlmanacMaxDays = %d, want 366", cfg.AlmanacMaxDays)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 5 {
		t.Errorf("rate limit = %v/%d, want 2.5/5", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv()
	os.Setenv("DEFAULT_LOCALES", "en,fr")
	os.Setenv("DEFAULT_UTC_OFFSET", "+25:00")
	defer clearEnv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded with unknown locale and bad offset")
	}
	for _, want := range []string{"DEFAULT_LOCALES", "DEFAULT_UTC_OFFSET"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Load() error %q does not mention %s", err, want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	// Table-driven tests for validation
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid development config",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				APIKey:       "", // OK in development
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: false,
		},
		{
			name: "valid production config",
			config: Config{
				Port:         8080,
				Env:          EnvProduction,
				DatabasePath: "/data/almanac.db",
				APIKey:       "required-in-prod",
				LogLevel:     "info",
				LogFormat:    "json",
			},
			wantErr: false,
		},
		{
			name: "production requires API key",
			config: Config{
				Port:         8080,
				Env:          EnvProduction,
				DatabasePath: "/data/almanac.db",
				APIKey:       "", // Missing!
				LogLevel:     "info",
				LogFormat:    "json",
			},
			wantErr: true,
		},
		{
			name: "invalid port - too low",
			config: Config{
				Port:         0,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid port - too high",
			config: Config{
				Port:         70000,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid environment",
			config: Config{
				Port:         8080,
				Env:          "invalid",
				DatabasePath: "./data/test.db",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				LogLevel:     "verbose", // Not valid
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				LogLevel:     "info",
				LogFormat:    "xml", // Not valid
			},
			wantErr: true,
		},
		{
			name: "empty database path",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "unknown default locale",
			config: Config{
				Port:           8080,
				Env:            EnvDevelopment,
				DatabasePath:   "./data/test.db",
				LogLevel:       "info",
				LogFormat:      "text",
				DefaultLocales: []string{"en", "de"},
			},
			wantErr: true,
		},
		{
			name: "malformed default offset",
			config: Config{
				Port:             8080,
				Env:              EnvDevelopment,
				DatabasePath:     "./data/test.db",
				LogLevel:         "info",
				LogFormat:        "text",
				DefaultUTCOffset: "+5:75",
			},
			wantErr: true,
		},
		{
			name: "almanac range too large",
			config: Config{
				Port:           8080,
				Env:            EnvDevelopment,
				DatabasePath:   "./data/test.db",
				LogLevel:       "info",
				LogFormat:      "text",
				AlmanacMaxDays: 100000,
			},
			wantErr: true,
		},
		{
			name: "rate limit without burst",
			config: Config{
				Port:           8080,
				Env:            EnvDevelopment,
				DatabasePath:   "./data/test.db",
				LogLevel:       "info",
				LogFormat:      "text",
				RateLimitRPS:   5,
				RateLimitBurst: -1,
			},
			wantErr: true,
		},
		{
			name: "rate limit disabled",
			config: Config{
				Port:           8080,
				Env:            EnvDevelopment,
				DatabasePath:   "./data/test.db",
				LogLevel:       "info",
				LogFormat:      "text",
				RateLimitRPS:   0,
				RateLimitBurst: -1,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := withDefaults(tt.config)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.Env = EnvDevelopment
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

// withDefaults fills the fields a table case leaves zero with the values
// Load would use, so each case only states what it tests.
func withDefaults(c Config) Config {
	if c.DefaultLocales == nil {
		c.DefaultLocales = []string{"en", "ta"}
	}
	if c.DefaultUTCOffset == "" {
		c.DefaultUTCOffset = "+05:30"
	}
	if c.AlmanacMaxDays == 0 {
		c.AlmanacMaxDays = 90
	}
	if c.RateLimitBurst == 0 {
		c.RateLimitBurst = 20
	}
	return c
}

// clearEnv removes all config-related environment variables
func clearEnv() {
	vars := []string{
		"PORT", "ENV", "DATABASE_PATH", "API_KEY",
		"LOG_LEVEL", "LOG_FORMAT",
		"DEFAULT_LOCALES", "DEFAULT_UTC_OFFSET", "ALMANAC_MAX_DAYS",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
