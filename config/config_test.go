package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Errorf("AppPort = %q, want 8080", cfg.AppPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, want disable", cfg.DBSSLMode)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("DB_NAME", "planovae_test")
	cfg := Load()
	if cfg.AppPort != "9999" {
		t.Errorf("AppPort = %q, want 9999", cfg.AppPort)
	}
	if cfg.DBName != "planovae_test" {
		t.Errorf("DBName = %q, want planovae_test", cfg.DBName)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p",
		DBName: "planovae", DBSSLMode: "require",
	}
	want := "host=db user=u password=p dbname=planovae port=5433 sslmode=require TimeZone=UTC"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
