package config

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-a", ":7070", "-s", "from-flag", "-t", "45"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	if cfg.EndpointAddrHTTP != ":7070" {
		t.Fatalf("flag did not override address: %q", cfg.EndpointAddrHTTP)
	}
	if cfg.SecretKey != "from-flag" {
		t.Fatalf("flag did not override secret: %q", cfg.SecretKey)
	}
	if cfg.AccessTokenValidityDuration != 45*time.Minute {
		t.Fatalf("flag did not override access validity: %v", cfg.AccessTokenValidityDuration)
	}
	// untouched fields keep their defaults
	if cfg.RefreshTokenValidityDuration != 7*24*time.Hour {
		t.Fatalf("unset flags must not change defaults: %v", cfg.RefreshTokenValidityDuration)
	}
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-test.run", "TestX", "-d", "dsn-from-flag"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	if cfg.DatabaseDSN != "dsn-from-flag" {
		t.Fatalf("flag did not override DSN: %q", cfg.DatabaseDSN)
	}
}
