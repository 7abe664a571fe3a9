package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.EndpointAddrHTTP != ":8080" {
		t.Fatalf("unexpected default address: %q", cfg.EndpointAddrHTTP)
	}
	if cfg.AccessTokenValidityDuration != 30*time.Minute {
		t.Fatalf("unexpected access token validity: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 7*24*time.Hour {
		t.Fatalf("unexpected refresh token validity: %v", cfg.RefreshTokenValidityDuration)
	}
	if cfg.AppleIssuer != "https://appleid.apple.com" {
		t.Fatalf("unexpected Apple issuer: %q", cfg.AppleIssuer)
	}
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("ACCESS_TOKEN_VALIDITY", "15m")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.EndpointAddrHTTP != ":9090" {
		t.Fatalf("env did not override address: %q", cfg.EndpointAddrHTTP)
	}
	if cfg.SecretKey != "from-env" {
		t.Fatalf("env did not override secret: %q", cfg.SecretKey)
	}
	if cfg.AccessTokenValidityDuration != 15*time.Minute {
		t.Fatalf("env did not override access validity: %v", cfg.AccessTokenValidityDuration)
	}
	// untouched fields keep their defaults
	if cfg.DatabaseDSN == "" || cfg.AppleBundleID != "com.zavier.PulseTempo" {
		t.Fatalf("unset variables must not clear defaults: %+v", cfg)
	}
}
