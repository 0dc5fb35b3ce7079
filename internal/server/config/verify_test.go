package config

import (
	"testing"
	"time"
)

func TestVerifyAcceptsDefaults(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Fatalf("defaults must verify: %v", err)
	}
}

func TestVerifyRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"empty addr", func(c *ServerConfig) { c.Server.Addr = "" }},
		{"negative rate limit", func(c *ServerConfig) { c.Server.RateLimit = -1 }},
		{"empty username", func(c *ServerConfig) { c.Auth.AdminUsername = "" }},
		{"empty password", func(c *ServerConfig) { c.Auth.AdminPassword = "" }},
		{"zero ttl", func(c *ServerConfig) { c.Session.TTL = 0 }},
		{"negative ttl", func(c *ServerConfig) { c.Session.TTL = -time.Minute }},
		{"negative sweep interval", func(c *ServerConfig) { c.Session.SweepInterval = -time.Second }},
		{"unknown log level", func(c *ServerConfig) { c.Log.Level = "verbose" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := Verify(cfg); err == nil {
				t.Error("expected a verification error")
			}
		})
	}
}

func TestVerifyAllowsDisabledFeatures(t *testing.T) {
	cfg := Default()
	cfg.Server.RateLimit = 0
	cfg.Session.SweepInterval = 0
	cfg.Auth.APIToken = ""

	if err := Verify(cfg); err != nil {
		t.Fatalf("disabled features must verify: %v", err)
	}
}
