// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for userhub-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Auth    AuthSection    `koanf:"auth"`
	Session SessionSection `koanf:"session"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the HTTP endpoint.
type ServerSection struct {
	// Addr is the listen address.
	Addr string `koanf:"addr"`

	// CORSAllowedOrigins is the CORS allow-list (empty = allow all).
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimit is the per-IP request rate per second (0 disables).
	RateLimit int `koanf:"rate_limit"`
}

// AuthSection configures login credentials and the bearer API token.
type AuthSection struct {
	// AdminUsername and AdminPassword are the login credentials.
	// The password is bcrypt-hashed at startup and never kept in plain.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`

	// APIToken protects the bearer-authenticated stats route.
	// Empty disables the route.
	APIToken string `koanf:"api_token"`
}

// SessionSection configures session lifetimes.
type SessionSection struct {
	// TTL is the session lifetime; it also becomes the cookie Max-Age.
	TTL time.Duration `koanf:"ttl"`

	// SweepInterval is how often expired sessions are evicted
	// server-side (0 disables the sweep).
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
