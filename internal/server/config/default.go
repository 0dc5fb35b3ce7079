package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr = "127.0.0.1:8080"

	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "password"

	DefaultSessionTTL    = time.Hour
	DefaultSweepInterval = 5 * time.Minute

	DefaultRateLimit = 100

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:      DefaultHTTPAddr,
			RateLimit: DefaultRateLimit,
		},
		Auth: AuthSection{
			AdminUsername: DefaultAdminUsername,
			AdminPassword: DefaultAdminPassword,
		},
		Session: SessionSection{
			TTL:           DefaultSessionTTL,
			SweepInterval: DefaultSweepInterval,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
