package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are missing. Each one is a startup-class failure:
// main logs it and exits instead of serving requests with a broken config.
var (
	// ErrNoJWTPrivateKey indicates the token signing key is unset. Without
	// it no token can be issued or verified.
	ErrNoJWTPrivateKey = errors.New("jwt private key is not configured")
	// ErrNoDatabaseDSN indicates the PostgreSQL connection string is unset.
	ErrNoDatabaseDSN = errors.New("database DSN is not configured")
	// ErrNoServerAddress indicates the HTTP listen address is unset.
	ErrNoServerAddress = errors.New("server address is not configured")
	// ErrNoFrontendURL indicates the frontend base URL for password-reset
	// links is unset.
	ErrNoFrontendURL = errors.New("frontend URL is not configured")
	// ErrInvalidMailConfigs indicates incomplete SMTP settings
	// (host, username or password missing).
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
)
