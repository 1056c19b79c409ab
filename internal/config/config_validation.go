package config

import (
	"errors"
	"time"
)

const (
	defaultTokenIssuer    = "todo-app"
	defaultMailPort       = 587
	defaultRequestTimeout = 30 * time.Second
)

// applyDefaults fills optional fields that have safe fallbacks.
// Required secrets are never defaulted; validate rejects their absence.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = defaultMailPort
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
}

// validate checks that every configuration value the process cannot run
// without is present. A missing JWT private key in particular must abort
// startup here: discovering it on the first request would turn a deployment
// mistake into a stream of per-request 500s.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.Auth.JWTPrivateKey == "" {
		errs = append(errs, ErrNoJWTPrivateKey)
	}
	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, ErrNoDatabaseDSN)
	}
	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, ErrNoServerAddress)
	}
	if cfg.Server.FrontendURL == "" {
		errs = append(errs, ErrNoFrontendURL)
	}
	if cfg.Mail.Host == "" || cfg.Mail.Username == "" || cfg.Mail.Password == "" {
		errs = append(errs, ErrInvalidMailConfigs)
	}

	return errors.Join(errs...)
}
