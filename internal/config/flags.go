package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-jwt-private-key token signing key
//	-token-issuer token issuer name
//	-token-duration session token duration (e.g., "1h"; 0 disables expiry)
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-frontend-url public base URL of the browser client
//	-mail-host/-mail-port/-mail-username/-mail-password/-mail-from SMTP settings
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var jwtPrivateKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var frontendURL string
	var mailHost string
	var mailPort int
	var mailUsername string
	var mailPassword string
	var mailFrom string

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&jwtPrivateKey, "jwt-private-key", "", "JWT signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Session token duration (e.g., 1h, 30m; 0 = no expiry)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&frontendURL, "frontend-url", "", "Frontend base URL for reset links")
	flag.StringVar(&mailHost, "mail-host", "", "SMTP host")
	flag.IntVar(&mailPort, "mail-port", 0, "SMTP port")
	flag.StringVar(&mailUsername, "mail-username", "", "SMTP username")
	flag.StringVar(&mailPassword, "mail-password", "", "SMTP password")
	flag.StringVar(&mailFrom, "mail-from", "", "Mail sender address")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			JWTPrivateKey: jwtPrivateKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Mail: Mail{
			Host:     mailHost,
			Port:     mailPort,
			Username: mailUsername,
			Password: mailPassword,
			From:     mailFrom,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
			FrontendURL:    frontendURL,
		},
		JSONFilePath: jsonConfigPath,
	}
}
