package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with env tags. Variables that are not set leave
// the corresponding field untouched, so the env layer only overrides what it
// actually provides.
type envConfig struct {
	EndpointAddr       string        `env:"ADDRESS"`
	DatabaseDSN        string        `env:"DATABASE_DSN"`
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL"`
	OTPTTL             time.Duration `env:"OTP_TTL"`
	MailHost           string        `env:"MAIL_HOST"`
	MailPort           int           `env:"MAIL_PORT"`
	MailUsername       string        `env:"MAIL_AUTH_USERNAME"`
	MailPassword       string        `env:"MAIL_AUTH_PASSWORD"`
	BaseURL            string        `env:"BASE_URL"`
}

// parseEnv overlays environment variables onto the config. Malformed values
// (e.g. a non-duration ACCESS_TOKEN_TTL) panic, same as a broken JSON file.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.AccessTokenSecret != "" {
		config.AccessTokenSecret = c.AccessTokenSecret
	}
	if c.RefreshTokenSecret != "" {
		config.RefreshTokenSecret = c.RefreshTokenSecret
	}
	if c.AccessTokenTTL != 0 {
		config.AccessTokenTTL = c.AccessTokenTTL
	}
	if c.RefreshTokenTTL != 0 {
		config.RefreshTokenTTL = c.RefreshTokenTTL
	}
	if c.OTPTTL != 0 {
		config.OTPTTL = c.OTPTTL
	}
	if c.MailHost != "" {
		config.MailHost = c.MailHost
	}
	if c.MailPort != 0 {
		config.MailPort = c.MailPort
	}
	if c.MailUsername != "" {
		config.MailUsername = c.MailUsername
	}
	if c.MailPassword != "" {
		config.MailPassword = c.MailPassword
	}
	if c.BaseURL != "" {
		config.BaseURL = c.BaseURL
	}
}
