package config

import (
	"flag"
	"os"
	"time"

	"github.com/skilltrackhq/backend/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   access token HMAC secret
//	-w string   refresh token HMAC secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-o int      one-time code validity, minutes
//	-m string   SMTP host
//	-u string   SMTP username / from address
//	-b string   outward-facing base URL for email links
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes and then converted to
// time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-w", "-t", "-r", "-o", "-m", "-u", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AccessTokenSecret, "s", config.AccessTokenSecret, "access token secret")
	fs.StringVar(&config.RefreshTokenSecret, "w", config.RefreshTokenSecret, "refresh token secret")

	accessTokenTTL := fs.Int("t", int(config.AccessTokenTTL.Minutes()), "access_token_ttl (in minutes)")
	refreshTokenTTL := fs.Int("r", int(config.RefreshTokenTTL.Minutes()), "refresh_token_ttl (in minutes)")
	otpTTL := fs.Int("o", int(config.OTPTTL.Minutes()), "otp_ttl (in minutes)")

	fs.StringVar(&config.MailHost, "m", config.MailHost, "SMTP host")
	fs.StringVar(&config.MailUsername, "u", config.MailUsername, "SMTP username")
	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "base URL for links in emails")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenTTL = time.Duration(*accessTokenTTL) * time.Minute
	config.RefreshTokenTTL = time.Duration(*refreshTokenTTL) * time.Minute
	config.OTPTTL = time.Duration(*otpTTL) * time.Minute
}
