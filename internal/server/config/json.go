package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/skilltrackhq/backend/internal/flagx"
	"github.com/skilltrackhq/backend/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "15m" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr       string         `json:"endpoint_addr"`
	DatabaseDSN        string         `json:"database_dsn"`
	AccessTokenSecret  string         `json:"access_token_secret"`
	RefreshTokenSecret string         `json:"refresh_token_secret"`
	AccessTokenTTL     timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL    timex.Duration `json:"refresh_token_ttl"`
	OTPTTL             timex.Duration `json:"otp_ttl"`
	MailHost           string         `json:"mail_host"`
	MailPort           int            `json:"mail_port"`
	MailUsername       string         `json:"mail_username"`
	MailPassword       string         `json:"mail_password"`
	BaseURL            string         `json:"base_url"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. Unreadable or invalid
// files panic: a config file that was explicitly asked for must parse.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.AccessTokenSecret = c.AccessTokenSecret
	config.RefreshTokenSecret = c.RefreshTokenSecret
	config.AccessTokenTTL = time.Duration(c.AccessTokenTTL.Duration)
	config.RefreshTokenTTL = time.Duration(c.RefreshTokenTTL.Duration)
	config.OTPTTL = time.Duration(c.OTPTTL.Duration)
	config.MailHost = c.MailHost
	config.MailPort = c.MailPort
	config.MailUsername = c.MailUsername
	config.MailPassword = c.MailPassword
	config.BaseURL = c.BaseURL
}
