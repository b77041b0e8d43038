package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr                    string         `json:"http_addr"`
	GRPCAddr                    string         `json:"grpc_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	TokenAlgorithm              string         `json:"token_algorithm"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	FrontendBaseURL             string         `json:"frontend_base_url"`
	AppName                     string         `json:"app_name"`
	AdminKey                    string         `json:"admin_key"`
	LogLevel                    string         `json:"log_level"`
	MailTransport               string         `json:"mail_transport"`
	SMTPHost                    string         `json:"smtp_host"`
	SMTPPort                    int            `json:"smtp_port"`
	SMTPUsername                string         `json:"smtp_username"`
	SMTPPassword                string         `json:"smtp_password"`
	SMTPFrom                    string         `json:"smtp_from"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	S3Prefix                    string         `json:"s3_prefix"`
}

// parseJson loads the file named by -c/-config in args, if any, over config.
// Keys missing from the file keep their current values.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}
	fromJson(config, c)
	return nil
}

func toJson(c *Config) *JsonConfig {
	return &JsonConfig{
		HTTPAddr:                    c.HTTPAddr,
		GRPCAddr:                    c.GRPCAddr,
		DatabaseDSN:                 c.DatabaseDSN,
		SecretKey:                   c.SecretKey,
		TokenAlgorithm:              c.TokenAlgorithm,
		AccessTokenValidityDuration: timex.Duration{Duration: c.AccessTokenValidityDuration},
		BcryptCost:                  c.BcryptCost,
		FrontendBaseURL:             c.FrontendBaseURL,
		AppName:                     c.AppName,
		AdminKey:                    c.AdminKey,
		LogLevel:                    c.LogLevel,
		MailTransport:               c.MailTransport,
		SMTPHost:                    c.SMTPHost,
		SMTPPort:                    c.SMTPPort,
		SMTPUsername:                c.SMTPUsername,
		SMTPPassword:                c.SMTPPassword,
		SMTPFrom:                    c.SMTPFrom,
		S3RootUser:                  c.S3RootUser,
		S3RootPassword:              c.S3RootPassword,
		S3Bucket:                    c.S3Bucket,
		S3Region:                    c.S3Region,
		S3BaseEndpoint:              c.S3BaseEndpoint,
		S3Prefix:                    c.S3Prefix,
	}
}

func fromJson(config *Config, c *JsonConfig) {
	config.HTTPAddr = c.HTTPAddr
	config.GRPCAddr = c.GRPCAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenAlgorithm = c.TokenAlgorithm
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.BcryptCost = c.BcryptCost
	config.FrontendBaseURL = c.FrontendBaseURL
	config.AppName = c.AppName
	config.AdminKey = c.AdminKey
	config.LogLevel = c.LogLevel
	config.MailTransport = c.MailTransport
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUsername = c.SMTPUsername
	config.SMTPPassword = c.SMTPPassword
	config.SMTPFrom = c.SMTPFrom
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3Prefix = c.S3Prefix
}
