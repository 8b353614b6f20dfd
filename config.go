package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds everything sourced from the environment. A local .env file
// is merged in when present; real environment variables win over it.
type Config struct {
	ServerAddr string
	DBDSN      string
	JWTSecret  string

	SMTPHost      string
	SMTPPort      int
	EmailUsername string
	EmailPassword string
	SMTPAuth      bool
	SMTPSSL       bool
	MailFrom      string

	NotifyCron      string
	NotifyDaysAhead int
}

func loadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDR", ":8081")
	v.SetDefault("JWT_SECRET", "dev-insecure-secret-change") // development fallback
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_AUTH", true)
	v.SetDefault("SMTP_SSL", false) // implicit TLS (port 465); STARTTLS is negotiated automatically otherwise
	v.SetDefault("NOTIFY_CRON", "0 22 * * *")
	v.SetDefault("NOTIFY_DAYS_AHEAD", 2)

	// merge a local .env if one exists, without overriding set vars
	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	cfg := &Config{
		ServerAddr:      v.GetString("SERVER_ADDR"),
		DBDSN:           v.GetString("DB_DSN"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		SMTPHost:        v.GetString("SMTP_HOST"),
		SMTPPort:        v.GetInt("SMTP_PORT"),
		EmailUsername:   v.GetString("EMAIL_USERNAME"),
		EmailPassword:   v.GetString("EMAIL_PASSWORD"),
		SMTPAuth:        v.GetBool("SMTP_AUTH"),
		SMTPSSL:         v.GetBool("SMTP_SSL"),
		MailFrom:        v.GetString("MAIL_FROM"),
		NotifyCron:      v.GetString("NOTIFY_CRON"),
		NotifyDaysAhead: v.GetInt("NOTIFY_DAYS_AHEAD"),
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; this service requires a Postgres DSN in DB_DSN")
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.EmailUsername
	}
	return cfg, nil
}
