package main

import (
	"os"
	"time"

	"paytracker/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func newRouter(cfg *Config) *gin.Engine {
	jwtSecret = []byte(cfg.JWTSecret)
	r := gin.Default()
	r.Use(authMiddleware())
	setupRoutes(r)
	return r
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	// Support a lightweight migrate command: `./paytracker migrate`
	// Runs AutoMigrate and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB(cfg.DBDSN)
		log.Info().Msg("migration completed")
		return
	}

	initDB(cfg.DBDSN)

	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUsername, cfg.EmailPassword, cfg.MailFrom, cfg.SMTPAuth, cfg.SMTPSSL)
	sched, err := startScheduler(cfg, m)
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.NotifyCron).Msg("start notification scheduler")
	}
	defer sched.Stop()

	r := newRouter(cfg)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
