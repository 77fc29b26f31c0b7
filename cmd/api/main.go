package main

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"messagely/internal/auth"
	"messagely/internal/config"
	"messagely/internal/database"
	"messagely/internal/server"
	"messagely/internal/sms"
	"messagely/internal/store"
	"messagely/internal/ws"
)

func main() {
	cfg := config.Load()
	if cfg.Env == "dev" {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("db connect")
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		logrus.WithError(err).Fatal("migrations")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	var gateway sms.Gateway
	if cfg.SMS.Enabled {
		gateway = sms.NewTwilioClient(cfg.SMS.AccountSID, cfg.SMS.AuthToken, &http.Client{Timeout: 10 * time.Second})
	} else {
		gateway = &sms.MockGateway{}
		logrus.Info("sms gateway disabled, using mock")
	}

	srv := server.NewServer(":"+cfg.Port, cfg,
		store.NewUsers(db), store.NewMessages(db),
		issuer, gateway, ws.NewHub())
	if err := srv.Run(); err != nil {
		logrus.WithError(err).Fatal("server")
	}
}
