package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port          string
	DSN           string
	JWTSecret     string
	JWTTTLMinutes int
	BcryptCost    int
	PhoneRegions  []string
	SMS           SMSConfig
	Env           string
}

type SMSConfig struct {
	Enabled    bool
	AccountSID string
	AuthToken  string
}

func Load() *Config {
	_ = godotenv.Load()

	ttl, err := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "60"))
	if err != nil || ttl <= 0 {
		ttl = 60
	}
	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	c := &Config{
		Port:          getEnv("PORT", "8080"),
		DSN:           mustEnv("DB_DSN"),
		JWTSecret:     mustEnv("JWT_SECRET"),
		JWTTTLMinutes: ttl,
		BcryptCost:    cost,
		PhoneRegions:  splitList(getEnv("PHONE_REGIONS", "US")),
		SMS: SMSConfig{
			Enabled:    getEnv("SMS_ENABLED", "false") == "true",
			AccountSID: getEnv("SMS_ACCOUNT_SID", ""),
			AuthToken:  getEnv("SMS_AUTH_TOKEN", ""),
		},
		Env: getEnv("ENV", "dev"),
	}
	logrus.WithFields(logrus.Fields{"env": c.Env, "port": c.Port}).Info("config loaded")
	return c
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		logrus.Fatalf("missing env: %s", k)
	}
	return v
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
