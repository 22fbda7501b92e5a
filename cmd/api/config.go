package main

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port            string   `conf:"default:8080,env:PORT"`
	DBCon           string   `conf:"default:user=ps_user password=ps_password dbname=backend sslmode=disable host=localhost,env:DB_CONN,noprint"`
	JWTKey          string   `conf:"default:your_secret_key,env:JWT_KEY,noprint"`
	StripeKey       string   `conf:"env:STRIPE_KEY,noprint"`
	SendgridKey     string   `conf:"env:SENDGRID_API_KEY,noprint"`
	NewRelicApp     string   `conf:"default:learnhub-api,env:NEW_RELIC_APP_NAME"`
	NewRelicLicense string   `conf:"env:NEW_RELIC_LICENSE_KEY,noprint"`
	AllowedOrigins  []string `conf:"default:*,env:ALLOWED_ORIGINS"`
}

func ReadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	var cfg Config
	help, err := conf.ParseOSArgs("APP", &cfg)

	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
