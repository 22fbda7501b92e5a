package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	APIURL    string `conf:"default:http://localhost:8080,env:API_URL"`
	StorePath string `conf:"env:STORE_PATH"`
	Debug     bool   `conf:"default:false,env:DEBUG"`
}

// ReadConfig reads settings from the environment only; the command line
// belongs to the subcommands.
func ReadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	var cfg Config
	if err := conf.Parse(nil, "LEARNHUB", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.StorePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locating config dir: %w", err)
		}
		cfg.StorePath = filepath.Join(dir, "learnhub", "state.db")
	}

	return &cfg, nil
}
