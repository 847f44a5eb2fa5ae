package test

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_HISTORY_LIMIT keeps the in-process relay small enough to
	// exercise eviction without a hundred round trips
	HistoryLimit int `envconfig:"E2E_HISTORY_LIMIT" default:"3"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
