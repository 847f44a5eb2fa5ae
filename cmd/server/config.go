package main

import "time"

type Config struct {
	Host              string        `env:"HOST,default=127.0.0.1" validate:"required"`
	Port              int           `env:"PORT,default=2000" validate:"gte=1,lte=65535"`
	HistoryLimit      int           `env:"HISTORY_LIMIT,default=100" validate:"gt=0"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=5s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
}
