package config

import "time"

const (
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPGMaxConns      = 2
	DefaultPGMinConns      = 0
	DefaultPGPingAttempts  = 30
)
