package config

import "time"

const (
	DefaultServiceName = "spinhall"
	DefaultGameName    = "Lucky Reels"
)

// Session store backends
const (
	SessionStorePostgres = "postgres"
	SessionStoreMemory   = "memory"
)

const (
	DefaultSessionTTL      = 12 * time.Hour
	DefaultSessionCacheMax = 10000

	DefaultDBMaxConns    = 10
	DefaultDBMaxConnIdle = 5 * time.Minute
	DefaultDBMaxConnLife = time.Hour

	DefaultEventMaxRetries = 5
	DefaultEventRetryDelay = 2 * time.Second
	DefaultDeadLetterPath  = "deadletter.jsonl"
)
