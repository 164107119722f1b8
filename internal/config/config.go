package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Session   SessionConfig   `yaml:"session"`
	Presence  PresenceConfig  `yaml:"presence"`
	Retention RetentionConfig `yaml:"retention"`
	Log       LogConfig       `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedisConfig holds the connection settings for the presence store.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// SessionConfig identifies the running session: who is acting and which
// build they are on. Actor is the display name attributed to every
// history entry the session writes.
type SessionConfig struct {
	Actor   string `yaml:"actor"   env:"SESSION_ACTOR"   env-required:"true"`
	Version string `yaml:"version" env:"SESSION_VERSION"`
}

// PresenceConfig holds the heartbeat settings.
type PresenceConfig struct {
	Interval time.Duration `yaml:"interval" env:"PRESENCE_INTERVAL" env-default:"30s"`
	TTL      time.Duration `yaml:"ttl"      env:"PRESENCE_TTL"      env-default:"90s"`
}

// RetentionConfig controls the archived-case cleanup.
type RetentionConfig struct {
	ArchivedDays int `yaml:"archived_days" env:"RETENTION_ARCHIVED_DAYS" env-default:"180"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
