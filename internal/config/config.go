package config

import (
	"time"

	"github.com/spf13/viper"
)

const DefaultDatabasePath = "./catalog.db"

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		Cache
		Session
		UI
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	// Catalog controls the list-query path.
	Catalog struct {
		PageSize     int
		QueryTimeout time.Duration
	}

	Cache struct {
		Enabled       bool
		TTL           time.Duration // 0 means entries never expire
		SweepSchedule string        // cron format, memory backend only
		RedisURL      string        // non-empty switches the backend to redis
	}

	Session struct {
		Secret        string // CSRF key; auto-generated when empty
		Lifetime      time.Duration
		SecureCookies bool
	}

	UI struct {
		TemplatesPath string
		StaticPath    string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// List query defaults
	v.SetDefault("page_size", 10)
	v.SetDefault("query_timeout", "3s")

	// Response cache defaults
	v.SetDefault("cache_enabled", true)
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("cache_sweep_schedule", "*/5 * * * *")
	v.SetDefault("redis_url", "")

	// Session defaults
	v.SetDefault("session_secret", "")
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Catalog: Catalog{
			PageSize:     v.GetInt("PAGE_SIZE"),
			QueryTimeout: v.GetDuration("QUERY_TIMEOUT"),
		},
		Cache: Cache{
			Enabled:       v.GetBool("CACHE_ENABLED"),
			TTL:           v.GetDuration("CACHE_TTL"),
			SweepSchedule: v.GetString("CACHE_SWEEP_SCHEDULE"),
			RedisURL:      v.GetString("REDIS_URL"),
		},
		Session: Session{
			Secret:        v.GetString("SESSION_SECRET"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
	}
}
