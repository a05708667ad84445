// Package config loads station configuration from a .env file with
// environment-variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host            string `validate:"required"`
	Port            string `validate:"required"`
	User            string `validate:"required"`
	Password        string
	Name            string `validate:"required"`
	SSLMode         string `validate:"required"`
	MaxOpenConns    int    `validate:"gt=0"`
	MaxIdleConns    int    `validate:"gte=0"`
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the optional display-board event channel. The
// station runs fine without it.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	Channel  string
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type ReaderConfig struct {
	Port     string `validate:"required"`
	BaudRate int    `validate:"gt=0"`
}

type BillingConfig struct {
	Rate     int64         `validate:"gt=0"` // credits per period
	Period   time.Duration `validate:"gt=0"`
	Timezone string        `validate:"required"` // operating time zone for timestamping
}

// Location resolves the configured operating time zone.
func (c BillingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid billing timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

type StationConfig struct {
	PollInterval   time.Duration `validate:"gt=0"`
	SessionTimeout time.Duration `validate:"gt=0"`
}

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Reader   ReaderConfig
	Billing  BillingConfig
	Station  StationConfig
}

// Load reads .env (if present), applies environment overrides and defaults,
// and validates the result.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	// Missing .env is fine; everything has a default or an env var.
	_ = viper.ReadInConfig()

	bindings := map[string]string{
		"database.host":           "DATABASE_HOST",
		"database.port":           "DATABASE_PORT",
		"database.user":           "DATABASE_USER",
		"database.password":       "DATABASE_PASSWORD",
		"database.name":           "DATABASE_NAME",
		"database.ssl_mode":       "DATABASE_SSL_MODE",
		"redis.enabled":           "REDIS_ENABLED",
		"redis.host":              "REDIS_HOST",
		"redis.port":              "REDIS_PORT",
		"redis.password":          "REDIS_PASSWORD",
		"redis.db":                "REDIS_DB",
		"redis.channel":           "REDIS_CHANNEL",
		"reader.port":             "READER_PORT",
		"reader.baud_rate":        "READER_BAUD_RATE",
		"billing.rate":            "RENTAL_RATE",
		"billing.period":          "RENTAL_DURATION",
		"billing.timezone":        "RENTAL_TIMEZONE",
		"station.poll_interval":   "POLL_INTERVAL",
		"station.session_timeout": "SESSION_TIMEOUT",
	}
	for key, env := range bindings {
		viper.BindEnv(key, env)
	}

	setDefaults()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:            viper.GetString("database.host"),
			Port:            viper.GetString("database.port"),
			User:            viper.GetString("database.user"),
			Password:        viper.GetString("database.password"),
			Name:            viper.GetString("database.name"),
			SSLMode:         viper.GetString("database.ssl_mode"),
			MaxOpenConns:    viper.GetInt("database.max_open_conns"),
			MaxIdleConns:    viper.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: viper.GetDuration("database.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("redis.enabled"),
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetString("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			Channel:  viper.GetString("redis.channel"),
		},
		Reader: ReaderConfig{
			Port:     viper.GetString("reader.port"),
			BaudRate: viper.GetInt("reader.baud_rate"),
		},
		Billing: BillingConfig{
			Rate:     viper.GetInt64("billing.rate"),
			Period:   viper.GetDuration("billing.period"),
			Timezone: viper.GetString("billing.timezone"),
		},
		Station: StationConfig{
			PollInterval:   viper.GetDuration("station.poll_interval"),
			SessionTimeout: viper.GetDuration("station.session_timeout"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.name", "bike_rental")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("database.max_idle_conns", 2)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.channel", "station:events")

	viper.SetDefault("reader.port", "/dev/ttyUSB0")
	viper.SetDefault("reader.baud_rate", 9600)

	// 10 credits buys 8 hours, billed in Manila time.
	viper.SetDefault("billing.rate", 10)
	viper.SetDefault("billing.period", 8*time.Hour)
	viper.SetDefault("billing.timezone", "Asia/Manila")

	viper.SetDefault("station.poll_interval", time.Second)
	viper.SetDefault("station.session_timeout", 30*time.Second)
}
