package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "bike_rental", cfg.Database.Name)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Reader.Port)
	assert.Equal(t, 9600, cfg.Reader.BaudRate)
	assert.Equal(t, int64(10), cfg.Billing.Rate)
	assert.Equal(t, 8*time.Hour, cfg.Billing.Period)
	assert.Equal(t, "Asia/Manila", cfg.Billing.Timezone)
	assert.Equal(t, time.Second, cfg.Station.PollInterval)

	loc, err := cfg.Billing.Location()
	assert.NoError(t, err)
	assert.Equal(t, "Asia/Manila", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("RENTAL_RATE", "25")
	t.Setenv("RENTAL_DURATION", "4h")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_CHANNEL", "rack7:events")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, int64(25), cfg.Billing.Rate)
	assert.Equal(t, 4*time.Hour, cfg.Billing.Period)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "rack7:events", cfg.Redis.Channel)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Run("non-positive rate", func(t *testing.T) {
		viper.Reset()
		t.Setenv("RENTAL_RATE", "-5")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive baud rate", func(t *testing.T) {
		viper.Reset()
		t.Setenv("READER_BAUD_RATE", "-1")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad timezone surfaces on Location", func(t *testing.T) {
		viper.Reset()
		t.Setenv("RENTAL_TIMEZONE", "Mars/Olympus")

		cfg, err := Load()
		assert.NoError(t, err)
		_, err = cfg.Billing.Location()
		assert.Error(t, err)
	})
}
