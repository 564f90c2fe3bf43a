package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 7, cfg.Reporting.DailyDays)
	assert.Equal(t, 5, cfg.Reporting.DashboardTopN)
	assert.Equal(t, time.UTC, cfg.Reporting.Location())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("REPORT_DAILY_DAYS", "14")
	v.Set("REPORT_TIMEZONE", "America/Bogota")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 14, cfg.Reporting.DailyDays)
	assert.Equal(t, "America/Bogota", cfg.Reporting.Location().String())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_DiasNoPositivosUsanDefault(t *testing.T) {
	v := viper.New()
	v.Set("REPORT_DAILY_DAYS", 0)

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Reporting.DailyDays)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "ventas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/ventas?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestReportingConfig_ZonaInvalidaCaeEnUTC(t *testing.T) {
	assert.Equal(t, time.UTC, ReportingConfig{Timezone: "Marte/Olympus"}.Location())
}
