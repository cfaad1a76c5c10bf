package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_ProdPrefix(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_DB_DRIVER", "postgres")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_DB_PORT", "5432")
	t.Setenv("DEV_DB_HOST", "localhost-dev")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ANALYTICS_WINDOW_DAYS", "7")

	cfg, err := Parse()
	require.NoError(t, err)
	require.True(t, cfg.IsProd())
	require.Equal(t, DriverPostgres, cfg.Database.Driver)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, "5432", cfg.Database.Port)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, 7, cfg.Analytics.WindowDays)
}

func TestParse_DevPrefix(t *testing.T) {
	t.Setenv("APP_MODE", " dev ")
	t.Setenv("DEV_DB_DRIVER", "sqlite")
	t.Setenv("DEV_DB_PATH", "/tmp/records.db")

	cfg, err := Parse()
	require.NoError(t, err)
	require.True(t, cfg.IsDev())
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.Equal(t, "/tmp/records.db", cfg.Database.Path)
	require.Equal(t, "sqlite:/tmp/records.db", describe(cfg.Database))
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("APP_MODE", "staging")
	_, err := Parse()
	require.Error(t, err)

	t.Setenv("APP_MODE", "dev")
	t.Setenv("DEV_DB_DRIVER", "oracle")
	_, err = Parse()
	require.Error(t, err)
}

func TestBuildDialector(t *testing.T) {
	for _, driver := range []string{DriverMySQL, DriverPostgres, DriverSQLite} {
		d, err := buildDialector(DatabaseConfig{Driver: driver, Host: "h", Port: "1", DBName: "n", Path: "x.db"})
		require.NoError(t, err)
		require.NotNil(t, d)
	}
	_, err := buildDialector(DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
}
