package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoreBackendPostgres, cfg.Store.Backend)
	assert.Equal(t, "ledger_documents", cfg.Store.NotifyChannel)
	assert.Equal(t, 30, cfg.Store.LiveIdle)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_BackendMemoria(t *testing.T) {
	v := viper.New()
	v.Set("STORE_BACKEND", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("LIVE_IDLE_MINUTES", "0")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 0, cfg.Store.LiveIdle)
}

func TestFromViper_BackendInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_BACKEND", "firestore")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "sewvee", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/sewvee?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://u:p@h:1/d"
	assert.Equal(t, "postgres://u:p@h:1/d", c.ConnectionString())
}
