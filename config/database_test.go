package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDB(t *testing.T) {
	original := DB
	defer func() { DB = original }()

	DB = nil
	assert.Nil(t, GetDB(), "GetDB should return nil when DB is not initialized")
}

func TestDialector(t *testing.T) {
	tests := []struct {
		name     string
		driver   string
		wantName string
		wantErr  bool
	}{
		{name: "postgres", driver: "postgres", wantName: "postgres"},
		{name: "empty driver defaults to postgres", driver: "", wantName: "postgres"},
		{name: "mysql", driver: "mysql", wantName: "mysql"},
		{name: "sqlite", driver: "sqlite", wantName: "sqlite"},
		{name: "unknown driver", driver: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialector, err := Dialector(tt.driver, "dsn")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, dialector)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, dialector.Name())
		})
	}
}

func TestConnectDatabaseSQLite(t *testing.T) {
	original := DB
	defer func() { DB = original }()

	cfg := Default()
	cfg.DatabaseURL = "file:connect_test?mode=memory&cache=shared"

	require.NoError(t, ConnectDatabase(cfg))
	require.NotNil(t, GetDB())

	sqlDB, err := GetDB().DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	sqlDB.Close()
}

func TestConnectDatabaseUnsupportedDriver(t *testing.T) {
	cfg := Default()
	cfg.DatabaseDriver = "mongodb"

	err := ConnectDatabase(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestGormConfigTranslatesErrors(t *testing.T) {
	assert.True(t, GormConfig().TranslateError)
}

func TestGormConfigStoresUTC(t *testing.T) {
	cfg := GormConfig()
	require.NotNil(t, cfg.NowFunc)
	assert.Equal(t, time.UTC, cfg.NowFunc().Location())
}
