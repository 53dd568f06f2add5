package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pharmabill/internal/infrastructure/postgres"
	"github.com/jhoicas/pharmabill/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "pharmabill", SSLMode: "disable", MaxConns: 2}

	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.Equal(t, "pharmabill", pc.ConnConfig.Database)
	assert.EqualValues(t, 2, pc.MaxConns)
	assert.NotNil(t, pc.AfterConnect, "debe registrar el codec decimal")
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@archive.internal:6543/receipts?sslmode=disable", Host: "ignorado"}

	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "archive.internal", pc.ConnConfig.Host)
	assert.EqualValues(t, 6543, pc.ConnConfig.Port)
	assert.EqualValues(t, 4, pc.MaxConns, "sin DB_MAX_CONNS se usa el valor por defecto")
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := postgres.PoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}
