package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-movements-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DeletePolicyRestrict, cfg.Inventory.ProductDeletePolicy)
	assert.Equal(t, config.StockEditOverride, cfg.Inventory.StockEditPolicy)
	assert.Equal(t, 4, cfg.Inventory.ReconcileWorkers)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INVENTORY_PRODUCT_DELETE_POLICY", "CASCADE")
	t.Setenv("INVENTORY_STOCK_EDIT_POLICY", "ignore")
	t.Setenv("RECONCILE_WORKERS", "8")
	t.Setenv("DB_FORCE_IPV4", "true")
	t.Setenv("HTTP_PORT", "no-es-numero")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DeletePolicyCascade, cfg.Inventory.ProductDeletePolicy)
	assert.Equal(t, config.StockEditIgnore, cfg.Inventory.StockEditPolicy)
	assert.Equal(t, 8, cfg.Inventory.ReconcileWorkers)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, 8080, cfg.HTTP.Port, "valor inválido usa el default")
}

func TestLoad_RejectsUnknownPolicy(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INVENTORY_PRODUCT_DELETE_POLICY", "soft")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
