package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "SPY", cfg.MarketData.Benchmark)
	assert.Equal(t, 2, cfg.MarketData.LookbackY)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "data/risk_sentinel.db", cfg.Database.SQLitePath)
	assert.Equal(t, 252, cfg.Engine.TradingDays)
	assert.Equal(t, 0.05, cfg.Engine.RiskFreeRate)
	assert.Equal(t, 20, cfg.Engine.MinObservations)
	assert.Equal(t, uint64(42), cfg.Engine.Seed)
	assert.Equal(t, 50, cfg.Engine.FeeBps)
	assert.Equal(t, "0 30 22 * * 1-5", cfg.Schedule.RefreshCron)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9000"
  mode: debug
market_data:
  benchmark: QQQ
  lookback_years: 3
engine:
  risk_free_rate: 0.03
  fee_bps: 75
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "QQQ", cfg.MarketData.Benchmark)
	assert.Equal(t, 3, cfg.MarketData.LookbackY)
	assert.Equal(t, 0.03, cfg.Engine.RiskFreeRate)
	assert.Equal(t, 75, cfg.Engine.FeeBps)
	// Unset fields still get defaults.
	assert.Equal(t, 252, cfg.Engine.TradingDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("BENCHMARK_TICKER", "IWM")
	t.Setenv("RISK_FREE_RATE", "0.02")
	t.Setenv("SIMULATION_SEED", "1234")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, "IWM", cfg.MarketData.Benchmark)
	assert.Equal(t, 0.02, cfg.Engine.RiskFreeRate)
	assert.Equal(t, uint64(1234), cfg.Engine.Seed)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_Failures(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Engine.TradingDays = 0
	assert.Error(t, cfg.Validate())

	cfg.Engine.TradingDays = 252
	cfg.Engine.MinObservations = 1
	assert.Error(t, cfg.Validate())

	cfg.Engine.MinObservations = 20
	cfg.Database.SQLitePath = ""
	assert.Error(t, cfg.Validate())
}
