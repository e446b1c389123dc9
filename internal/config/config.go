package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	MarketData struct {
		BaseURL   string `yaml:"base_url"`
		Benchmark string `yaml:"benchmark"`
		LookbackY int    `yaml:"lookback_years"`
	} `yaml:"market_data"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Engine struct {
		TradingDays     int     `yaml:"trading_days"`
		RiskFreeRate    float64 `yaml:"risk_free_rate"`
		MinObservations int     `yaml:"min_observations"`
		Seed            uint64  `yaml:"seed"`
		FeeBps          int     `yaml:"fee_bps"`
	} `yaml:"engine"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("MARKET_DATA_BASE_URL"); v != "" {
		cfg.MarketData.BaseURL = v
	}
	if v := os.Getenv("BENCHMARK_TICKER"); v != "" {
		cfg.MarketData.Benchmark = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("SIMULATION_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Engine.Seed = seed
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.MarketData.Benchmark == "" {
		cfg.MarketData.Benchmark = "SPY"
	}
	if cfg.MarketData.LookbackY == 0 {
		cfg.MarketData.LookbackY = 2
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/risk_sentinel.db"
	}
	if cfg.Engine.TradingDays == 0 {
		cfg.Engine.TradingDays = 252
	}
	if cfg.Engine.RiskFreeRate == 0 {
		cfg.Engine.RiskFreeRate = 0.05
	}
	if cfg.Engine.MinObservations == 0 {
		cfg.Engine.MinObservations = 20
	}
	if cfg.Engine.Seed == 0 {
		cfg.Engine.Seed = 42
	}
	if cfg.Engine.FeeBps == 0 {
		cfg.Engine.FeeBps = 50
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Engine.TradingDays <= 0 {
		return fmt.Errorf("engine.trading_days must be positive")
	}
	if c.Engine.MinObservations < 2 {
		return fmt.Errorf("engine.min_observations must be at least 2")
	}
	if c.Engine.FeeBps < 0 {
		return fmt.Errorf("engine.fee_bps must not be negative")
	}
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	return nil
}
