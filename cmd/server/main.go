package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"RiskSentinel/internal/analytics"
	"RiskSentinel/internal/config"
	"RiskSentinel/internal/marketdata"
	"RiskSentinel/internal/scheduler"
	"RiskSentinel/internal/server"
	"RiskSentinel/internal/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	log.Info().Msg("RiskSentinel starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init fetcher
	var fetcher marketdata.Fetcher
	if os.Getenv("MOCK_MARKET_DATA") == "true" {
		fetcher = &marketdata.MockFetcher{}
	} else {
		fetcher = marketdata.NewYahooFetcher(cfg.MarketData.BaseURL, cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Msg("market data source")

	// Init cache: Redis when reachable, in-memory otherwise
	var cache marketdata.Cache
	if rc := marketdata.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); rc != nil {
		cache = rc
		defer rc.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis cache connected")
	} else {
		cache = marketdata.NewMemoryCache()
		log.Warn().Str("addr", cfg.Redis.Addr).Msg("redis unavailable, using in-memory cache")
	}
	market := marketdata.NewProvider(fetcher, cache, log)

	// Init store: sqlite with in-memory fallback
	var st store.Store
	if sqlStore, err := store.NewSQLiteStore(cfg.Database.SQLitePath, log); err != nil {
		log.Warn().Err(err).Msg("init sqlite store failed, using in-memory store")
		st = store.NewMemoryStore()
	} else {
		st = sqlStore
	}
	defer st.Close()

	params := analytics.Params{
		TradingDays:     cfg.Engine.TradingDays,
		RiskFreeRate:    cfg.Engine.RiskFreeRate,
		MinObservations: cfg.Engine.MinObservations,
		Seed:            cfg.Engine.Seed,
	}
	lookbackDays := cfg.MarketData.LookbackY * cfg.Engine.TradingDays

	// Init scheduler
	sched := scheduler.New(ctx, st, market, params, lookbackDays, log)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, refreshing now")
		go sched.RunNow()
	}

	// Init HTTP server
	srv := server.New(st, market, params, server.Options{
		Benchmark:    cfg.MarketData.Benchmark,
		FeeBps:       cfg.Engine.FeeBps,
		LookbackDays: lookbackDays,
		Mode:         cfg.Server.Mode,
	}, log)

	// Shutdown on SIGINT/SIGTERM
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutdown signal received, stopping")
		cancel()
	}()

	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("http server")
	}
	log.Info().Msg("RiskSentinel stopped")
}
