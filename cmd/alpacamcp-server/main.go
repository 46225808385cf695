package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"alpacamcp/internal/analytics"
	"alpacamcp/internal/broker"
	"alpacamcp/internal/config"
	"alpacamcp/internal/mcpserver"
	"alpacamcp/internal/risk"
	"alpacamcp/internal/universe"
	"alpacamcp/internal/util"
)

func main() {
	httpMode := flag.Bool("http", false, "serve over streamable HTTP instead of stdio")
	flag.Parse()

	// .env is a local development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ALPACAMCP_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	logger.Info("alpacamcp config",
		"base_url", cfg.Alpaca.BaseURL,
		"key_present", cfg.Alpaca.APIKey != "",
		"secret_present", cfg.Alpaca.APISecret != "",
	)

	b := broker.NewAlpacaBroker(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL)

	// Best-effort startup probe. A failure is logged, not fatal: tools will
	// then fail individually on first use.
	if acct, err := b.GetAccount(context.Background()); err != nil {
		logger.Error("alpaca auth failed at startup", "error", err)
	} else {
		logger.Info("alpaca auth OK at startup",
			"status", acct.Status,
			"equity", acct.Equity,
			"buying_power", acct.BuyingPower,
		)
	}

	u, err := universe.Load(cfg.Universe.Path)
	if err != nil {
		log.Fatalf("failed to load universe: %v", err)
	}
	logger.Info("universe loaded", "path", cfg.Universe.Path, "symbols", u.Size())

	rm := risk.NewManager(u, risk.Limits{
		MaxPositionSize:  cfg.Risk.MaxPositionSize,
		MaxPositionValue: cfg.Risk.MaxPositionValue,
	}, b)

	var notifier analytics.Notifier = analytics.NopNotifier{}
	if cfg.Analytics.URL != "" {
		notifier = analytics.NewHTTPNotifier(cfg.Analytics.URL, cfg.Analytics.Token)
	}

	srv := mcpserver.New(b, rm, notifier, logger)

	if *httpMode {
		if err := srv.ServeHTTP(cfg.Server.Port); err != nil {
			log.Fatalf("http server: %v", err)
		}
		return
	}
	if err := srv.ServeStdio(); err != nil {
		log.Fatalf("stdio server: %v", err)
	}
}
