// Command migrate applies the shop schema and exits.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ghuser/reactiveshop/migrations/shop"
	"github.com/ghuser/reactiveshop/pkg/config"
	"github.com/ghuser/reactiveshop/pkg/logger"
	"github.com/ghuser/reactiveshop/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, shop.MigrationsFS, log); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}
}
