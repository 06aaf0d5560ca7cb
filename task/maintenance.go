package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/elkvart-go/config"
	"github.com/angas/elkvart-go/database"
	"github.com/angas/elkvart-go/pricecache"
)

func NewMaintenanceTask(logger *slog.Logger, db *database.Database, cache *pricecache.Cache, cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running maintenance task...")

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		if err := db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries()); err != nil {
			logger.Error("log maintenance error", slog.Any("error", err))
		}

		if err := db.Backup(ctx); err != nil {
			logger.Error("backup error", slog.Any("error", err))
		}

		if err := db.PurgeBackups(ctx, cnfg.Database.GetBackupRetentionDays()); err != nil {
			logger.Error("backup purge error", slog.Any("error", err))
		}

		if dropped := cache.Sweep(); dropped > 0 {
			logger.Debug("swept expired cache entries", slog.Int("dropped", dropped))
		}

		logger.Info("maintenance task done")
	}
}
