package task

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/angas/elkvart-go/config"
	"github.com/angas/elkvart-go/database"
	"github.com/angas/elkvart-go/dayahead"
	"github.com/angas/elkvart-go/pricecache"
	"github.com/angas/elkvart-go/types"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	RefreshTask     func()
	MaintenanceTask func()
}

func NewTasks(
	db *database.Database,
	service *dayahead.Service,
	cache *pricecache.Cache,
	area types.Area,
	announce func(dayahead.Snapshot) error,
	onRefresh func(),
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		RefreshTask:     NewRefreshTask(logger.With(slog.String("task", "refresh")), service, area, announce, onRefresh),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cache, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.Price.GetRefreshAt(), t.RefreshTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
